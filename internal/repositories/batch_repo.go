package repositories

import (
	"context"
	"time"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type BatchRepository interface {
	Create(ctx context.Context, batch *models.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error)
	ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.Batch, error)
	ListExpiringBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Batch, error)
	CountExpiringBefore(ctx context.Context, cutoff time.Time) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type batchRepo struct {
	db DB
}

func NewBatchRepo(db DB) BatchRepository {
	return &batchRepo{db: db}
}

func (r *batchRepo) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (id, item_id, location_id, lot_number, quantity, expiry_date, received_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`
	_, err := r.db.Exec(ctx, query, batch.ID, batch.ItemID, batch.LocationID, batch.LotNumber, batch.Quantity, batch.ExpiryDate)
	return err
}

func (r *batchRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	batch := &models.Batch{}
	query := `
		SELECT id, item_id, location_id, lot_number, quantity, expiry_date, received_at
		FROM batches
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&batch.ID, &batch.ItemID, &batch.LocationID, &batch.LotNumber, &batch.Quantity, &batch.ExpiryDate, &batch.ReceivedAt)
	if err != nil {
		return nil, err
	}
	return batch, nil
}

func (r *batchRepo) ListByItem(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*models.Batch, error) {
	query := `
		SELECT id, item_id, location_id, lot_number, quantity, expiry_date, received_at
		FROM batches
		WHERE item_id = $1
		ORDER BY expiry_date ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBatches(rows)
}

// ListExpiringBefore returns batches expiring before the cutoff, soonest
// first; drives the expiry alert panel and the nightly scan.
func (r *batchRepo) ListExpiringBefore(ctx context.Context, cutoff time.Time, limit int) ([]*models.Batch, error) {
	query := `
		SELECT id, item_id, location_id, lot_number, quantity, expiry_date, received_at
		FROM batches
		WHERE expiry_date < $1 AND quantity > 0
		ORDER BY expiry_date ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBatches(rows)
}

func (r *batchRepo) CountExpiringBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM batches WHERE expiry_date < $1 AND quantity > 0`, cutoff).Scan(&count)
	return count, err
}

func (r *batchRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM batches WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func scanBatches(rows pgx.Rows) ([]*models.Batch, error) {
	var batches []*models.Batch
	for rows.Next() {
		batch := &models.Batch{}
		if err := rows.Scan(&batch.ID, &batch.ItemID, &batch.LocationID, &batch.LotNumber, &batch.Quantity, &batch.ExpiryDate, &batch.ReceivedAt); err != nil {
			return nil, err
		}
		batches = append(batches, batch)
	}
	return batches, rows.Err()
}
