package repositories

import (
	"context"
	"fmt"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type StockRequestRepository interface {
	Create(ctx context.Context, request *models.StockRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.StockRequest, error)
	List(ctx context.Context, status string, limit, offset int) ([]*models.StockRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status, reviewedBy string, reviewNote *string) error
	CountByStatus(ctx context.Context, status string) (int, error)
}

type stockRequestRepo struct {
	db DB
}

func NewStockRequestRepo(db DB) StockRequestRepository {
	return &stockRequestRepo{db: db}
}

func (r *stockRequestRepo) Create(ctx context.Context, request *models.StockRequest) error {
	query := `
		INSERT INTO stock_requests (id, item_id, location_id, quantity, requested_by, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := r.db.Exec(ctx, query, request.ID, request.ItemID, request.LocationID, request.Quantity, request.RequestedBy, request.Note, request.Status)
	return err
}

func (r *stockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StockRequest, error) {
	request := &models.StockRequest{}
	query := `
		SELECT id, item_id, location_id, quantity, requested_by, note, status, reviewed_by, review_note, created_at, reviewed_at
		FROM stock_requests
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&request.ID, &request.ItemID, &request.LocationID, &request.Quantity,
		&request.RequestedBy, &request.Note, &request.Status,
		&request.ReviewedBy, &request.ReviewNote, &request.CreatedAt, &request.ReviewedAt,
	)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *stockRequestRepo) List(ctx context.Context, status string, limit, offset int) ([]*models.StockRequest, error) {
	query := `
		SELECT id, item_id, location_id, quantity, requested_by, note, status, reviewed_by, review_note, created_at, reviewed_at
		FROM stock_requests
		WHERE 1=1
	`
	args := []any{}
	argCount := 0

	if status != "" {
		argCount++
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, status)
	}

	argCount++
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argCount)
	args = append(args, limit)
	argCount++
	query += fmt.Sprintf(" OFFSET $%d", argCount)
	args = append(args, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []*models.StockRequest
	for rows.Next() {
		request := &models.StockRequest{}
		if err := rows.Scan(
			&request.ID, &request.ItemID, &request.LocationID, &request.Quantity,
			&request.RequestedBy, &request.Note, &request.Status,
			&request.ReviewedBy, &request.ReviewNote, &request.CreatedAt, &request.ReviewedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func (r *stockRequestRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status, reviewedBy string, reviewNote *string) error {
	query := `
		UPDATE stock_requests
		SET status = $1, reviewed_by = $2, review_note = $3, reviewed_at = NOW()
		WHERE id = $4
	`
	tag, err := r.db.Exec(ctx, query, status, reviewedBy, reviewNote, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *stockRequestRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM stock_requests WHERE status = $1`, status).Scan(&count)
	return count, err
}
