package repositories

import (
	"context"
	"fmt"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LocationStockRepository interface {
	Upsert(ctx context.Context, stock *models.LocationStock) error
	GetByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*models.LocationStock, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.LocationStock, error)
	ListLowStock(ctx context.Context, limit int) ([]*models.LocationStock, error)
	UpdateBounds(ctx context.Context, itemID, locationID uuid.UUID, minimumThreshold, maximumCapacity int) error
	AdjustQuantity(ctx context.Context, itemID, locationID uuid.UUID, delta int) error
	ApplyDeltas(ctx context.Context, itemID uuid.UUID, deltas []models.StockDelta) error
	CountLowStock(ctx context.Context) (int, error)
	ItemQuantities(ctx context.Context) (map[uuid.UUID]int, error)
}

type locationStockRepo struct {
	db DB
}

func NewLocationStockRepo(db DB) LocationStockRepository {
	return &locationStockRepo{db: db}
}

const stockColumns = `s.id, s.item_id, s.location_id, l.name, s.quantity, s.minimum_threshold, s.maximum_capacity, s.last_updated`

func (r *locationStockRepo) Upsert(ctx context.Context, stock *models.LocationStock) error {
	query := `
		INSERT INTO location_stock (id, item_id, location_id, quantity, minimum_threshold, maximum_capacity, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (item_id, location_id) DO UPDATE
		SET quantity = location_stock.quantity + EXCLUDED.quantity, last_updated = NOW()
	`
	_, err := r.db.Exec(ctx, query, stock.ID, stock.ItemID, stock.LocationID, stock.Quantity, stock.MinimumThreshold, stock.MaximumCapacity)
	return err
}

func (r *locationStockRepo) GetByItemAndLocation(ctx context.Context, itemID, locationID uuid.UUID) (*models.LocationStock, error) {
	stock := &models.LocationStock{}
	query := fmt.Sprintf(`
		SELECT %s
		FROM location_stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.item_id = $1 AND s.location_id = $2
	`, stockColumns)
	err := r.db.QueryRow(ctx, query, itemID, locationID).Scan(
		&stock.ID, &stock.ItemID, &stock.LocationID, &stock.LocationName,
		&stock.Quantity, &stock.MinimumThreshold, &stock.MaximumCapacity, &stock.LastUpdated,
	)
	if err != nil {
		return nil, err
	}
	return stock, nil
}

// ListByItem returns the item's full multi-location snapshot, ordered by
// location name for stable output. This is the snapshot the planner runs on.
func (r *locationStockRepo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]*models.LocationStock, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM location_stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.item_id = $1
		ORDER BY l.name ASC
	`, stockColumns)
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStocks(rows)
}

func (r *locationStockRepo) ListByLocation(ctx context.Context, locationID uuid.UUID, limit, offset int) ([]*models.LocationStock, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM location_stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.location_id = $1
		ORDER BY s.last_updated DESC
		LIMIT $2 OFFSET $3
	`, stockColumns)
	rows, err := r.db.Query(ctx, query, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStocks(rows)
}

func (r *locationStockRepo) ListLowStock(ctx context.Context, limit int) ([]*models.LocationStock, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM location_stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.quantity <= s.minimum_threshold
		ORDER BY s.quantity - s.minimum_threshold ASC
		LIMIT $1
	`, stockColumns)
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStocks(rows)
}

func (r *locationStockRepo) UpdateBounds(ctx context.Context, itemID, locationID uuid.UUID, minimumThreshold, maximumCapacity int) error {
	query := `
		UPDATE location_stock
		SET minimum_threshold = $1, maximum_capacity = $2, last_updated = NOW()
		WHERE item_id = $3 AND location_id = $4
	`
	tag, err := r.db.Exec(ctx, query, minimumThreshold, maximumCapacity, itemID, locationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationStockRepo) AdjustQuantity(ctx context.Context, itemID, locationID uuid.UUID, delta int) error {
	query := `
		UPDATE location_stock
		SET quantity = GREATEST(0, quantity + $1), last_updated = NOW()
		WHERE item_id = $2 AND location_id = $3
	`
	tag, err := r.db.Exec(ctx, query, delta, itemID, locationID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ApplyDeltas applies every per-location delta of a confirmed plan in one
// transaction, so a distribution is all-or-nothing.
func (r *locationStockRepo) ApplyDeltas(ctx context.Context, itemID uuid.UUID, deltas []models.StockDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE location_stock
		SET quantity = quantity + $1, last_updated = NOW()
		WHERE item_id = $2 AND location_id = $3
	`
	for _, delta := range deltas {
		tag, err := tx.Exec(ctx, query, delta.Delta, itemID, delta.LocationID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("no stock row for item %s at location %s", itemID, delta.LocationID)
		}
	}

	return tx.Commit(ctx)
}

func (r *locationStockRepo) CountLowStock(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM location_stock WHERE quantity <= minimum_threshold`).Scan(&count)
	return count, err
}

// ItemQuantities returns total on-hand quantity per item across all
// locations; feeds the dashboard stock-value aggregate.
func (r *locationStockRepo) ItemQuantities(ctx context.Context) (map[uuid.UUID]int, error) {
	rows, err := r.db.Query(ctx, `SELECT item_id, SUM(quantity) FROM location_stock GROUP BY item_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quantities := make(map[uuid.UUID]int)
	for rows.Next() {
		var itemID uuid.UUID
		var total int
		if err := rows.Scan(&itemID, &total); err != nil {
			return nil, err
		}
		quantities[itemID] = total
	}
	return quantities, rows.Err()
}

func scanStocks(rows pgx.Rows) ([]*models.LocationStock, error) {
	var stocks []*models.LocationStock
	for rows.Next() {
		stock := &models.LocationStock{}
		if err := rows.Scan(
			&stock.ID, &stock.ItemID, &stock.LocationID, &stock.LocationName,
			&stock.Quantity, &stock.MinimumThreshold, &stock.MaximumCapacity, &stock.LastUpdated,
		); err != nil {
			return nil, err
		}
		stocks = append(stocks, stock)
	}
	return stocks, rows.Err()
}
