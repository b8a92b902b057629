package repositories

import (
	"context"
	"fmt"

	"medstock/internal/models"

	"github.com/google/uuid"
)

type ItemRepository interface {
	Create(ctx context.Context, item *models.SupplyItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SupplyItem, error)
	GetBySKU(ctx context.Context, sku string) (*models.SupplyItem, error)
	Update(ctx context.Context, item *models.SupplyItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.SupplyItem, error)
	Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.SupplyItem, error)
	Count(ctx context.Context) (int, error)
}

type itemRepo struct {
	db DB
}

func NewItemRepo(db DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, item *models.SupplyItem) error {
	query := `
		INSERT INTO supply_items (id, name, sku, category, unit, unit_cost, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, item.ID, item.Name, item.SKU, item.Category, item.Unit, item.UnitCost)
	return err
}

func (r *itemRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SupplyItem, error) {
	item := &models.SupplyItem{}
	query := `
		SELECT id, name, sku, category, unit, unit_cost, created_at, updated_at
		FROM supply_items
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Unit, &item.UnitCost, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) GetBySKU(ctx context.Context, sku string) (*models.SupplyItem, error) {
	item := &models.SupplyItem{}
	query := `
		SELECT id, name, sku, category, unit, unit_cost, created_at, updated_at
		FROM supply_items
		WHERE sku = $1
	`
	err := r.db.QueryRow(ctx, query, sku).Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Unit, &item.UnitCost, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *itemRepo) Update(ctx context.Context, item *models.SupplyItem) error {
	query := `
		UPDATE supply_items
		SET name = $1, sku = $2, category = $3, unit = $4, unit_cost = $5, updated_at = NOW()
		WHERE id = $6
	`
	_, err := r.db.Exec(ctx, query, item.Name, item.SKU, item.Category, item.Unit, item.UnitCost, item.ID)
	return err
}

func (r *itemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM supply_items WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *itemRepo) List(ctx context.Context, limit, offset int) ([]*models.SupplyItem, error) {
	query := `
		SELECT id, name, sku, category, unit, unit_cost, created_at, updated_at
		FROM supply_items
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SupplyItem
	for rows.Next() {
		item := &models.SupplyItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Unit, &item.UnitCost, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Search performs filtered item search with dynamic conditions
func (r *itemRepo) Search(ctx context.Context, filter *models.ItemSearchFilter) ([]*models.SupplyItem, error) {
	if filter.Limit == 0 {
		filter.Limit = 50
	}
	if filter.SortBy == "" {
		filter.SortBy = "name"
	}

	queryBase := `
		SELECT id, name, sku, category, unit, unit_cost, created_at, updated_at
		FROM supply_items
		WHERE 1=1
	`
	args := []any{}
	argCount := 0

	if filter.Query != "" {
		argCount++
		queryBase += fmt.Sprintf(" AND (name ILIKE $%d OR sku ILIKE $%d)", argCount, argCount)
		args = append(args, "%"+filter.Query+"%")
	}
	if filter.Category != "" {
		argCount++
		queryBase += fmt.Sprintf(" AND category = $%d", argCount)
		args = append(args, filter.Category)
	}

	sortBy := "name"
	switch filter.SortBy {
	case "name", "sku", "created_at":
		sortBy = filter.SortBy
	}
	order := "ASC"
	if filter.SortOrder == "desc" {
		order = "DESC"
	}
	queryBase += fmt.Sprintf(" ORDER BY %s %s", sortBy, order)

	argCount++
	queryBase += fmt.Sprintf(" LIMIT $%d", argCount)
	args = append(args, filter.Limit)
	argCount++
	queryBase += fmt.Sprintf(" OFFSET $%d", argCount)
	args = append(args, filter.Offset)

	rows, err := r.db.Query(ctx, queryBase, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.SupplyItem
	for rows.Next() {
		item := &models.SupplyItem{}
		if err := rows.Scan(&item.ID, &item.Name, &item.SKU, &item.Category, &item.Unit, &item.UnitCost, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *itemRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM supply_items`).Scan(&count)
	return count, err
}
