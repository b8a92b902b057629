package repositories

import (
	"context"

	"medstock/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LocationRepository interface {
	Create(ctx context.Context, location *models.Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error)
	GetByName(ctx context.Context, name string) (*models.Location, error)
	Update(ctx context.Context, location *models.Location) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*models.Location, error)
	ListAll(ctx context.Context) ([]*models.Location, error)
}

type locationRepo struct {
	db DB
}

func NewLocationRepo(db DB) LocationRepository {
	return &locationRepo{db: db}
}

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	query := `
		INSERT INTO locations (id, name, type, priority_rank, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, location.ID, location.Name, location.Type, location.PriorityRank)
	return err
}

func (r *locationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT id, name, type, priority_rank, created_at, updated_at
		FROM locations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&location.ID, &location.Name, &location.Type, &location.PriorityRank, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) GetByName(ctx context.Context, name string) (*models.Location, error) {
	location := &models.Location{}
	query := `
		SELECT id, name, type, priority_rank, created_at, updated_at
		FROM locations
		WHERE name = $1
	`
	err := r.db.QueryRow(ctx, query, name).Scan(&location.ID, &location.Name, &location.Type, &location.PriorityRank, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return location, nil
}

func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	query := `
		UPDATE locations
		SET name = $1, type = $2, priority_rank = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, location.Name, location.Type, location.PriorityRank, location.ID)
	return err
}

func (r *locationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM locations WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *locationRepo) List(ctx context.Context, limit, offset int) ([]*models.Location, error) {
	query := `
		SELECT id, name, type, priority_rank, created_at, updated_at
		FROM locations
		ORDER BY priority_rank ASC, name ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocations(rows)
}

// ListAll returns every location; used once at startup to build the
// priority table.
func (r *locationRepo) ListAll(ctx context.Context) ([]*models.Location, error) {
	query := `
		SELECT id, name, type, priority_rank, created_at, updated_at
		FROM locations
		ORDER BY priority_rank ASC, name ASC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanLocations(rows)
}

func scanLocations(rows pgx.Rows) ([]*models.Location, error) {
	var locations []*models.Location
	for rows.Next() {
		location := &models.Location{}
		if err := rows.Scan(&location.ID, &location.Name, &location.Type, &location.PriorityRank, &location.CreatedAt, &location.UpdatedAt); err != nil {
			return nil, err
		}
		locations = append(locations, location)
	}
	return locations, rows.Err()
}
