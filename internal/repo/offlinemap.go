package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/treejer/ranger/backend/internal/domain"
)

// OfflineMapRepo defines the persistence operations for offline map records.
type OfflineMapRepo interface {
	// Create returns domain.ErrValidation if a map with the same name exists.
	Create(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error)

	// List returns all maps, newest first.
	List(ctx context.Context) ([]domain.OfflineMap, error)

	// Delete returns domain.ErrNotFound if no map has that name.
	Delete(ctx context.Context, name string) error
}

type pgOfflineMapRepo struct {
	db db
}

// NewOfflineMapRepo constructs an OfflineMapRepo backed by the provided db connection.
func NewOfflineMapRepo(db db) OfflineMapRepo {
	return &pgOfflineMapRepo{db: db}
}

func (r *pgOfflineMapRepo) Create(ctx context.Context, m domain.OfflineMap) (domain.OfflineMap, error) {
	const q = `
		INSERT INTO offline_maps (name, size, area_name)
		VALUES (@name, @size, @area_name)
		RETURNING name, size, area_name, created_at`

	args := pgx.NamedArgs{"name": m.Name, "size": m.Size, "area_name": m.AreaName}

	var out domain.OfflineMap
	err := r.db.QueryRow(ctx, q, args).Scan(&out.Name, &out.Size, &out.AreaName, &out.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.OfflineMap{}, fmt.Errorf("repo.OfflineMapRepo.Create: %w: map %q already exists", domain.ErrValidation, m.Name)
		}
		return domain.OfflineMap{}, fmt.Errorf("repo.OfflineMapRepo.Create: %w", err)
	}
	return out, nil
}

func (r *pgOfflineMapRepo) List(ctx context.Context) ([]domain.OfflineMap, error) {
	const q = `
		SELECT name, size, area_name, created_at
		FROM offline_maps
		ORDER BY created_at DESC, name`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.OfflineMapRepo.List: %w", err)
	}
	defer rows.Close()

	maps := []domain.OfflineMap{}
	for rows.Next() {
		var m domain.OfflineMap
		if err := rows.Scan(&m.Name, &m.Size, &m.AreaName, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("repo.OfflineMapRepo.List: scan: %w", err)
		}
		maps = append(maps, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.OfflineMapRepo.List: rows: %w", err)
	}
	return maps, nil
}

func (r *pgOfflineMapRepo) Delete(ctx context.Context, name string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM offline_maps WHERE name = @name`, pgx.NamedArgs{"name": name})
	if err != nil {
		return fmt.Errorf("repo.OfflineMapRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.OfflineMapRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
