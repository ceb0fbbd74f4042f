package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/treejer/ranger/backend/internal/domain"
)

// TreeRepo defines the persistence operations for tree specs.
type TreeRepo interface {
	// Create inserts a new tree and returns it with its generated id and
	// timestamps.
	Create(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error)

	// GetByID returns domain.ErrNotFound if no tree with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error)

	// ListPaged returns one page of trees, newest first, and the total count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error)

	// List returns every tree, newest first.
	List(ctx context.Context) ([]domain.TreeSpec, error)

	// Delete removes a tree and its submissions.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}

type pgTreeRepo struct {
	db db
}

// NewTreeRepo constructs a TreeRepo backed by the provided db connection.
func NewTreeRepo(db db) TreeRepo {
	return &pgTreeRepo{db: db}
}

const treeColumns = `id, name, description, external_url, image_hash, symbol, symbol_hash,
		animation_url, diameter, image_fs, image_ipfs_hash, nursery, latitude, longitude,
		attributes, updates, locations, created_at, updated_at`

// Create inserts a new tree row and returns the full persisted record.
func (r *pgTreeRepo) Create(ctx context.Context, spec domain.TreeSpec) (domain.TreeSpec, error) {
	q := `
		INSERT INTO trees (name, description, external_url, image_hash, symbol, symbol_hash,
			animation_url, diameter, image_fs, image_ipfs_hash, nursery, latitude, longitude,
			attributes, updates, locations)
		VALUES (@name, @description, @external_url, @image_hash, @symbol, @symbol_hash,
			@animation_url, @diameter, @image_fs, @image_ipfs_hash, @nursery, @latitude, @longitude,
			@attributes, @updates, @locations)
		RETURNING ` + treeColumns

	args := pgx.NamedArgs{
		"name":            spec.Name,
		"description":     spec.Description,
		"external_url":    spec.ExternalURL,
		"image_hash":      spec.ImageHash,
		"symbol":          spec.Symbol,
		"symbol_hash":     spec.SymbolHash,
		"animation_url":   spec.AnimationURL,
		"diameter":        spec.Diameter,
		"image_fs":        spec.ImageFS,
		"image_ipfs_hash": spec.ImageIPFSHash,
		"nursery":         spec.Nursery,
		"latitude":        spec.Latitude,
		"longitude":       spec.Longitude,
		"attributes":      spec.Attributes, // nil becomes NULL
		"updates":         spec.Updates,
		"locations":       spec.Locations,
	}

	result, err := scanTree(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TreeSpec{}, fmt.Errorf("repo.TreeRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a tree by primary key.
func (r *pgTreeRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.TreeSpec, error) {
	q := `SELECT ` + treeColumns + ` FROM trees WHERE id = @id`

	result, err := scanTree(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.TreeSpec{}, fmt.Errorf("repo.TreeRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of trees ordered by created_at descending.
func (r *pgTreeRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.TreeSpec, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM trees`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.TreeRepo.ListPaged: count: %w", err)
	}

	q := `
		SELECT ` + treeColumns + `
		FROM trees
		ORDER BY created_at DESC, id
		LIMIT @limit OFFSET @offset`

	trees, err := r.query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.TreeRepo.ListPaged: %w", err)
	}
	return trees, total, nil
}

// List returns all trees ordered by created_at descending.
func (r *pgTreeRepo) List(ctx context.Context) ([]domain.TreeSpec, error) {
	q := `SELECT ` + treeColumns + ` FROM trees ORDER BY created_at DESC, id`

	trees, err := r.query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TreeRepo.List: %w", err)
	}
	return trees, nil
}

// Delete removes a tree by primary key. Submissions go with it (ON DELETE CASCADE).
func (r *pgTreeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trees WHERE id = @id`, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.TreeRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TreeRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *pgTreeRepo) query(ctx context.Context, q string, args ...any) ([]domain.TreeSpec, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	trees := []domain.TreeSpec{}
	for rows.Next() {
		t, err := scanTree(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		trees = append(trees, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return trees, nil
}

// scanTree maps a row selected with treeColumns into a domain.TreeSpec.
// NULL JSON columns scan to nil pointers.
func scanTree(s scanner) (domain.TreeSpec, error) {
	var (
		t  domain.TreeSpec
		id pgtype.UUID
	)
	err := s.Scan(&id, &t.Name, &t.Description, &t.ExternalURL, &t.ImageHash, &t.Symbol, &t.SymbolHash,
		&t.AnimationURL, &t.Diameter, &t.ImageFS, &t.ImageIPFSHash, &t.Nursery, &t.Latitude, &t.Longitude,
		&t.Attributes, &t.Updates, &t.Locations, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TreeSpec{}, domain.ErrNotFound
		}
		return domain.TreeSpec{}, err
	}
	t.ID = uuid.UUID(id.Bytes)
	return t, nil
}
