package repo

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"

	"github.com/treejer/ranger/backend/internal/domain"
)

// AdditionalDataRepo stores the imported additional-data forms and metadata.
type AdditionalDataRepo interface {
	// ReplaceAll discards every stored form and metadata detail and stores the
	// given ones, atomically.
	ReplaceAll(ctx context.Context, forms []domain.Form, details []domain.Detail) error

	// ListForms returns every form ordered by its display order.
	ListForms(ctx context.Context) ([]domain.Form, error)

	// ListMetadata returns every metadata detail ordered by access type and key.
	ListMetadata(ctx context.Context) ([]domain.Detail, error)
}

type pgAdditionalDataRepo struct {
	db db
}

// NewAdditionalDataRepo constructs an AdditionalDataRepo backed by the provided db connection.
func NewAdditionalDataRepo(db db) AdditionalDataRepo {
	return &pgAdditionalDataRepo{db: db}
}

func (r *pgAdditionalDataRepo) ReplaceAll(ctx context.Context, forms []domain.Form, details []domain.Detail) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM additional_forms`); err != nil {
		return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: clear forms: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM additional_metadata`); err != nil {
		return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: clear metadata: %w", err)
	}

	const insertForm = `
		INSERT INTO additional_forms (id, title, description, sort_order, elements)
		VALUES (@id, @title, @description, @sort_order, @elements::jsonb)`
	for _, f := range forms {
		elements := f.Elements
		if elements == nil {
			elements = []domain.Element{}
		}
		encoded, err := jsonText(elements)
		if err != nil {
			return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: encode form %q: %w", f.ID, err)
		}
		args := pgx.NamedArgs{
			"id":          f.ID,
			"title":       f.Title,
			"description": f.Description,
			"sort_order":  f.Order,
			"elements":    encoded,
		}
		if _, err := tx.Exec(ctx, insertForm, args); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: %w: duplicate form id %q", domain.ErrValidation, f.ID)
			}
			return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: insert form %q: %w", f.ID, err)
		}
	}

	// Later details win over earlier ones with the same key and access type.
	const upsertDetail = `
		INSERT INTO additional_metadata (key, access_type, value)
		VALUES (@key, @access_type, @value)
		ON CONFLICT (key, access_type) DO UPDATE SET value = EXCLUDED.value`
	for _, d := range details {
		args := pgx.NamedArgs{"key": d.Key, "access_type": d.AccessType, "value": d.Value}
		if _, err := tx.Exec(ctx, upsertDetail, args); err != nil {
			return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: insert detail %q: %w", d.Key, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("repo.AdditionalDataRepo.ReplaceAll: commit: %w", err)
	}
	return nil
}

func (r *pgAdditionalDataRepo) ListForms(ctx context.Context) ([]domain.Form, error) {
	const q = `
		SELECT id, title, description, sort_order, elements
		FROM additional_forms
		ORDER BY sort_order, id`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AdditionalDataRepo.ListForms: %w", err)
	}
	defer rows.Close()

	forms := []domain.Form{}
	for rows.Next() {
		var (
			f        domain.Form
			elements []byte
		)
		if err := rows.Scan(&f.ID, &f.Title, &f.Description, &f.Order, &elements); err != nil {
			return nil, fmt.Errorf("repo.AdditionalDataRepo.ListForms: scan: %w", err)
		}
		if err := json.Unmarshal(elements, &f.Elements); err != nil {
			return nil, fmt.Errorf("repo.AdditionalDataRepo.ListForms: decode elements of %q: %w", f.ID, err)
		}
		forms = append(forms, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AdditionalDataRepo.ListForms: rows: %w", err)
	}
	return forms, nil
}

func (r *pgAdditionalDataRepo) ListMetadata(ctx context.Context) ([]domain.Detail, error) {
	const q = `
		SELECT key, value, access_type
		FROM additional_metadata
		ORDER BY access_type, key`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.AdditionalDataRepo.ListMetadata: %w", err)
	}
	defer rows.Close()

	details := []domain.Detail{}
	for rows.Next() {
		var d domain.Detail
		if err := rows.Scan(&d.Key, &d.Value, &d.AccessType); err != nil {
			return nil, fmt.Errorf("repo.AdditionalDataRepo.ListMetadata: scan: %w", err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.AdditionalDataRepo.ListMetadata: rows: %w", err)
	}
	return details, nil
}
