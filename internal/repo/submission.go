package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/treejer/ranger/backend/internal/domain"
)

// SubmissionRepo records assembled tree documents and folds them back into
// the tree they describe. Each write is a single statement, so a submission
// and its tree never disagree.
type SubmissionRepo interface {
	// CreateForNewTree registers a tree built from sub.Document and records
	// the submission against it. sub.TreeID is ignored.
	CreateForNewTree(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	// CreateForTree records the submission and writes the document's update
	// history, location and (when present) location history into the tree
	// sub.TreeID. Returns domain.ErrNotFound if the tree does not exist.
	CreateForTree(ctx context.Context, sub domain.Submission) (domain.Submission, error)

	// ListByTree returns the submissions for a tree, oldest first.
	ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error)
}

type pgSubmissionRepo struct {
	db db
}

// NewSubmissionRepo constructs a SubmissionRepo backed by the provided db connection.
func NewSubmissionRepo(db db) SubmissionRepo {
	return &pgSubmissionRepo{db: db}
}

const submissionColumns = `id, tree_id, kind, photo_hash, document, created_at`

// CreateForNewTree inserts the tree and the submission in one statement.
func (r *pgSubmissionRepo) CreateForNewTree(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	const q = `
		WITH tree AS (
			INSERT INTO trees (nursery, latitude, longitude, updates)
			VALUES (@nursery, @latitude, @longitude, @updates)
			RETURNING id
		)
		INSERT INTO submissions (tree_id, kind, photo_hash, document)
		SELECT id, @kind, @photo_hash, @document::jsonb FROM tree
		RETURNING ` + submissionColumns

	args, err := submissionArgs(sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.CreateForNewTree: %w", err)
	}
	args["nursery"] = sub.Document.Nursery

	result, err := scanSubmission(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.CreateForNewTree: %w", err)
	}
	return result, nil
}

// CreateForTree updates the tree and inserts the submission in one statement.
// When the tree is missing the CTE yields no row and nothing is inserted.
func (r *pgSubmissionRepo) CreateForTree(ctx context.Context, sub domain.Submission) (domain.Submission, error) {
	const q = `
		WITH tree AS (
			UPDATE trees
			SET updates    = @updates,
			    latitude   = @latitude,
			    longitude  = @longitude,
			    locations  = COALESCE(@locations::text, locations),
			    updated_at = now()
			WHERE id = @tree_id
			RETURNING id
		)
		INSERT INTO submissions (tree_id, kind, photo_hash, document)
		SELECT id, @kind, @photo_hash, @document::jsonb FROM tree
		RETURNING ` + submissionColumns

	args, err := submissionArgs(sub)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.CreateForTree: %w", err)
	}
	args["tree_id"] = sub.TreeID

	var locations *string
	if sub.Document.Locations != nil {
		s, err := jsonText(sub.Document.Locations)
		if err != nil {
			return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.CreateForTree: encode locations: %w", err)
		}
		locations = &s
	}
	args["locations"] = locations // nil keeps the stored history

	result, err := scanSubmission(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Submission{}, fmt.Errorf("repo.SubmissionRepo.CreateForTree: %w", err)
	}
	return result, nil
}

// ListByTree returns every submission recorded for treeID.
func (r *pgSubmissionRepo) ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error) {
	const q = `
		SELECT ` + submissionColumns + `
		FROM submissions
		WHERE tree_id = @tree_id
		ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"tree_id": treeID})
	if err != nil {
		return nil, fmt.Errorf("repo.SubmissionRepo.ListByTree: %w", err)
	}
	defer rows.Close()

	subs := []domain.Submission{}
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.SubmissionRepo.ListByTree: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SubmissionRepo.ListByTree: rows: %w", err)
	}
	return subs, nil
}

// submissionArgs holds the parameters shared by both insert statements.
func submissionArgs(sub domain.Submission) (pgx.NamedArgs, error) {
	doc, err := jsonText(sub.Document)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	updates, err := jsonText(sub.Document.Updates)
	if err != nil {
		return nil, fmt.Errorf("encode updates: %w", err)
	}
	return pgx.NamedArgs{
		"kind":       string(sub.Kind),
		"photo_hash": sub.PhotoHash,
		"document":   doc,
		"updates":    updates,
		"latitude":   sub.Document.Location.Latitude,
		"longitude":  sub.Document.Location.Longitude,
	}, nil
}

func scanSubmission(s scanner) (domain.Submission, error) {
	var (
		sub    domain.Submission
		id     pgtype.UUID
		treeID pgtype.UUID
		kind   string
		doc    []byte
	)
	err := s.Scan(&id, &treeID, &kind, &sub.PhotoHash, &doc, &sub.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Submission{}, domain.ErrNotFound
		}
		return domain.Submission{}, err
	}
	if err := json.Unmarshal(doc, &sub.Document); err != nil {
		return domain.Submission{}, fmt.Errorf("decode document: %w", err)
	}
	sub.ID = uuid.UUID(id.Bytes)
	sub.TreeID = uuid.UUID(treeID.Bytes)
	sub.Kind = domain.SubmissionKind(kind)
	return sub, nil
}
