package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/treejer/ranger/backend/internal/domain"
	"github.com/treejer/ranger/backend/internal/repo"
	"github.com/treejer/ranger/backend/internal/treedoc"
)

// SubmissionService turns field visits into tree documents and records them.
// The tree's stored spec is authoritative: a journey's embedded tree is
// ignored in favour of what the repo holds.
type SubmissionService struct {
	trees     repo.TreeRepo
	subs      repo.SubmissionRepo
	assembler *treedoc.Assembler
	baseURL   string
}

// NewSubmissionService constructs a SubmissionService. baseURL is the IPFS
// gateway photo links are built from.
func NewSubmissionService(trees repo.TreeRepo, subs repo.SubmissionRepo, a *treedoc.Assembler, baseURL string) *SubmissionService {
	return &SubmissionService{trees: trees, subs: subs, assembler: a, baseURL: baseURL}
}

// SubmitNew registers a tree from a journey and records its first document.
// Returns domain.ErrValidation if the hash is blank or the journey has no
// location within ±90 latitude and ±180 longitude.
func (s *SubmissionService) SubmitNew(ctx context.Context, hash string, j domain.Journey) (domain.Submission, error) {
	if err := validateHash(hash); err != nil {
		return domain.Submission{}, err
	}
	doc, err := s.assembler.NewTree(s.baseURL, hash, j)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.SubmitNew: %w", err)
	}

	sub, err := s.subs.CreateForNewTree(ctx, domain.Submission{Kind: domain.SubmissionNew, PhotoHash: hash, Document: doc})
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.SubmitNew: %w", err)
	}
	logRecorded(ctx, sub)
	return sub, nil
}

// SubmitUpdate records a field visit to an existing tree.
// Returns domain.ErrNotFound if the tree does not exist and
// domain.ErrMalformedHistory if its stored update history is corrupt.
func (s *SubmissionService) SubmitUpdate(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error) {
	sub, err := s.submitExisting(ctx, domain.SubmissionUpdate, treeID, hash, j, s.assembler.UpdateTree)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.SubmitUpdate: %w", err)
	}
	return sub, nil
}

// SubmitAssigned records the planting of a tree assigned to the agent.
// Errors are as for SubmitUpdate, plus domain.ErrValidation when the journey
// has no location.
func (s *SubmissionService) SubmitAssigned(ctx context.Context, treeID uuid.UUID, hash string, j domain.Journey) (domain.Submission, error) {
	sub, err := s.submitExisting(ctx, domain.SubmissionAssigned, treeID, hash, j, s.assembler.AssignedTree)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("service.SubmissionService.SubmitAssigned: %w", err)
	}
	return sub, nil
}

// ListByTree returns a tree's submissions, oldest first.
func (s *SubmissionService) ListByTree(ctx context.Context, treeID uuid.UUID) ([]domain.Submission, error) {
	if _, err := s.trees.GetByID(ctx, treeID); err != nil {
		return nil, fmt.Errorf("service.SubmissionService.ListByTree: %w", err)
	}
	subs, err := s.subs.ListByTree(ctx, treeID)
	if err != nil {
		return nil, fmt.Errorf("service.SubmissionService.ListByTree: %w", err)
	}
	if subs == nil {
		return []domain.Submission{}, nil
	}
	return subs, nil
}

type assembleFunc func(baseURL, hash string, j domain.Journey, prior *domain.TreeSpec) (domain.Document, error)

func (s *SubmissionService) submitExisting(
	ctx context.Context,
	kind domain.SubmissionKind,
	treeID uuid.UUID,
	hash string,
	j domain.Journey,
	assemble assembleFunc,
) (domain.Submission, error) {
	if err := validateHash(hash); err != nil {
		return domain.Submission{}, err
	}
	prior, err := s.trees.GetByID(ctx, treeID)
	if err != nil {
		return domain.Submission{}, err
	}

	doc, err := assemble(s.baseURL, hash, j, &prior)
	if err != nil {
		slog.WarnContext(ctx, "document assembly failed", "tree_id", treeID, "kind", kind, "error", err)
		return domain.Submission{}, err
	}

	sub, err := s.subs.CreateForTree(ctx, domain.Submission{TreeID: treeID, Kind: kind, PhotoHash: hash, Document: doc})
	if err != nil {
		return domain.Submission{}, err
	}
	logRecorded(ctx, sub)
	return sub, nil
}

func validateHash(hash string) error {
	if strings.TrimSpace(hash) == "" {
		return fmt.Errorf("%w: photo hash is required", domain.ErrValidation)
	}
	return nil
}

func logRecorded(ctx context.Context, sub domain.Submission) {
	args := []any{
		"submission_id", sub.ID,
		"tree_id", sub.TreeID,
		"kind", sub.Kind,
		"updates", len(sub.Document.Updates),
	}
	if agent, ok := domain.AgentFromContext(ctx); ok && agent != "" {
		args = append(args, "agent", agent)
	}
	slog.InfoContext(ctx, "submission recorded", args...)
}
