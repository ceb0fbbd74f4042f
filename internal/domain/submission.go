package domain

import (
	"time"

	"github.com/google/uuid"
)

// SubmissionKind names which assembler variant produced a document.
type SubmissionKind string

const (
	SubmissionNew      SubmissionKind = "new"
	SubmissionUpdate   SubmissionKind = "update"
	SubmissionAssigned SubmissionKind = "assigned"
)

// Valid reports whether k is one of the known kinds.
func (k SubmissionKind) Valid() bool {
	switch k {
	case SubmissionNew, SubmissionUpdate, SubmissionAssigned:
		return true
	}
	return false
}

// Submission is a persisted tree document together with what produced it.
// TreeID is the tree the document was folded into; for new-tree submissions it
// is the freshly registered tree.
type Submission struct {
	ID        uuid.UUID
	TreeID    uuid.UUID
	Kind      SubmissionKind
	PhotoHash string
	Document  Document
	CreatedAt time.Time
}
