package migration

import (
	"errors"

	"gorm.io/gorm"
)

// ErrConstraintNotFound is returned by a step's Revert when a foreign key it
// expects to drop is missing. Reverting a step that was never applied is an
// operator error; silently continuing would leave the schema half-reverted.
var ErrConstraintNotFound = errors.New("foreign key constraint not found")

// Step is one versioned, named unit of schema change. Apply performs the
// forward DDL against the handle; Revert must undo it exactly, in reverse
// dependency order. Neither direction checks for prior application: the
// Runner guarantees each step runs once per direction.
type Step interface {
	Name() string
	Apply(db *gorm.DB) error
	Revert(db *gorm.DB) error
}
