package migration

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

// Record is one applied step, tracked in the schema_migrations table.
type Record struct {
	ID        uint      `gorm:"primaryKey;column:id"`
	Name      string    `gorm:"column:name;size:255;not null;uniqueIndex:ux_schema_migrations_name"`
	AppliedAt time.Time `gorm:"column:applied_at;autoCreateTime"`
}

func (Record) TableName() string { return "schema_migrations" }

// Runner sequences registered steps against one database. Each step runs
// inside a transaction together with its bookkeeping row; on engines without
// transactional DDL (MySQL) that is best effort and a failed step may need
// operator remediation.
type Runner struct {
	db     *gorm.DB
	logger *log.Logger
	steps  []Step
}

// NewRunner registers steps in apply order. Panics on a duplicate step name,
// since two steps with one name make the bookkeeping table ambiguous.
func NewRunner(db *gorm.DB, steps ...Step) *Runner {
	seen := make(map[string]struct{}, len(steps))
	for _, s := range steps {
		if _, ok := seen[s.Name()]; ok {
			panic(fmt.Sprintf("migration: step %q registered twice", s.Name()))
		}
		seen[s.Name()] = struct{}{}
	}
	return &Runner{
		db:     db,
		logger: log.New(os.Stderr, "migration: ", log.LstdFlags),
		steps:  steps,
	}
}

func (r *Runner) ensureTable(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}

// Applied returns the bookkeeping rows in application order.
func (r *Runner) Applied(ctx context.Context) ([]Record, error) {
	db := r.db.WithContext(ctx)
	if err := r.ensureTable(db); err != nil {
		return nil, err
	}
	var out []Record
	if err := db.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Pending returns the registered steps that have not been applied yet.
func (r *Runner) Pending(ctx context.Context) ([]Step, error) {
	applied, err := r.Applied(ctx)
	if err != nil {
		return nil, err
	}
	done := make(map[string]struct{}, len(applied))
	for _, rec := range applied {
		done[rec.Name] = struct{}{}
	}
	var out []Step
	for _, s := range r.steps {
		if _, ok := done[s.Name()]; !ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// Up applies every pending step in registration order and reports how many
// ran. The first failing step aborts the run; its transaction is rolled back
// and the error is surfaced uninterpreted.
func (r *Runner) Up(ctx context.Context) (int, error) {
	pending, err := r.Pending(ctx)
	if err != nil {
		return 0, err
	}
	applied := 0
	for _, s := range pending {
		r.logger.Printf("applying %s", s.Name())
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := s.Apply(tx); err != nil {
				return err
			}
			return tx.Create(&Record{Name: s.Name()}).Error
		})
		if err != nil {
			return applied, fmt.Errorf("apply %s: %w", s.Name(), err)
		}
		applied++
	}
	return applied, nil
}

// Down reverts the most recently applied step.
func (r *Runner) Down(ctx context.Context) error {
	applied, err := r.Applied(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		return fmt.Errorf("migration: nothing to revert")
	}
	last := applied[len(applied)-1]

	step, ok := r.findStep(last.Name)
	if !ok {
		return fmt.Errorf("migration: step %q is applied but not registered", last.Name)
	}

	r.logger.Printf("reverting %s", step.Name())
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := step.Revert(tx); err != nil {
			return err
		}
		return tx.Delete(&Record{}, last.ID).Error
	})
	if err != nil {
		return fmt.Errorf("revert %s: %w", step.Name(), err)
	}
	return nil
}

func (r *Runner) findStep(name string) (Step, bool) {
	for _, s := range r.steps {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
