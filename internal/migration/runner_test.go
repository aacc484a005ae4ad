package migration

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

// fakeStep records apply/revert calls and issues real DDL so transaction
// rollback is observable.
type fakeStep struct {
	name      string
	calls     *[]string
	failApply bool
}

func (s fakeStep) Name() string { return s.name }

func (s fakeStep) Apply(db *gorm.DB) error {
	if err := db.Exec(fmt.Sprintf("CREATE TABLE %s (id integer)", s.name)).Error; err != nil {
		return err
	}
	if s.failApply {
		return errors.New("boom")
	}
	*s.calls = append(*s.calls, "apply:"+s.name)
	return nil
}

func (s fakeStep) Revert(db *gorm.DB) error {
	if err := db.Exec(fmt.Sprintf("DROP TABLE %s", s.name)).Error; err != nil {
		return err
	}
	*s.calls = append(*s.calls, "revert:"+s.name)
	return nil
}

func TestUp_AppliesInOrderOnce(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	r := NewRunner(db,
		fakeStep{name: "s1", calls: &calls},
		fakeStep{name: "s2", calls: &calls},
	)
	ctx := context.Background()

	n, err := r.Up(ctx)
	if err != nil {
		t.Fatalf("Up: %v", err)
	}
	if n != 2 {
		t.Fatalf("applied = %d, want 2", n)
	}
	if len(calls) != 2 || calls[0] != "apply:s1" || calls[1] != "apply:s2" {
		t.Fatalf("unexpected call order: %v", calls)
	}

	applied, err := r.Applied(ctx)
	if err != nil {
		t.Fatalf("Applied: %v", err)
	}
	if len(applied) != 2 || applied[0].Name != "s1" || applied[1].Name != "s2" {
		t.Fatalf("unexpected records: %+v", applied)
	}

	// second run is a no-op
	n, err = r.Up(ctx)
	if err != nil {
		t.Fatalf("second Up: %v", err)
	}
	if n != 0 || len(calls) != 2 {
		t.Fatalf("second Up reapplied steps: n=%d calls=%v", n, calls)
	}
}

func TestNewRunner_DuplicateNamePanics(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate step name")
		}
	}()
	NewRunner(db,
		fakeStep{name: "dup", calls: &calls},
		fakeStep{name: "dup", calls: &calls},
	)
}

func TestUp_FailingStepRollsBack(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	r := NewRunner(db,
		fakeStep{name: "good", calls: &calls},
		fakeStep{name: "bad", calls: &calls, failApply: true},
	)
	ctx := context.Background()

	n, err := r.Up(ctx)
	if err == nil {
		t.Fatalf("Up succeeded, want failure from bad step")
	}
	if n != 1 {
		t.Fatalf("applied = %d, want 1 (only the good step)", n)
	}

	// the failed step's DDL and bookkeeping row were rolled back together
	if db.Migrator().HasTable("bad") {
		t.Errorf("bad step's table survived the rollback")
	}
	applied, err := r.Applied(ctx)
	if err != nil {
		t.Fatalf("Applied: %v", err)
	}
	if len(applied) != 1 || applied[0].Name != "good" {
		t.Fatalf("unexpected records after failure: %+v", applied)
	}
}

func TestDown_RevertsLatest(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	r := NewRunner(db,
		fakeStep{name: "s1", calls: &calls},
		fakeStep{name: "s2", calls: &calls},
	)
	ctx := context.Background()

	if _, err := r.Up(ctx); err != nil {
		t.Fatalf("Up: %v", err)
	}
	if err := r.Down(ctx); err != nil {
		t.Fatalf("Down: %v", err)
	}
	if calls[len(calls)-1] != "revert:s2" {
		t.Fatalf("expected s2 reverted last, calls=%v", calls)
	}

	applied, err := r.Applied(ctx)
	if err != nil {
		t.Fatalf("Applied: %v", err)
	}
	if len(applied) != 1 || applied[0].Name != "s1" {
		t.Fatalf("unexpected records after Down: %+v", applied)
	}

	// s2 became pending again
	pending, err := r.Pending(ctx)
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Name() != "s2" {
		t.Fatalf("unexpected pending after Down: %v", pending)
	}
}

func TestDown_NothingApplied(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	r := NewRunner(db, fakeStep{name: "s1", calls: &calls})

	if err := r.Down(context.Background()); err == nil {
		t.Fatalf("Down with empty history succeeded, want error")
	}
}

func TestDown_UnregisteredStep(t *testing.T) {
	db := openTestDB(t)
	var calls []string
	ctx := context.Background()

	r1 := NewRunner(db, fakeStep{name: "s1", calls: &calls})
	if _, err := r1.Up(ctx); err != nil {
		t.Fatalf("Up: %v", err)
	}

	// a runner built without s1 cannot revert it
	r2 := NewRunner(db)
	if err := r2.Down(ctx); err == nil {
		t.Fatalf("Down of unregistered step succeeded, want error")
	}
}
