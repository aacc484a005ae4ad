// Package steps holds the concrete schema steps in apply order. The base
// schema (user, write_off, ...) predates this runner and is managed by the
// database provisioning scripts; steps here only describe deltas on top.
//
// Each step declares its own local model structs instead of importing the
// domain entities: the DDL a step issued in the past must not drift when an
// entity gains a field later.
package steps

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"writeoff-service/internal/migration"
)

// All returns every registered schema step in apply order.
func All() []migration.Step {
	return []migration.Step{
		WriteOffPdf(),
	}
}

// WriteOffPdf introduces the write_off_pdf table (one row per generated
// write-off receipt PDF) and links it to write_off via a nullable pdfId
// column. The pdf rows are owned by the creating user (cascade) while a
// write_off still pointing at a pdf blocks its deletion (restrict).
func WriteOffPdf() migration.Step { return writeOffPdfStep{} }

type writeOffPdfStep struct{}

func (writeOffPdfStep) Name() string { return "0001_write_off_pdf" }

// user mirrors only what the foreign key needs from the existing user table.
type user struct {
	ID uint `gorm:"primaryKey;column:id"`
}

func (user) TableName() string { return "user" }

type writeOffPdf struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id"`
	Hash         string    `gorm:"column:hash;size:255;not null"`
	DownloadName string    `gorm:"column:downloadName;size:255;not null"`
	Location     string    `gorm:"column:location;size:255;not null"`
	CreatedByID  uint      `gorm:"column:createdById;not null"`
	CreatedBy    user      `gorm:"foreignKey:CreatedByID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `gorm:"column:createdAt;type:datetime(6);not null;autoCreateTime:micro"`
	UpdatedAt    time.Time `gorm:"column:updatedAt;type:datetime(6);not null;autoUpdateTime:micro"`
	Version      int       `gorm:"column:version;not null"`
}

func (writeOffPdf) TableName() string { return "write_off_pdf" }

// writeOff mirrors only the columns this step touches on the existing
// write_off table.
type writeOff struct {
	ID    uint         `gorm:"primaryKey;column:id"`
	PdfID *uint        `gorm:"column:pdfId"`
	Pdf   *writeOffPdf `gorm:"foreignKey:PdfID;references:ID;constraint:OnDelete:RESTRICT"`
}

func (writeOff) TableName() string { return "write_off" }

// mysqlTimestampDefaults finishes the write_off_pdf create on MySQL. The
// fractional-precision defaults cannot be expressed in a dialect-neutral
// struct tag (sqlite has no CURRENT_TIMESTAMP(6)); without them a raw SQL
// insert omitting the timestamps is rejected.
const mysqlTimestampDefaults = "ALTER TABLE write_off_pdf" +
	" MODIFY createdAt datetime(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)," +
	" MODIFY updatedAt datetime(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6) ON UPDATE CURRENT_TIMESTAMP(6)"

func applyTimestampDefaults(db *gorm.DB) error {
	if db.Dialector.Name() != "mysql" {
		return nil
	}
	return db.Exec(mysqlTimestampDefaults).Error
}

// Apply issues the DDL strictly ordered: table, its timestamp defaults, the
// owning-user key, the pdfId column, the restrict key. No existence checks: a
// double application must fail loudly instead of masking a runner bug.
func (writeOffPdfStep) Apply(db *gorm.DB) error {
	m := db.Migrator()

	if err := m.CreateTable(&writeOffPdf{}); err != nil {
		return err
	}
	if err := applyTimestampDefaults(db); err != nil {
		return err
	}
	if err := m.CreateConstraint(&writeOffPdf{}, "CreatedBy"); err != nil {
		return err
	}
	if err := m.AddColumn(&writeOff{}, "PdfID"); err != nil {
		return err
	}
	return m.CreateConstraint(&writeOff{}, "Pdf")
}

// Revert undoes Apply in reverse dependency order; foreign keys go before the
// column and table they hang on. Both keys are looked up first so reverting a
// never-applied step reports ErrConstraintNotFound instead of half-reverting.
func (writeOffPdfStep) Revert(db *gorm.DB) error {
	m := db.Migrator()

	if !m.HasConstraint(&writeOff{}, "Pdf") {
		return fmt.Errorf("%w: write_off(pdfId)", migration.ErrConstraintNotFound)
	}
	if err := m.DropConstraint(&writeOff{}, "Pdf"); err != nil {
		return err
	}
	if err := m.DropColumn(&writeOff{}, "PdfID"); err != nil {
		return err
	}

	if !m.HasConstraint(&writeOffPdf{}, "CreatedBy") {
		return fmt.Errorf("%w: write_off_pdf(createdById)", migration.ErrConstraintNotFound)
	}
	if err := m.DropConstraint(&writeOffPdf{}, "CreatedBy"); err != nil {
		return err
	}
	return m.DropTable(&writeOffPdf{})
}
