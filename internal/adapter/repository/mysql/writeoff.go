package mysql

import (
	"context"

	"gorm.io/gorm"

	"writeoff-service/internal/domain/writeoff"
)

type WriteOffRepository struct{ db *gorm.DB }

func NewWriteOffRepository(db *gorm.DB) *WriteOffRepository { return &WriteOffRepository{db: db} }

// Tx runs fn in a db transaction, passing a repo bound to the tx
func (r *WriteOffRepository) Tx(ctx context.Context, fn func(repo writeoff.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&WriteOffRepository{db: tx})
	})
}

func (r *WriteOffRepository) Create(ctx context.Context, w *writeoff.WriteOff) error {
	return r.db.WithContext(ctx).Omit("To", "Pdf").Create(w).Error
}

func (r *WriteOffRepository) GetByID(ctx context.Context, id uint) (*writeoff.WriteOff, error) {
	var out writeoff.WriteOff
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// AttachPdf sets pdfId guarded by the version counter: the UPDATE matches
// only the version the caller read, so a concurrent writer loses exactly one
// of the two races instead of silently overwriting.
func (r *WriteOffRepository) AttachPdf(ctx context.Context, w *writeoff.WriteOff, pdfID uint) error {
	return r.setPdf(ctx, w, &pdfID)
}

func (r *WriteOffRepository) DetachPdf(ctx context.Context, w *writeoff.WriteOff) error {
	return r.setPdf(ctx, w, nil)
}

func (r *WriteOffRepository) setPdf(ctx context.Context, w *writeoff.WriteOff, pdfID *uint) error {
	res := r.db.WithContext(ctx).Model(&writeoff.WriteOff{}).
		Where("id = ? AND version = ?", w.ID, w.Version).
		Updates(map[string]any{"pdfId": pdfID, "version": w.Version + 1})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return writeoff.ErrVersionConflict
	}
	w.PdfID = pdfID
	w.Version++
	return nil
}
