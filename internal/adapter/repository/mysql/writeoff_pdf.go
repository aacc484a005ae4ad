package mysql

import (
	"context"

	"gorm.io/gorm"

	"writeoff-service/internal/domain/writeoff"
)

type WriteOffPdfRepository struct{ db *gorm.DB }

func NewWriteOffPdfRepository(db *gorm.DB) *WriteOffPdfRepository {
	return &WriteOffPdfRepository{db: db}
}

func (r *WriteOffPdfRepository) Create(ctx context.Context, p *writeoff.WriteOffPdf) error {
	return r.db.WithContext(ctx).Omit("CreatedBy").Create(p).Error
}

func (r *WriteOffPdfRepository) GetByID(ctx context.Context, id uint) (*writeoff.WriteOffPdf, error) {
	var out writeoff.WriteOffPdf
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

// DeleteByID fails while any write_off still references the row (restrict
// foreign key); callers detach first.
func (r *WriteOffPdfRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&writeoff.WriteOffPdf{}, id).Error
}
