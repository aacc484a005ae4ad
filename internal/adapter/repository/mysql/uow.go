package mysql

import (
	"context"

	"gorm.io/gorm"

	"writeoff-service/internal/domain/uow"
	"writeoff-service/internal/domain/writeoff"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			WriteOffs: &WriteOffRepository{db: tx},
			Pdfs:      &WriteOffPdfRepository{db: tx},
		}
		return fn(r)
	})
}

func (u *GormUoW) WithinWriteOffTx(ctx context.Context, id uint, fn func(r uow.Repos, w *writeoff.WriteOff) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := uow.Repos{
			WriteOffs: &WriteOffRepository{db: tx},
			Pdfs:      &WriteOffPdfRepository{db: tx},
		}
		// read the write-off inside the tx so the version check in
		// AttachPdf races against a consistent snapshot
		w, err := r.WriteOffs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(r, w)
	})
}
