package uow

import (
	"context"

	"writeoff-service/internal/domain/writeoff"
)

type Repos struct {
	WriteOffs writeoff.Repository
	Pdfs      writeoff.PdfRepository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// convenience: lock the write-off row first, then pass it in
	WithinWriteOffTx(ctx context.Context, id uint, fn func(r Repos, w *writeoff.WriteOff) error) error
}
