package writeoff

import (
	"context"
	"errors"
)

// ErrVersionConflict signals a stale optimistic version on update.
var ErrVersionConflict = errors.New("write-off was modified concurrently")

type Repository interface {
	Create(ctx context.Context, w *WriteOff) error
	GetByID(ctx context.Context, id uint) (*WriteOff, error)
	// AttachPdf repoints w.pdfId with an optimistic version check; w must
	// carry the version the caller read.
	AttachPdf(ctx context.Context, w *WriteOff, pdfID uint) error
	DetachPdf(ctx context.Context, w *WriteOff) error
}

type PdfRepository interface {
	Create(ctx context.Context, p *WriteOffPdf) error
	GetByID(ctx context.Context, id uint) (*WriteOffPdf, error)
	DeleteByID(ctx context.Context, id uint) error
}
