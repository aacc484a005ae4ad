package writeoffmock

import (
	"context"

	"writeoff-service/internal/domain/uow"
	domain "writeoff-service/internal/domain/writeoff"
)

// Repo is a function-backed mock that satisfies writeoff.Repository.
// Only methods you need are included; add more as tests require.
type Repo struct {
	CreateFn    func(ctx context.Context, w *domain.WriteOff) error
	GetByIDFn   func(ctx context.Context, id uint) (*domain.WriteOff, error)
	AttachPdfFn func(ctx context.Context, w *domain.WriteOff, pdfID uint) error
	DetachPdfFn func(ctx context.Context, w *domain.WriteOff) error
}

func (m *Repo) Create(ctx context.Context, w *domain.WriteOff) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, w)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint) (*domain.WriteOff, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) AttachPdf(ctx context.Context, w *domain.WriteOff, pdfID uint) error {
	if m.AttachPdfFn != nil {
		return m.AttachPdfFn(ctx, w, pdfID)
	}
	return nil
}

func (m *Repo) DetachPdf(ctx context.Context, w *domain.WriteOff) error {
	if m.DetachPdfFn != nil {
		return m.DetachPdfFn(ctx, w)
	}
	return nil
}

// PdfRepo mocks writeoff.PdfRepository.
type PdfRepo struct {
	CreateFn     func(ctx context.Context, p *domain.WriteOffPdf) error
	GetByIDFn    func(ctx context.Context, id uint) (*domain.WriteOffPdf, error)
	DeleteByIDFn func(ctx context.Context, id uint) error
}

func (m *PdfRepo) Create(ctx context.Context, p *domain.WriteOffPdf) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *PdfRepo) GetByID(ctx context.Context, id uint) (*domain.WriteOffPdf, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *PdfRepo) DeleteByID(ctx context.Context, id uint) error {
	if m.DeleteByIDFn != nil {
		return m.DeleteByIDFn(ctx, id)
	}
	return nil
}

// UoW mocks uow.UnitOfWork. By default WithinWriteOffTx resolves the
// write-off through Repos.WriteOffs and calls fn without any transaction.
type UoW struct {
	Repos            uow.Repos
	WithinTxFn       func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinWriteOffFn func(ctx context.Context, id uint, fn func(r uow.Repos, w *domain.WriteOff) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return fn(m.Repos)
}

func (m *UoW) WithinWriteOffTx(ctx context.Context, id uint, fn func(r uow.Repos, w *domain.WriteOff) error) error {
	if m.WithinWriteOffFn != nil {
		return m.WithinWriteOffFn(ctx, id, fn)
	}
	w, err := m.Repos.WriteOffs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return fn(m.Repos, w)
}
