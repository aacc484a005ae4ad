package writeoffpdf

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"writeoff-service/internal/domain/uow"
	"writeoff-service/internal/domain/writeoff"
	"writeoff-service/pkg/id"
)

// ErrNoPdf means the write-off exists but has no receipt yet.
var ErrNoPdf = errors.New("write-off has no pdf")

// Renderer turns a write-off into receipt PDF bytes. The production
// rendering engine lives outside this service.
type Renderer interface {
	Render(ctx context.Context, w *writeoff.WriteOff) ([]byte, error)
}

// Storage persists PDF bytes and returns the location recorded on the row.
type Storage interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

type Usecase struct {
	unit      uow.UnitOfWork
	writeOffs writeoff.Repository
	pdfs      writeoff.PdfRepository
	renderer  Renderer
	store     Storage
}

func NewUsecase(unit uow.UnitOfWork, writeOffs writeoff.Repository, pdfs writeoff.PdfRepository, renderer Renderer, store Storage) *Usecase {
	return &Usecase{unit: unit, writeOffs: writeOffs, pdfs: pdfs, renderer: renderer, store: store}
}

type PdfDTO struct {
	PdfID        uint      `json:"pdf_id"`
	WriteOffID   uint      `json:"write_off_id"`
	Hash         string    `json:"hash"`
	DownloadName string    `json:"download_name"`
	Location     string    `json:"location"`
	CreatedByID  uint      `json:"created_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// Generate renders, stores and attaches a receipt PDF for the write-off.
// Rendering and the blob write happen outside the transaction; the row
// insert and the pdfId attachment commit together. Regeneration repoints
// pdfId at the new row; the old row stays until its owner is deleted.
func (u *Usecase) Generate(ctx context.Context, writeOffID, createdByID uint) (*PdfDTO, error) {
	if writeOffID == 0 || createdByID == 0 {
		return nil, errors.New("invalid input")
	}

	w, err := u.writeOffs.GetByID(ctx, writeOffID)
	if err != nil {
		return nil, err
	}

	data, err := u.renderer.Render(ctx, w)
	if err != nil {
		return nil, fmt.Errorf("render write-off %d: %w", w.ID, err)
	}
	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	// salted object key so a regeneration never clobbers bytes an older
	// row still points at
	objectName := fmt.Sprintf("write-off-%d-%s.pdf", w.ID, id.NewID32()[:8])
	location, err := u.store.Put(ctx, objectName, data)
	if err != nil {
		return nil, fmt.Errorf("store pdf for write-off %d: %w", w.ID, err)
	}

	rec := &writeoff.WriteOffPdf{
		Hash:         hash,
		DownloadName: fmt.Sprintf("write-off-%d.pdf", w.ID),
		Location:     location,
		CreatedByID:  createdByID,
		Version:      1,
	}
	err = u.unit.WithinWriteOffTx(ctx, w.ID, func(r uow.Repos, wo *writeoff.WriteOff) error {
		if err := r.Pdfs.Create(ctx, rec); err != nil {
			return err
		}
		return r.WriteOffs.AttachPdf(ctx, wo, rec.ID)
	})
	if err != nil {
		return nil, err
	}

	return toDTO(w.ID, rec), nil
}

// Get returns the receipt metadata for a write-off.
func (u *Usecase) Get(ctx context.Context, writeOffID uint) (*PdfDTO, error) {
	w, err := u.writeOffs.GetByID(ctx, writeOffID)
	if err != nil {
		return nil, err
	}
	if w.PdfID == nil {
		return nil, ErrNoPdf
	}
	rec, err := u.pdfs.GetByID(ctx, *w.PdfID)
	if err != nil {
		return nil, err
	}
	return toDTO(w.ID, rec), nil
}

func toDTO(writeOffID uint, rec *writeoff.WriteOffPdf) *PdfDTO {
	return &PdfDTO{
		PdfID:        rec.ID,
		WriteOffID:   writeOffID,
		Hash:         rec.Hash,
		DownloadName: rec.DownloadName,
		Location:     rec.Location,
		CreatedByID:  rec.CreatedByID,
		CreatedAt:    rec.CreatedAt,
	}
}
