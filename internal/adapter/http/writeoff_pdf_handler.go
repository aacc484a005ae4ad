package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"writeoff-service/internal/domain/writeoff"
	"writeoff-service/internal/usecase/writeoffpdf"
)

type WriteOffPdfHandler struct{ uc *writeoffpdf.Usecase }

func NewWriteOffPdfHandler(uc *writeoffpdf.Usecase) *WriteOffPdfHandler {
	return &WriteOffPdfHandler{uc: uc}
}

type generatePdfReq struct {
	CreatedByID uint `json:"created_by_id" validate:"required,gte=1"`
}

func (h *WriteOffPdfHandler) Generate(c echo.Context) error {
	writeOffID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid write-off id"})
	}

	var req generatePdfReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	dto, err := h.uc.Generate(c.Request().Context(), writeOffID, req.CreatedByID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, writeoff.ErrVersionConflict):
		return c.JSON(http.StatusConflict, map[string]string{"error": "write-off was modified concurrently"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *WriteOffPdfHandler) Get(c echo.Context) error {
	writeOffID, err := paramID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid write-off id"})
	}

	dto, err := h.uc.Get(c.Request().Context(), writeOffID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, writeoffpdf.ErrNoPdf):
		return c.JSON(http.StatusNotFound, map[string]string{"error": "not found"})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, dto)
}

func paramID(c echo.Context) (uint, error) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || n == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(n), nil
}
