package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/service"
)

// maxWorkbookSize caps uploaded admission workbooks.
const maxWorkbookSize = 10 << 20

// WorkbookImporter loads admission thresholds from a spreadsheet.
type WorkbookImporter interface {
	ImportWorkbook(ctx context.Context, r io.Reader, universityCode string) (*service.ImportReport, error)
}

// ImportHandler handles spreadsheet uploads of admission thresholds.
type ImportHandler struct {
	importer WorkbookImporter
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(importer WorkbookImporter, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		importer: importer,
		log:      log.With().Str("component", "import_handler").Logger(),
	}
}

// ImportRequirements godoc
// POST /api/v1/admin/import/requirements (multipart: file, universityCode)
// Upserts every threshold in the workbook and reports rows it skipped.
func (h *ImportHandler) ImportRequirements(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}
	if header.Size > maxWorkbookSize {
		response.Fail(c, http.StatusBadRequest, response.ErrFileTooLarge)
		return
	}

	code := strings.TrimSpace(c.PostForm("universityCode"))
	if code == "" {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
			map[string]string{"universityCode": "universityCode is a required field"})
		return
	}

	report, err := h.importer.ImportWorkbook(c.Request.Context(), file, code)
	if errors.Is(err, service.ErrInvalidWorkbook) {
		response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		return
	}
	if err != nil {
		failFromService(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"report": report})
}
