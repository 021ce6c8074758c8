package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tradegate/backend/internal/application/importer"
	"github.com/tradegate/backend/internal/infrastructure/logger"
	"github.com/tradegate/backend/internal/infrastructure/tabular"
	"github.com/tradegate/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// ImportHandler handles bulk catalogue upload endpoints
type ImportHandler struct {
	BaseHandler
	service       *importer.Service
	maxUploadSize int64
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(service *importer.Service, maxUploadSize int64) *ImportHandler {
	return &ImportHandler{
		service:       service,
		maxUploadSize: maxUploadSize,
	}
}

// ImportSeasons imports seasons from an uploaded CSV or XLSX file
func (h *ImportHandler) ImportSeasons(c *gin.Context) {
	h.runImport(c, importer.NewSeasonImporter())
}

// ImportHeadings imports headings from an uploaded CSV or XLSX file
func (h *ImportHandler) ImportHeadings(c *gin.Context) {
	h.runImport(c, importer.NewHeadingImporter())
}

// ImportHSCodes imports HS codes from an uploaded CSV or XLSX file
func (h *ImportHandler) ImportHSCodes(c *gin.Context) {
	h.runImport(c, importer.NewHSCodeImporter())
}

func (h *ImportHandler) runImport(c *gin.Context, imp importer.Importer) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "file is required")
		return
	}
	defer file.Close()

	if h.maxUploadSize > 0 && header.Size > h.maxUploadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeValidation, "file exceeds the maximum upload size")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.InternalError(c, "Failed to read uploaded file")
		return
	}

	dryRun := parseDryRun(c.PostForm("dry_run"))

	report, err := h.service.Run(c.Request.Context(), imp, header.Filename, data, dryRun)
	if err != nil {
		var missingErr *importer.MissingColumnsError
		switch {
		case errors.As(err, &missingErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    dto.ErrCodeValidation,
					"message": "Missing required columns",
				},
				"missing":  missingErr.Missing,
				"received": missingErr.Received,
			})
		case errors.Is(err, tabular.ErrUnsupportedFileType):
			h.BadRequest(c, "Unsupported file type. Upload a .csv or .xlsx file")
		default:
			logger.GetGinLogger(c).Error("Import failed",
				zap.String("model", imp.Model()),
				zap.Error(err))
			h.InternalError(c, "Import failed")
		}
		return
	}

	status := http.StatusOK
	if report.HasErrors() {
		status = http.StatusMultiStatus
	}
	c.JSON(status, report)
}

// parseDryRun reports whether the form value requests a dry run
func parseDryRun(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	default:
		return false
	}
}
