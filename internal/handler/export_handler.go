package handler

import (
	"context"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lecturer-admin-api/internal/service"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
	"github.com/noah-isme/lecturer-admin-api/pkg/response"
)

// Export responses report how many rows matched and whether the file was cut short.
const (
	totalCountHeader = "X-Total-Count"
	truncatedHeader  = "X-Export-Truncated"
)

type exportService interface {
	ExportLecturers(ctx context.Context, state tablestate.State, format string) (*service.ExportFile, error)
	ExportCourses(ctx context.Context, state tablestate.State, format string) (*service.ExportFile, error)
}

// ExportHandler streams filtered listings as downloadable files.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Lecturers godoc
// @Summary Export lecturers matching the listing state
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Header 200 {integer} X-Total-Count "Rows matching the listing state"
// @Header 200 {boolean} X-Export-Truncated "True when the file holds fewer rows than matched"
// @Router /lecturers/export [get]
func (h *ExportHandler) Lecturers(c *gin.Context) {
	state, format := exportState(c)
	h.send(c, func(ctx context.Context) (*service.ExportFile, error) {
		return h.exports.ExportLecturers(ctx, state, format)
	})
}

// Courses godoc
// @Summary Export courses matching the listing state
// @Tags Exports
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Header 200 {integer} X-Total-Count "Rows matching the listing state"
// @Header 200 {boolean} X-Export-Truncated "True when the file holds fewer rows than matched"
// @Router /courses/export [get]
func (h *ExportHandler) Courses(c *gin.Context) {
	state, format := exportState(c)
	h.send(c, func(ctx context.Context) (*service.ExportFile, error) {
		return h.exports.ExportCourses(ctx, state, format)
	})
}

func (h *ExportHandler) send(c *gin.Context, produce func(ctx context.Context) (*service.ExportFile, error)) {
	file, err := produce(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header(totalCountHeader, strconv.Itoa(file.Total))
	c.Header(truncatedHeader, strconv.FormatBool(file.Truncated))
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
