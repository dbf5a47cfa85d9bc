package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/service"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
	"github.com/noah-isme/lecturer-admin-api/pkg/response"
)

type lecturerService interface {
	List(ctx context.Context, state tablestate.State) (models.Page[models.Lecturer], bool, error)
	Get(ctx context.Context, id string) (*models.Lecturer, bool, error)
	Create(ctx context.Context, req service.CreateLecturerRequest) (*models.Lecturer, error)
	Update(ctx context.Context, id string, req service.UpdateLecturerRequest) (*models.Lecturer, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, req service.BulkDeleteRequest) (*service.BulkDeleteResult, error)
}

// LecturerHandler wires lecturer services to HTTP routes.
type LecturerHandler struct {
	lecturers lecturerService
}

// NewLecturerHandler constructs a new LecturerHandler.
func NewLecturerHandler(lecturers lecturerService) *LecturerHandler {
	return &LecturerHandler{lecturers: lecturers}
}

// List godoc
// @Summary List lecturers
// @Tags Lecturers
// @Produce json
// @Param page query int false "Zero-based page index"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "Sort column (name,email,type,courseLevelPreference,createdAt)"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Param search query string false "Search by name"
// @Param type query string false "Comma separated lecturer types"
// @Param courseLevelPreference query string false "Comma separated course level preferences"
// @Param courseId query string false "Comma separated course ids"
// @Success 200 {object} response.Envelope
// @Router /lecturers [get]
func (h *LecturerHandler) List(c *gin.Context) {
	state := listingState(c)
	page, cacheHit, err := h.lecturers.List(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPage(c, state, page, cacheHit)
}

// Get godoc
// @Summary Get lecturer detail
// @Tags Lecturers
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /lecturers/{id} [get]
func (h *LecturerHandler) Get(c *gin.Context) {
	lecturer, cacheHit, err := h.lecturers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, lecturer, cacheHit)
}

// Create godoc
// @Summary Create lecturer
// @Tags Lecturers
// @Accept json
// @Produce json
// @Param payload body service.CreateLecturerRequest true "Lecturer payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /lecturers [post]
func (h *LecturerHandler) Create(c *gin.Context) {
	var req service.CreateLecturerRequest
	if !bindJSON(c, &req) {
		return
	}
	lecturer, err := h.lecturers.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, lecturer)
}

// Update godoc
// @Summary Update lecturer
// @Tags Lecturers
// @Accept json
// @Produce json
// @Param id path string true "Lecturer ID"
// @Param payload body service.UpdateLecturerRequest true "Lecturer payload"
// @Success 200 {object} response.Envelope
// @Router /lecturers/{id} [put]
func (h *LecturerHandler) Update(c *gin.Context) {
	var req service.UpdateLecturerRequest
	if !bindJSON(c, &req) {
		return
	}
	lecturer, err := h.lecturers.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, lecturer, nil)
}

// Delete godoc
// @Summary Delete lecturer with its assignments and qualifications
// @Tags Lecturers
// @Param id path string true "Lecturer ID"
// @Success 204
// @Router /lecturers/{id} [delete]
func (h *LecturerHandler) Delete(c *gin.Context) {
	if err := h.lecturers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteMany godoc
// @Summary Delete several lecturers
// @Tags Lecturers
// @Accept json
// @Produce json
// @Param payload body service.BulkDeleteRequest true "Lecturer IDs"
// @Success 200 {object} response.Envelope
// @Router /lecturers/bulk-delete [post]
func (h *LecturerHandler) DeleteMany(c *gin.Context) {
	var req service.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.lecturers.DeleteMany(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
