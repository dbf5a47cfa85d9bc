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

type courseService interface {
	List(ctx context.Context, state tablestate.State) (models.Page[models.Course], bool, error)
	Get(ctx context.Context, id string) (*models.Course, bool, error)
	Create(ctx context.Context, req service.CreateCourseRequest) (*models.Course, error)
	Update(ctx context.Context, id string, req service.UpdateCourseRequest) (*models.Course, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, req service.BulkDeleteRequest) (*service.BulkDeleteResult, error)
}

// CourseHandler wires course services to HTTP routes.
type CourseHandler struct {
	courses courseService
}

// NewCourseHandler constructs a new CourseHandler.
func NewCourseHandler(courses courseService) *CourseHandler {
	return &CourseHandler{courses: courses}
}

// List godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param page query int false "Zero-based page index"
// @Param pageSize query int false "Page size (max 100)"
// @Param sortBy query string false "Sort column (name,courseLevel,semester,isOpen,createdAt)"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Param search query string false "Search by name"
// @Param isOpen query string false "Comma separated open flags (true,false)"
// @Param courseLevel query string false "Comma separated course levels"
// @Param semester query string false "Comma separated semesters, none for courses without one"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CourseHandler) List(c *gin.Context) {
	state := listingState(c)
	page, cacheHit, err := h.courses.List(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondPage(c, state, page, cacheHit)
}

// Get godoc
// @Summary Get course detail
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CourseHandler) Get(c *gin.Context) {
	course, cacheHit, err := h.courses.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, course, cacheHit)
}

// Create godoc
// @Summary Create course
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.CreateCourseRequest true "Course payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses [post]
func (h *CourseHandler) Create(c *gin.Context) {
	var req service.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, course)
}

// Update godoc
// @Summary Update course
// @Tags Courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.UpdateCourseRequest true "Course payload"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [put]
func (h *CourseHandler) Update(c *gin.Context) {
	var req service.UpdateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.courses.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// Delete godoc
// @Summary Delete course with its assignments and qualifications
// @Tags Courses
// @Param id path string true "Course ID"
// @Success 204
// @Router /courses/{id} [delete]
func (h *CourseHandler) Delete(c *gin.Context) {
	if err := h.courses.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteMany godoc
// @Summary Delete several courses
// @Tags Courses
// @Accept json
// @Produce json
// @Param payload body service.BulkDeleteRequest true "Course IDs"
// @Success 200 {object} response.Envelope
// @Router /courses/bulk-delete [post]
func (h *CourseHandler) DeleteMany(c *gin.Context) {
	var req service.BulkDeleteRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.courses.DeleteMany(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
