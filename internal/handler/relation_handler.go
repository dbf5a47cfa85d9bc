package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/service"
	"github.com/noah-isme/lecturer-admin-api/pkg/response"
)

type relationService interface {
	ListCoursesOfLecturer(ctx context.Context, lecturerID string) ([]models.AssignedCourse, bool, error)
	ListLecturersOfCourse(ctx context.Context, courseID string) ([]models.AssignedLecturer, bool, error)
	ListQualifications(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.QualificationDetail, bool, error)
	CreateRelation(ctx context.Context, relation models.RelationName, pair models.RelationPair, attrs *models.QualificationAttributes) error
	DeleteRelation(ctx context.Context, relation models.RelationName, pair models.RelationPair) error
	UpsertRelationAttributes(ctx context.Context, pair models.RelationPair, attrs models.QualificationAttributes) (*models.Qualification, error)
	ReconcileAssignments(ctx context.Context, anchor models.EntityKind, anchorID string, req service.SetAssignmentsRequest) (*service.ReconcileResult, error)
	ReconcileQualifications(ctx context.Context, anchor models.EntityKind, anchorID string, req service.SetQualificationsRequest) (*service.ReconcileResult, error)
}

// createQualificationRequest is the body of POST /qualifications.
type createQualificationRequest struct {
	models.RelationPair
	models.QualificationAttributes
}

// RelationHandler exposes assignments and qualifications from both sides.
type RelationHandler struct {
	relations relationService
}

// NewRelationHandler constructs the handler.
func NewRelationHandler(relations relationService) *RelationHandler {
	return &RelationHandler{relations: relations}
}

// CoursesOfLecturer godoc
// @Summary List courses assigned to a lecturer
// @Tags Assignments
// @Produce json
// @Param id path string true "Lecturer ID"
// @Success 200 {object} response.Envelope
// @Router /lecturers/{id}/courses [get]
func (h *RelationHandler) CoursesOfLecturer(c *gin.Context) {
	courses, cacheHit, err := h.relations.ListCoursesOfLecturer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, courses, cacheHit)
}

// LecturersOfCourse godoc
// @Summary List lecturers assigned to a course
// @Tags Assignments
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/lecturers [get]
func (h *RelationHandler) LecturersOfCourse(c *gin.Context) {
	lecturers, cacheHit, err := h.relations.ListLecturersOfCourse(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	respondCached(c, lecturers, cacheHit)
}

// Qualifications lists the qualifications of the entity named by the :id path parameter.
// @Summary List qualifications of a lecturer or course
// @Tags Qualifications
// @Produce json
// @Param id path string true "Lecturer or course ID"
// @Success 200 {object} response.Envelope
// @Router /lecturers/{id}/qualifications [get]
// @Router /courses/{id}/qualifications [get]
func (h *RelationHandler) Qualifications(anchor models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		qualifications, cacheHit, err := h.relations.ListQualifications(c.Request.Context(), anchor, c.Param("id"))
		if err != nil {
			response.Error(c, err)
			return
		}
		respondCached(c, qualifications, cacheHit)
	}
}

// SetAssignments replaces the assignment set of the anchor entity.
// @Summary Reconcile assignments
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Lecturer or course ID"
// @Param payload body service.SetAssignmentsRequest true "Desired related IDs"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Some operations failed; details list them"
// @Router /lecturers/{id}/courses [put]
// @Router /courses/{id}/lecturers [put]
func (h *RelationHandler) SetAssignments(anchor models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SetAssignmentsRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err := h.relations.ReconcileAssignments(c.Request.Context(), anchor, c.Param("id"), req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result, nil)
	}
}

// SetQualifications replaces the qualification set of the anchor entity.
// @Summary Reconcile qualifications
// @Tags Qualifications
// @Accept json
// @Produce json
// @Param id path string true "Lecturer or course ID"
// @Param payload body service.SetQualificationsRequest true "Desired qualifications"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Some operations failed; details list them"
// @Router /lecturers/{id}/qualifications [put]
// @Router /courses/{id}/qualifications [put]
func (h *RelationHandler) SetQualifications(anchor models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SetQualificationsRequest
		if !bindJSON(c, &req) {
			return
		}
		result, err := h.relations.ReconcileQualifications(c.Request.Context(), anchor, c.Param("id"), req)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, result, nil)
	}
}

// CreateAssignment godoc
// @Summary Assign a lecturer to a course
// @Tags Assignments
// @Accept json
// @Param payload body models.RelationPair true "Pair"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /assignments [post]
func (h *RelationHandler) CreateAssignment(c *gin.Context) {
	var pair models.RelationPair
	if !bindJSON(c, &pair) {
		return
	}
	if err := h.relations.CreateRelation(c.Request.Context(), models.RelationAssignments, pair, nil); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, pair)
}

// CreateQualification godoc
// @Summary Record a qualification
// @Tags Qualifications
// @Accept json
// @Param payload body createQualificationRequest true "Qualification"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /qualifications [post]
func (h *RelationHandler) CreateQualification(c *gin.Context) {
	var req createQualificationRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.relations.CreateRelation(c.Request.Context(), models.RelationQualifications, req.RelationPair, &req.QualificationAttributes); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// UpsertQualification godoc
// @Summary Create or replace the attributes of a qualification
// @Tags Qualifications
// @Accept json
// @Param lecturerId path string true "Lecturer ID"
// @Param courseId path string true "Course ID"
// @Param payload body models.QualificationAttributes true "Attributes"
// @Success 200 {object} response.Envelope
// @Router /qualifications/{lecturerId}/{courseId} [put]
func (h *RelationHandler) UpsertQualification(c *gin.Context) {
	var attrs models.QualificationAttributes
	if !bindJSON(c, &attrs) {
		return
	}
	qualification, err := h.relations.UpsertRelationAttributes(c.Request.Context(), pathPair(c), attrs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, qualification, nil)
}

// DeleteRelation removes one assignment or qualification named by the path.
// @Summary Remove a relation
// @Tags Assignments
// @Param lecturerId path string true "Lecturer ID"
// @Param courseId path string true "Course ID"
// @Success 204
// @Router /assignments/{lecturerId}/{courseId} [delete]
// @Router /qualifications/{lecturerId}/{courseId} [delete]
func (h *RelationHandler) DeleteRelation(relation models.RelationName) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h.relations.DeleteRelation(c.Request.Context(), relation, pathPair(c)); err != nil {
			response.Error(c, err)
			return
		}
		response.NoContent(c)
	}
}

func pathPair(c *gin.Context) models.RelationPair {
	return models.RelationPair{LecturerID: c.Param("lecturerId"), CourseID: c.Param("courseId")}
}
