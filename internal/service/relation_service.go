package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

type assignmentRepository interface {
	ListCoursesByLecturer(ctx context.Context, lecturerID string) ([]models.AssignedCourse, error)
	ListLecturersByCourse(ctx context.Context, courseID string) ([]models.AssignedLecturer, error)
	RelatedIDs(ctx context.Context, anchor models.EntityKind, anchorID string) ([]string, error)
	Create(ctx context.Context, pair models.RelationPair) (*models.Assignment, error)
	Delete(ctx context.Context, pair models.RelationPair) error
	ApplyDelta(ctx context.Context, add, remove []models.RelationPair) error
}

type qualificationRepository interface {
	ListDetails(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.QualificationDetail, error)
	ListForAnchor(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.Qualification, error)
	Create(ctx context.Context, q *models.Qualification) error
	Update(ctx context.Context, q *models.Qualification) error
	Upsert(ctx context.Context, q *models.Qualification) error
	Delete(ctx context.Context, pair models.RelationPair) error
	ApplyDelta(ctx context.Context, add, update []models.Qualification, remove []models.RelationPair) error
}

type lecturerFinder interface {
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
}

type courseFinder interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

// SetAssignmentsRequest is the complete desired set of related ids for an anchor.
type SetAssignmentsRequest struct {
	IDs []string `json:"ids" validate:"max=500,dive,required,uuid"`
}

// SetQualificationsRequest is the complete desired set of qualifications for an anchor.
type SetQualificationsRequest struct {
	Qualifications []QualificationInput `json:"qualifications" validate:"max=500,dive"`
}

// RelationService reads relations and applies relation mutations, either one pair at a
// time or by reconciling an anchor's relations towards a desired set.
type RelationService struct {
	assignments    assignmentRepository
	qualifications qualificationRepository
	lecturers      lecturerFinder
	courses        courseFinder
	cache          *CacheService
	metrics        *MetricsService
	guard          storeGuard
	ttl            time.Duration
	atomic         bool
	concurrency    int
	validator      *validator.Validate
	logger         *zap.Logger
}

// ReconcileOptions selects how relation deltas are written.
type ReconcileOptions struct {
	Atomic      bool
	Concurrency int
}

// NewRelationService constructs a RelationService.
func NewRelationService(
	assignments assignmentRepository,
	qualifications qualificationRepository,
	lecturers lecturerFinder,
	courses courseFinder,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	store StoreOptions,
	reconcile ReconcileOptions,
	logger *zap.Logger,
) *RelationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if reconcile.Concurrency <= 0 {
		reconcile.Concurrency = 8
	}
	return &RelationService{
		assignments:    assignments,
		qualifications: qualifications,
		lecturers:      lecturers,
		courses:        courses,
		cache:          cache,
		metrics:        metrics,
		guard:          newStoreGuard(store.QueryTimeout, metrics, logger),
		ttl:            store.ListingTTL,
		atomic:         reconcile.Atomic,
		concurrency:    reconcile.Concurrency,
		validator:      validate,
		logger:         logger,
	}
}

// ListCoursesOfLecturer returns the courses assigned to a lecturer.
func (s *RelationService) ListCoursesOfLecturer(ctx context.Context, lecturerID string) ([]models.AssignedCourse, bool, error) {
	if err := s.ensureAnchor(ctx, models.EntityLecturer, lecturerID); err != nil {
		return nil, false, err
	}
	tags := relationReadTags(models.EntityLecturer, lecturerID, models.RelationAssignments)
	key := "relations:" + models.RelationTag(models.EntityLecturer, lecturerID, models.RelationAssignments)
	return cachedRelationRead(ctx, s, key, tags, "list_lecturer_courses", func(ctx context.Context) ([]models.AssignedCourse, error) {
		return s.assignments.ListCoursesByLecturer(ctx, lecturerID)
	})
}

// ListLecturersOfCourse returns the lecturers assigned to a course.
func (s *RelationService) ListLecturersOfCourse(ctx context.Context, courseID string) ([]models.AssignedLecturer, bool, error) {
	if err := s.ensureAnchor(ctx, models.EntityCourse, courseID); err != nil {
		return nil, false, err
	}
	tags := relationReadTags(models.EntityCourse, courseID, models.RelationAssignments)
	key := "relations:" + models.RelationTag(models.EntityCourse, courseID, models.RelationAssignments)
	return cachedRelationRead(ctx, s, key, tags, "list_course_lecturers", func(ctx context.Context) ([]models.AssignedLecturer, error) {
		return s.assignments.ListLecturersByCourse(ctx, courseID)
	})
}

// ListQualifications returns the qualifications of a lecturer or a course with display names.
func (s *RelationService) ListQualifications(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.QualificationDetail, bool, error) {
	if err := s.ensureAnchor(ctx, anchor, anchorID); err != nil {
		return nil, false, err
	}
	tags := append(relationReadTags(anchor, anchorID, models.RelationQualifications), models.ListTag(anchor))
	key := "relations:" + models.RelationTag(anchor, anchorID, models.RelationQualifications)
	return cachedRelationRead(ctx, s, key, tags, "list_qualifications", func(ctx context.Context) ([]models.QualificationDetail, error) {
		return s.qualifications.ListDetails(ctx, anchor, anchorID)
	})
}

// CreateRelation inserts one relation row. Adding an existing pair is a Conflict; attrs
// are required for qualifications and ignored for assignments.
func (s *RelationService) CreateRelation(ctx context.Context, relation models.RelationName, pair models.RelationPair, attrs *models.QualificationAttributes) error {
	if err := s.validatePair(pair); err != nil {
		return err
	}
	var err error
	switch relation {
	case models.RelationAssignments:
		err = s.guard.write(ctx, "create_assignment", func(ctx context.Context) error {
			_, err := s.assignments.Create(ctx, pair)
			return err
		})
	case models.RelationQualifications:
		if err := s.validateAttributes(attrs); err != nil {
			return err
		}
		q := &models.Qualification{RelationPair: pair, QualificationAttributes: *attrs}
		err = s.guard.write(ctx, "create_qualification", func(ctx context.Context) error {
			return s.qualifications.Create(ctx, q)
		})
	default:
		return unknownRelation(relation)
	}
	if err != nil {
		if appErrors.FromError(err).Code == appErrors.ErrConflict.Code {
			return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "relation already exists")
		}
		return storeFailure(err, "failed to create relation")
	}
	s.metrics.RecordReconcileOp(string(relation), OpAdd, true)
	s.invalidate(ctx, models.PairTags(pair, relation)...)
	return nil
}

// DeleteRelation removes one relation row; NotFound when the pair is not related.
func (s *RelationService) DeleteRelation(ctx context.Context, relation models.RelationName, pair models.RelationPair) error {
	if !validID(pair.LecturerID) || !validID(pair.CourseID) {
		return appErrors.Clone(appErrors.ErrNotFound, "relation not found")
	}
	var remove func(ctx context.Context, pair models.RelationPair) error
	switch relation {
	case models.RelationAssignments:
		remove = s.assignments.Delete
	case models.RelationQualifications:
		remove = s.qualifications.Delete
	default:
		return unknownRelation(relation)
	}
	err := s.guard.write(ctx, "delete_"+string(relation), func(ctx context.Context) error {
		return remove(ctx, pair)
	})
	if err != nil {
		return notFoundOr(err, "relation not found", "failed to delete relation")
	}
	s.metrics.RecordReconcileOp(string(relation), OpRemove, true)
	s.invalidate(ctx, models.PairTags(pair, relation)...)
	return nil
}

// UpsertRelationAttributes creates the qualification for pair or replaces its attributes.
func (s *RelationService) UpsertRelationAttributes(ctx context.Context, pair models.RelationPair, attrs models.QualificationAttributes) (*models.Qualification, error) {
	if err := s.validatePair(pair); err != nil {
		return nil, err
	}
	if err := s.validateAttributes(&attrs); err != nil {
		return nil, err
	}
	q := &models.Qualification{RelationPair: pair, QualificationAttributes: attrs}
	err := s.guard.write(ctx, "upsert_qualification", func(ctx context.Context) error {
		return s.qualifications.Upsert(ctx, q)
	})
	if err != nil {
		return nil, storeFailure(err, "failed to save qualification")
	}
	s.metrics.RecordReconcileOp(string(models.RelationQualifications), OpUpdate, true)
	s.invalidate(ctx, models.PairTags(pair, models.RelationQualifications)...)
	return q, nil
}

// ReconcileAssignments makes the assignments of the anchor equal to the desired ids.
// Current assignments are re-read right before diffing.
func (s *RelationService) ReconcileAssignments(ctx context.Context, anchor models.EntityKind, anchorID string, req SetAssignmentsRequest) (*ReconcileResult, error) {
	if err := validateStruct(s.validator, req, "invalid assignment set"); err != nil {
		return nil, err
	}
	if err := s.ensureAnchor(ctx, anchor, anchorID); err != nil {
		return nil, err
	}

	var current []string
	err := s.guard.read(ctx, "assignment_ids", func(ctx context.Context) error {
		var err error
		current, err = s.assignments.RelatedIDs(ctx, anchor, anchorID)
		return err
	})
	if err != nil {
		return nil, storeFailure(err, "failed to load current assignments")
	}

	toAdd, toRemove := DiffIDs(current, req.IDs)
	ops := make([]relationOp, 0, len(toAdd)+len(toRemove))
	addPairs := make([]models.RelationPair, 0, len(toAdd))
	removePairs := make([]models.RelationPair, 0, len(toRemove))
	for _, id := range toRemove {
		pair := pairFor(anchor, anchorID, id)
		removePairs = append(removePairs, pair)
		ops = append(ops, relationOp{op: OpRemove, relatedID: id, pair: pair, apply: func(ctx context.Context) error {
			return s.assignments.Delete(ctx, pair)
		}})
	}
	for _, id := range toAdd {
		pair := pairFor(anchor, anchorID, id)
		addPairs = append(addPairs, pair)
		ops = append(ops, relationOp{op: OpAdd, relatedID: id, pair: pair, apply: func(ctx context.Context) error {
			_, err := s.assignments.Create(ctx, pair)
			return err
		}})
	}
	if len(ops) == 0 {
		return newReconcileResult(), nil
	}

	var result *ReconcileResult
	if s.atomic {
		result = s.applyAtomically(ctx, models.RelationAssignments, ops, func(ctx context.Context) error {
			return s.assignments.ApplyDelta(ctx, addPairs, removePairs)
		})
	} else {
		result = s.applyConcurrently(ctx, models.RelationAssignments, ops)
	}
	return s.finishReconcile(ctx, models.RelationAssignments, anchor, anchorID, ops, result)
}

// ReconcileQualifications makes the qualifications of the anchor equal to the desired
// set, adding, updating and removing rows as needed.
func (s *RelationService) ReconcileQualifications(ctx context.Context, anchor models.EntityKind, anchorID string, req SetQualificationsRequest) (*ReconcileResult, error) {
	if err := validateStruct(s.validator, req, "invalid qualification set"); err != nil {
		return nil, err
	}
	desired, err := qualificationsFromInput(anchor, anchorID, req.Qualifications)
	if err != nil {
		return nil, err
	}
	if err := s.ensureAnchor(ctx, anchor, anchorID); err != nil {
		return nil, err
	}

	var current []models.Qualification
	err = s.guard.read(ctx, "anchor_qualifications", func(ctx context.Context) error {
		var err error
		current, err = s.qualifications.ListForAnchor(ctx, anchor, anchorID)
		return err
	})
	if err != nil {
		return nil, storeFailure(err, "failed to load current qualifications")
	}

	toAdd, toUpdate, toRemove := DiffQualifications(current, desired)
	ops := make([]relationOp, 0, len(toAdd)+len(toUpdate)+len(toRemove))
	for _, pair := range toRemove {
		pair := pair
		ops = append(ops, relationOp{op: OpRemove, relatedID: relatedIDOf(anchor, pair), pair: pair, apply: func(ctx context.Context) error {
			return s.qualifications.Delete(ctx, pair)
		}})
	}
	for i := range toUpdate {
		q := toUpdate[i]
		ops = append(ops, relationOp{op: OpUpdate, relatedID: relatedIDOf(anchor, q.RelationPair), pair: q.RelationPair, apply: func(ctx context.Context) error {
			return s.qualifications.Update(ctx, &q)
		}})
	}
	for i := range toAdd {
		q := toAdd[i]
		ops = append(ops, relationOp{op: OpAdd, relatedID: relatedIDOf(anchor, q.RelationPair), pair: q.RelationPair, apply: func(ctx context.Context) error {
			return s.qualifications.Create(ctx, &q)
		}})
	}
	if len(ops) == 0 {
		return newReconcileResult(), nil
	}

	var result *ReconcileResult
	if s.atomic {
		result = s.applyAtomically(ctx, models.RelationQualifications, ops, func(ctx context.Context) error {
			return s.qualifications.ApplyDelta(ctx, toAdd, toUpdate, toRemove)
		})
	} else {
		result = s.applyConcurrently(ctx, models.RelationQualifications, ops)
	}
	return s.finishReconcile(ctx, models.RelationQualifications, anchor, anchorID, ops, result)
}

// ensureAnchor checks the store, never the cache, for the anchor entity.
func (s *RelationService) ensureAnchor(ctx context.Context, anchor models.EntityKind, id string) error {
	notFound := string(anchor) + " not found"
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	err := s.guard.read(ctx, "find_"+string(anchor), func(ctx context.Context) error {
		if anchor == models.EntityCourse {
			_, err := s.courses.FindByID(ctx, id)
			return err
		}
		_, err := s.lecturers.FindByID(ctx, id)
		return err
	})
	return notFoundOr(err, notFound, "failed to load "+string(anchor))
}

func (s *RelationService) validatePair(pair models.RelationPair) error {
	fields := FieldErrors{}
	if !validID(pair.LecturerID) {
		fields["lecturerId"] = "must be a valid id"
	}
	if !validID(pair.CourseID) {
		fields["courseId"] = "must be a valid id"
	}
	if len(fields) > 0 {
		return validationFailure("invalid relation", fields)
	}
	return nil
}

func (s *RelationService) validateAttributes(attrs *models.QualificationAttributes) error {
	if attrs == nil {
		return validationFailure("invalid qualification", FieldErrors{"experience": "is required", "leadTime": "is required"})
	}
	input := QualificationInput{Experience: attrs.Experience, LeadTime: attrs.LeadTime}
	return validateStruct(s.validator, input, "invalid qualification")
}

func (s *RelationService) invalidate(ctx context.Context, tags ...string) {
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		s.logger.Warn("relation cache invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}

// relationReadTags tag a relation read anchored on kind. The rows shown belong to the
// other kind, so any change to those entities also evicts it.
func relationReadTags(kind models.EntityKind, id string, relation models.RelationName) []string {
	return []string{
		models.RelationsTag(kind, id),
		models.RelationTag(kind, id, relation),
		models.ListTag(kind.Other()),
	}
}

func cachedRelationRead[T any](ctx context.Context, s *RelationService, key string, tags []string, label string, fetch func(ctx context.Context) ([]T, error)) ([]T, bool, error) {
	rows, hit, err := Cached(ctx, s.cache, key, s.ttl, tags, func(ctx context.Context) ([]T, error) {
		var rows []T
		err := s.guard.read(ctx, label, func(ctx context.Context) error {
			var err error
			rows, err = fetch(ctx)
			return err
		})
		if rows == nil {
			rows = []T{}
		}
		return rows, err
	})
	if err != nil {
		return nil, false, storeFailure(err, "failed to load relations")
	}
	return rows, hit, nil
}

func unknownRelation(relation models.RelationName) error {
	return validationFailure("unknown relation", FieldErrors{"relation": string(relation)})
}
