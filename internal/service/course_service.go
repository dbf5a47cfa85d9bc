package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course, lecturerIDs []string) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) ([]string, error)
}

// CreateCourseRequest represents payload for creating courses.
type CreateCourseRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	IsOpen      *bool              `json:"isOpen" validate:"required"`
	CourseLevel models.CourseLevel `json:"courseLevel" validate:"required,oneof=bachelor master"`
	Semester    *int               `json:"semester" validate:"omitempty,min=1,max=12"`
	LecturerIDs []string           `json:"lecturerIds" validate:"omitempty,max=500,unique,dive,required,uuid"`
}

// UpdateCourseRequest represents payload for updating courses. A null semester clears it.
type UpdateCourseRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	IsOpen      *bool              `json:"isOpen" validate:"required"`
	CourseLevel models.CourseLevel `json:"courseLevel" validate:"required,oneof=bachelor master"`
	Semester    *int               `json:"semester" validate:"omitempty,min=1,max=12"`
}

// CourseService is the mutation gateway and listing executor for courses.
type CourseService struct {
	repo      courseRepository
	cache     *CacheService
	guard     storeGuard
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService.
func NewCourseService(repo courseRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, opts StoreOptions, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		repo:      repo,
		cache:     cache,
		guard:     newStoreGuard(opts.QueryTimeout, metrics, logger),
		ttl:       opts.ListingTTL,
		validator: validate,
		logger:    logger,
	}
}

// List runs the paginated course query described by state.
func (s *CourseService) List(ctx context.Context, state tablestate.State) (models.Page[models.Course], bool, error) {
	filter, err := courseFilterFromState(state)
	if err != nil {
		return models.Page[models.Course]{}, false, err
	}
	return runListing(ctx, listingOptions{cache: s.cache, guard: s.guard, ttl: s.ttl}, listingQuery[models.Course]{
		kind:  models.EntityCourse,
		state: state,
		tags:  []string{models.ListTag(models.EntityCourse)},
		fetch: func(ctx context.Context) ([]models.Course, int, error) {
			return s.repo.List(ctx, filter)
		},
	})
}

// Export returns every course matching state without pagination, capped at maxRows.
func (s *CourseService) Export(ctx context.Context, state tablestate.State, maxRows int) ([]models.Course, int, error) {
	filter, err := courseFilterFromState(state)
	if err != nil {
		return nil, 0, err
	}
	filter.Offset, filter.Limit = 0, maxRows
	var (
		rows  []models.Course
		total int
	)
	err = s.guard.read(ctx, "export_courses", func(ctx context.Context) error {
		var err error
		rows, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, storeFailure(err, "failed to export courses")
	}
	return rows, total, nil
}

// Get returns a course by id.
func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, bool, error) {
	if !validID(id) {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	tag := models.EntityTag(models.EntityCourse, id)
	return Cached(ctx, s.cache, "entity:"+tag, s.ttl, []string{tag}, func(ctx context.Context) (*models.Course, error) {
		return s.find(ctx, id)
	})
}

// Create registers a course and its initial lecturer assignments in one transaction.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := validateStruct(s.validator, req, "invalid course payload"); err != nil {
		return nil, err
	}
	course := &models.Course{
		Name:        strings.TrimSpace(req.Name),
		IsOpen:      *req.IsOpen,
		CourseLevel: req.CourseLevel,
		Semester:    req.Semester,
	}
	err := s.guard.write(ctx, "create_course", func(ctx context.Context) error {
		return s.repo.Create(ctx, course, req.LecturerIDs)
	})
	if err != nil {
		return nil, storeFailure(err, "failed to create course")
	}

	tags := []string{
		models.ListTag(models.EntityCourse),
		models.RelationsTag(models.EntityCourse, course.ID),
	}
	for _, lecturerID := range req.LecturerIDs {
		tags = append(tags, models.RelationsTag(models.EntityLecturer, lecturerID))
	}
	s.invalidate(ctx, tags...)
	return course, nil
}

// Update modifies an existing course.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := validateStruct(s.validator, req, "invalid course payload"); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	course, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Name = strings.TrimSpace(req.Name)
	course.IsOpen = *req.IsOpen
	course.CourseLevel = req.CourseLevel
	course.Semester = req.Semester

	err = s.guard.write(ctx, "update_course", func(ctx context.Context) error {
		return s.repo.Update(ctx, course)
	})
	if err != nil {
		return nil, notFoundOr(err, "course not found", "failed to update course")
	}
	s.invalidate(ctx, entityMutationTags(models.EntityCourse, id)...)
	return course, nil
}

// Delete removes a course and every assignment and qualification referencing it.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}
	err := s.guard.write(ctx, "delete_course", func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "course not found", "failed to delete course")
	}
	s.invalidate(ctx, entityMutationTags(models.EntityCourse, id)...)
	return nil
}

// DeleteMany removes several courses at once.
func (s *CourseService) DeleteMany(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	requested, ids, err := bulkDeleteIDs(s.validator, req)
	if err != nil {
		return nil, err
	}
	var deleted []string
	if len(ids) > 0 {
		err = s.guard.write(ctx, "delete_courses", func(ctx context.Context) error {
			var err error
			deleted, err = s.repo.DeleteMany(ctx, ids)
			return err
		})
	}
	if err != nil {
		return nil, storeFailure(err, "failed to delete courses")
	}
	var tags []string
	for _, id := range deleted {
		tags = append(tags, entityMutationTags(models.EntityCourse, id)...)
	}
	s.invalidate(ctx, tags...)
	return newBulkDeleteResult(requested, deleted), nil
}

func (s *CourseService) find(ctx context.Context, id string) (*models.Course, error) {
	var course *models.Course
	err := s.guard.read(ctx, "find_course", func(ctx context.Context) error {
		var err error
		course, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "course not found", "failed to load course")
	}
	return course, nil
}

func (s *CourseService) invalidate(ctx context.Context, tags ...string) {
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		s.logger.Warn("course cache invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}
