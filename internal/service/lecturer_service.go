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

type lecturerRepository interface {
	List(ctx context.Context, filter models.LecturerFilter) ([]models.Lecturer, int, error)
	FindByID(ctx context.Context, id string) (*models.Lecturer, error)
	ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error)
	Create(ctx context.Context, lecturer *models.Lecturer, courseIDs []string, qualifications []models.Qualification) error
	Update(ctx context.Context, lecturer *models.Lecturer) error
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) ([]string, error)
}

// CreateLecturerRequest represents payload for creating lecturers. Initial course
// assignments and qualifications are stored together with the lecturer.
type CreateLecturerRequest struct {
	Title                 *string                      `json:"title" validate:"omitempty,max=50"`
	FirstName             string                       `json:"firstName" validate:"required,max=100"`
	SecondName            *string                      `json:"secondName" validate:"omitempty,max=100"`
	LastName              string                       `json:"lastName" validate:"required,max=100"`
	Email                 string                       `json:"email" validate:"required,email,max=255"`
	Phone                 string                       `json:"phone" validate:"required,phone,max=50"`
	Type                  models.LecturerType          `json:"type" validate:"required,oneof=internal external"`
	CourseLevelPreference models.CourseLevelPreference `json:"courseLevelPreference" validate:"required,oneof=bachelor master both"`
	CourseIDs             []string                     `json:"courseIds" validate:"omitempty,max=500,unique,dive,required,uuid"`
	Qualifications        []QualificationInput         `json:"qualifications" validate:"omitempty,max=500,dive"`
}

// UpdateLecturerRequest represents payload for updating lecturers.
type UpdateLecturerRequest struct {
	Title                 *string                      `json:"title" validate:"omitempty,max=50"`
	FirstName             string                       `json:"firstName" validate:"required,max=100"`
	SecondName            *string                      `json:"secondName" validate:"omitempty,max=100"`
	LastName              string                       `json:"lastName" validate:"required,max=100"`
	Email                 string                       `json:"email" validate:"required,email,max=255"`
	Phone                 string                       `json:"phone" validate:"required,phone,max=50"`
	Type                  models.LecturerType          `json:"type" validate:"required,oneof=internal external"`
	CourseLevelPreference models.CourseLevelPreference `json:"courseLevelPreference" validate:"required,oneof=bachelor master both"`
}

// LecturerService is the mutation gateway and listing executor for lecturers.
type LecturerService struct {
	repo      lecturerRepository
	cache     *CacheService
	guard     storeGuard
	ttl       time.Duration
	validator *validator.Validate
	logger    *zap.Logger
}

// NewLecturerService constructs a LecturerService.
func NewLecturerService(repo lecturerRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, opts StoreOptions, logger *zap.Logger) *LecturerService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LecturerService{
		repo:      repo,
		cache:     cache,
		guard:     newStoreGuard(opts.QueryTimeout, metrics, logger),
		ttl:       opts.ListingTTL,
		validator: validate,
		logger:    logger,
	}
}

// List runs the paginated lecturer query described by state. The boolean reports whether
// the page came from the cache.
func (s *LecturerService) List(ctx context.Context, state tablestate.State) (models.Page[models.Lecturer], bool, error) {
	filter, err := lecturerFilterFromState(state)
	if err != nil {
		return models.Page[models.Lecturer]{}, false, err
	}
	tags := []string{models.ListTag(models.EntityLecturer)}
	for _, courseID := range filter.CourseIDs {
		tags = append(tags, models.RelationsTag(models.EntityCourse, courseID))
	}
	return runListing(ctx, s.listingOptions(), listingQuery[models.Lecturer]{
		kind:  models.EntityLecturer,
		state: state,
		tags:  tags,
		fetch: func(ctx context.Context) ([]models.Lecturer, int, error) {
			return s.repo.List(ctx, filter)
		},
	})
}

// Export returns every lecturer matching state's search, filters and sort, ignoring
// pagination, capped at maxRows.
func (s *LecturerService) Export(ctx context.Context, state tablestate.State, maxRows int) ([]models.Lecturer, int, error) {
	filter, err := lecturerFilterFromState(state)
	if err != nil {
		return nil, 0, err
	}
	filter.Offset, filter.Limit = 0, maxRows
	var (
		rows  []models.Lecturer
		total int
	)
	err = s.guard.read(ctx, "export_lecturers", func(ctx context.Context) error {
		var err error
		rows, total, err = s.repo.List(ctx, filter)
		return err
	})
	if err != nil {
		return nil, 0, storeFailure(err, "failed to export lecturers")
	}
	return rows, total, nil
}

// Get returns a lecturer by id.
func (s *LecturerService) Get(ctx context.Context, id string) (*models.Lecturer, bool, error) {
	if !validID(id) {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
	}
	key := "entity:" + models.EntityTag(models.EntityLecturer, id)
	lecturer, hit, err := Cached(ctx, s.cache, key, s.ttl, []string{models.EntityTag(models.EntityLecturer, id)}, func(ctx context.Context) (*models.Lecturer, error) {
		return s.find(ctx, id)
	})
	if err != nil {
		return nil, false, err
	}
	return lecturer, hit, nil
}

// Create registers a lecturer together with its initial relations in one transaction.
func (s *LecturerService) Create(ctx context.Context, req CreateLecturerRequest) (*models.Lecturer, error) {
	if err := validateStruct(s.validator, req, "invalid lecturer payload"); err != nil {
		return nil, err
	}
	qualifications, err := qualificationsFromInput(models.EntityLecturer, "", req.Qualifications)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if err := s.ensureUniqueEmail(ctx, email, ""); err != nil {
		return nil, err
	}

	lecturer := &models.Lecturer{
		Title:                 normalizeOptional(req.Title),
		FirstName:             strings.TrimSpace(req.FirstName),
		SecondName:            normalizeOptional(req.SecondName),
		LastName:              strings.TrimSpace(req.LastName),
		Email:                 email,
		Phone:                 strings.TrimSpace(req.Phone),
		Type:                  req.Type,
		CourseLevelPreference: req.CourseLevelPreference,
	}
	err = s.guard.write(ctx, "create_lecturer", func(ctx context.Context) error {
		return s.repo.Create(ctx, lecturer, req.CourseIDs, qualifications)
	})
	if err != nil {
		return nil, storeFailure(err, "failed to create lecturer")
	}

	tags := []string{
		models.ListTag(models.EntityLecturer),
		models.RelationsTag(models.EntityLecturer, lecturer.ID),
	}
	for _, courseID := range req.CourseIDs {
		tags = append(tags, models.RelationsTag(models.EntityCourse, courseID))
	}
	for _, q := range qualifications {
		tags = append(tags, models.PairTags(q.RelationPair, models.RelationQualifications)...)
	}
	s.invalidate(ctx, tags...)
	return lecturer, nil
}

// Update modifies an existing lecturer.
func (s *LecturerService) Update(ctx context.Context, id string, req UpdateLecturerRequest) (*models.Lecturer, error) {
	if err := validateStruct(s.validator, req, "invalid lecturer payload"); err != nil {
		return nil, err
	}
	lecturer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	if !strings.EqualFold(email, lecturer.Email) {
		if err := s.ensureUniqueEmail(ctx, email, id); err != nil {
			return nil, err
		}
	}

	lecturer.Title = normalizeOptional(req.Title)
	lecturer.FirstName = strings.TrimSpace(req.FirstName)
	lecturer.SecondName = normalizeOptional(req.SecondName)
	lecturer.LastName = strings.TrimSpace(req.LastName)
	lecturer.Email = email
	lecturer.Phone = strings.TrimSpace(req.Phone)
	lecturer.Type = req.Type
	lecturer.CourseLevelPreference = req.CourseLevelPreference

	err = s.guard.write(ctx, "update_lecturer", func(ctx context.Context) error {
		return s.repo.Update(ctx, lecturer)
	})
	if err != nil {
		return nil, notFoundOr(err, "lecturer not found", "failed to update lecturer")
	}
	s.invalidate(ctx, entityMutationTags(models.EntityLecturer, id)...)
	return lecturer, nil
}

// Delete removes a lecturer and, by cascade, every relation row referencing it.
func (s *LecturerService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
	}
	err := s.guard.write(ctx, "delete_lecturer", func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return notFoundOr(err, "lecturer not found", "failed to delete lecturer")
	}
	s.invalidate(ctx, entityMutationTags(models.EntityLecturer, id)...)
	return nil
}

// DeleteMany removes several lecturers at once and reports which ids did not exist.
func (s *LecturerService) DeleteMany(ctx context.Context, req BulkDeleteRequest) (*BulkDeleteResult, error) {
	requested, ids, err := bulkDeleteIDs(s.validator, req)
	if err != nil {
		return nil, err
	}
	var deleted []string
	if len(ids) > 0 {
		err = s.guard.write(ctx, "delete_lecturers", func(ctx context.Context) error {
			var err error
			deleted, err = s.repo.DeleteMany(ctx, ids)
			return err
		})
	}
	if err != nil {
		return nil, storeFailure(err, "failed to delete lecturers")
	}
	var tags []string
	for _, id := range deleted {
		tags = append(tags, entityMutationTags(models.EntityLecturer, id)...)
	}
	s.invalidate(ctx, tags...)
	return newBulkDeleteResult(requested, deleted), nil
}

func (s *LecturerService) load(ctx context.Context, id string) (*models.Lecturer, error) {
	if !validID(id) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "lecturer not found")
	}
	return s.find(ctx, id)
}

func (s *LecturerService) find(ctx context.Context, id string) (*models.Lecturer, error) {
	var lecturer *models.Lecturer
	err := s.guard.read(ctx, "find_lecturer", func(ctx context.Context) error {
		var err error
		lecturer, err = s.repo.FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, notFoundOr(err, "lecturer not found", "failed to load lecturer")
	}
	return lecturer, nil
}

func (s *LecturerService) ensureUniqueEmail(ctx context.Context, email, excludeID string) error {
	var exists bool
	err := s.guard.read(ctx, "lecturer_email_exists", func(ctx context.Context) error {
		var err error
		exists, err = s.repo.ExistsByEmail(ctx, email, excludeID)
		return err
	})
	if err != nil {
		return storeFailure(err, "failed to validate email")
	}
	if exists {
		return appErrors.WithDetails(appErrors.ErrConflict, "email already registered", FieldErrors{"email": "is already in use"})
	}
	return nil
}

func (s *LecturerService) listingOptions() listingOptions {
	return listingOptions{cache: s.cache, guard: s.guard, ttl: s.ttl}
}

func (s *LecturerService) invalidate(ctx context.Context, tags ...string) {
	if err := s.cache.Invalidate(ctx, tags...); err != nil {
		s.logger.Warn("lecturer cache invalidation failed", zap.Strings("tags", tags), zap.Error(err))
	}
}
