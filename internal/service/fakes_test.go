package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/repository"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

const (
	lecturerA = "10000000-0000-0000-0000-00000000000a"
	lecturerB = "10000000-0000-0000-0000-00000000000b"
	courseA   = "20000000-0000-0000-0000-00000000000a"
	courseB   = "20000000-0000-0000-0000-00000000000b"
	courseC   = "20000000-0000-0000-0000-00000000000c"
	courseD   = "20000000-0000-0000-0000-00000000000d"
	missingID = "90000000-0000-0000-0000-000000000000"
)

var (
	errUniqueViolation = &pq.Error{Code: "23505", Constraint: "course_assignments_pkey"}
	errForeignKey      = &pq.Error{Code: "23503"}
)

// memDB is an in-memory stand-in for the Postgres schema shared by the fake repositories
// so that cascades and relation reads behave like the real store.
type memDB struct {
	mu             sync.Mutex
	lecturers      map[string]models.Lecturer
	courses        map[string]models.Course
	assignments    map[models.RelationPair]time.Time
	qualifications map[models.RelationPair]models.Qualification

	// failOn lets a test inject a store error for one operation on one pair.
	failOn    func(op string, pair models.RelationPair) error
	listCalls int
	findCalls int
}

func newMemDB() *memDB {
	return &memDB{
		lecturers:      map[string]models.Lecturer{},
		courses:        map[string]models.Course{},
		assignments:    map[models.RelationPair]time.Time{},
		qualifications: map[models.RelationPair]models.Qualification{},
	}
}

func (db *memDB) addLecturer(id, first, last string, pref models.CourseLevelPreference) {
	db.lecturers[id] = models.Lecturer{
		ID: id, FirstName: first, LastName: last, Email: strings.ToLower(first) + "@example.org",
		Phone: "+49 69 0000", Type: models.LecturerTypeInternal, CourseLevelPreference: pref,
	}
}

func (db *memDB) addCourse(id, name string) {
	db.courses[id] = models.Course{ID: id, Name: name, IsOpen: true, CourseLevel: models.CourseLevelBachelor}
}

func (db *memDB) assign(lecturerID, courseID string) {
	db.assignments[models.RelationPair{LecturerID: lecturerID, CourseID: courseID}] = time.Now()
}

func (db *memDB) qualify(lecturerID, courseID string, exp models.Experience, lead models.LeadTime) {
	pair := models.RelationPair{LecturerID: lecturerID, CourseID: courseID}
	db.qualifications[pair] = models.Qualification{RelationPair: pair, QualificationAttributes: models.QualificationAttributes{Experience: exp, LeadTime: lead}}
}

func (db *memDB) fail(op string, pair models.RelationPair) error {
	if db.failOn == nil {
		return nil
	}
	return db.failOn(op, pair)
}

func (db *memDB) exists(pair models.RelationPair) error {
	if _, ok := db.lecturers[pair.LecturerID]; !ok {
		return errForeignKey
	}
	if _, ok := db.courses[pair.CourseID]; !ok {
		return errForeignKey
	}
	return nil
}

func (db *memDB) assignedPairs(anchor models.EntityKind, id string) []models.RelationPair {
	var pairs []models.RelationPair
	for pair := range db.assignments {
		if (anchor == models.EntityLecturer && pair.LecturerID == id) || (anchor == models.EntityCourse && pair.CourseID == id) {
			pairs = append(pairs, pair)
		}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairLess(pairs[i], pairs[j]) })
	return pairs
}

func (db *memDB) cascade(match func(models.RelationPair) bool) {
	for pair := range db.assignments {
		if match(pair) {
			delete(db.assignments, pair)
		}
	}
	for pair := range db.qualifications {
		if match(pair) {
			delete(db.qualifications, pair)
		}
	}
}

type memLecturerRepo struct{ db *memDB }

func (r memLecturerRepo) List(ctx context.Context, filter models.LecturerFilter) ([]models.Lecturer, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.listCalls++

	prefs := map[models.CourseLevelPreference]bool{}
	for _, p := range models.ExpandPreferenceFilter(filter.Preferences) {
		prefs[p] = true
	}
	var rows []models.Lecturer
	for _, l := range r.db.lecturers {
		if filter.Search != "" && !strings.Contains(strings.ToLower(l.DisplayName()), strings.ToLower(filter.Search)) {
			continue
		}
		if len(prefs) > 0 && !prefs[l.CourseLevelPreference] {
			continue
		}
		if len(filter.CourseIDs) > 0 {
			assigned := false
			for _, cid := range filter.CourseIDs {
				if _, ok := r.db.assignments[models.RelationPair{LecturerID: l.ID, CourseID: cid}]; ok {
					assigned = true
				}
			}
			if !assigned {
				continue
			}
		}
		rows = append(rows, l)
	}
	sort.Slice(rows, func(i, j int) bool {
		less := rows[i].LastName+rows[i].FirstName < rows[j].LastName+rows[j].FirstName
		if filter.SortDesc {
			return !less
		}
		return less
	})
	return pageOf(rows, filter.Offset, filter.Limit), len(rows), nil
}

func (r memLecturerRepo) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.findCalls++
	l, ok := r.db.lecturers[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &l, nil
}

func (r memLecturerRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, l := range r.db.lecturers {
		if strings.EqualFold(l.Email, email) && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memLecturerRepo) Create(ctx context.Context, lecturer *models.Lecturer, courseIDs []string, qualifications []models.Qualification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if lecturer.ID == "" {
		lecturer.ID = uuid.NewString()
	}
	for _, cid := range courseIDs {
		if _, ok := r.db.courses[cid]; !ok {
			return errForeignKey
		}
	}
	for _, q := range qualifications {
		if _, ok := r.db.courses[q.CourseID]; !ok {
			return errForeignKey
		}
	}
	r.db.lecturers[lecturer.ID] = *lecturer
	for _, cid := range courseIDs {
		r.db.assignments[models.RelationPair{LecturerID: lecturer.ID, CourseID: cid}] = time.Now()
	}
	for i := range qualifications {
		qualifications[i].LecturerID = lecturer.ID
		r.db.qualifications[qualifications[i].RelationPair] = qualifications[i]
	}
	return nil
}

func (r memLecturerRepo) Update(ctx context.Context, lecturer *models.Lecturer) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.lecturers[lecturer.ID]; !ok {
		return sql.ErrNoRows
	}
	r.db.lecturers[lecturer.ID] = *lecturer
	return nil
}

func (r memLecturerRepo) Delete(ctx context.Context, id string) error {
	deleted, _ := r.DeleteMany(ctx, []string{id})
	if len(deleted) == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r memLecturerRepo) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var deleted []string
	for _, id := range ids {
		if _, ok := r.db.lecturers[id]; !ok {
			continue
		}
		delete(r.db.lecturers, id)
		r.db.cascade(func(p models.RelationPair) bool { return p.LecturerID == id })
		deleted = append(deleted, id)
	}
	return deleted, nil
}

type memCourseRepo struct{ db *memDB }

func (r memCourseRepo) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.listCalls++
	var rows []models.Course
	for _, c := range r.db.courses {
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(filter.Search)) {
			continue
		}
		rows = append(rows, c)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return pageOf(rows, filter.Offset, filter.Limit), len(rows), nil
}

func (r memCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.findCalls++
	c, ok := r.db.courses[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (r memCourseRepo) Create(ctx context.Context, course *models.Course, lecturerIDs []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	for _, lid := range lecturerIDs {
		if _, ok := r.db.lecturers[lid]; !ok {
			return errForeignKey
		}
	}
	r.db.courses[course.ID] = *course
	for _, lid := range lecturerIDs {
		r.db.assignments[models.RelationPair{LecturerID: lid, CourseID: course.ID}] = time.Now()
	}
	return nil
}

func (r memCourseRepo) Update(ctx context.Context, course *models.Course) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.courses[course.ID]; !ok {
		return sql.ErrNoRows
	}
	r.db.courses[course.ID] = *course
	return nil
}

func (r memCourseRepo) Delete(ctx context.Context, id string) error {
	deleted, _ := r.DeleteMany(ctx, []string{id})
	if len(deleted) == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r memCourseRepo) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var deleted []string
	for _, id := range ids {
		if _, ok := r.db.courses[id]; !ok {
			continue
		}
		delete(r.db.courses, id)
		r.db.cascade(func(p models.RelationPair) bool { return p.CourseID == id })
		deleted = append(deleted, id)
	}
	return deleted, nil
}

type memAssignmentRepo struct{ db *memDB }

func (r memAssignmentRepo) ListCoursesByLecturer(ctx context.Context, lecturerID string) ([]models.AssignedCourse, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.AssignedCourse
	for _, pair := range r.db.assignedPairs(models.EntityLecturer, lecturerID) {
		out = append(out, models.AssignedCourse{Course: r.db.courses[pair.CourseID], AssignedAt: r.db.assignments[pair]})
	}
	return out, nil
}

func (r memAssignmentRepo) ListLecturersByCourse(ctx context.Context, courseID string) ([]models.AssignedLecturer, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.AssignedLecturer
	for _, pair := range r.db.assignedPairs(models.EntityCourse, courseID) {
		out = append(out, models.AssignedLecturer{Lecturer: r.db.lecturers[pair.LecturerID], AssignedAt: r.db.assignments[pair]})
	}
	return out, nil
}

func (r memAssignmentRepo) RelatedIDs(ctx context.Context, anchor models.EntityKind, anchorID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var ids []string
	for _, pair := range r.db.assignedPairs(anchor, anchorID) {
		ids = append(ids, relatedIDOf(anchor, pair))
	}
	return ids, nil
}

func (r memAssignmentRepo) Create(ctx context.Context, pair models.RelationPair) (*models.Assignment, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail(OpAdd, pair); err != nil {
		return nil, err
	}
	if err := r.db.exists(pair); err != nil {
		return nil, err
	}
	if _, ok := r.db.assignments[pair]; ok {
		return nil, errUniqueViolation
	}
	now := time.Now()
	r.db.assignments[pair] = now
	return &models.Assignment{RelationPair: pair, CreatedAt: now}, nil
}

func (r memAssignmentRepo) Delete(ctx context.Context, pair models.RelationPair) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail(OpRemove, pair); err != nil {
		return err
	}
	if _, ok := r.db.assignments[pair]; !ok {
		return sql.ErrNoRows
	}
	delete(r.db.assignments, pair)
	return nil
}

func (r memAssignmentRepo) ApplyDelta(ctx context.Context, add, remove []models.RelationPair) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, pair := range remove {
		if err := r.db.fail(OpRemove, pair); err != nil {
			return &repository.PairError{Pair: pair, Err: err}
		}
	}
	for _, pair := range add {
		if err := r.db.fail(OpAdd, pair); err != nil {
			return &repository.PairError{Pair: pair, Err: err}
		}
	}
	for _, pair := range remove {
		delete(r.db.assignments, pair)
	}
	for _, pair := range add {
		r.db.assignments[pair] = time.Now()
	}
	return nil
}

type memQualificationRepo struct{ db *memDB }

func (r memQualificationRepo) ListDetails(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.QualificationDetail, error) {
	items, _ := r.ListForAnchor(ctx, anchor, anchorID)
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]models.QualificationDetail, 0, len(items))
	for _, q := range items {
		out = append(out, models.QualificationDetail{
			Qualification: q,
			LecturerName:  r.db.lecturers[q.LecturerID].DisplayName(),
			CourseName:    r.db.courses[q.CourseID].Name,
		})
	}
	return out, nil
}

func (r memQualificationRepo) ListForAnchor(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.Qualification, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []models.Qualification
	for pair, q := range r.db.qualifications {
		if (anchor == models.EntityLecturer && pair.LecturerID == anchorID) || (anchor == models.EntityCourse && pair.CourseID == anchorID) {
			out = append(out, q)
		}
	}
	sortQualifications(out)
	return out, nil
}

func (r memQualificationRepo) Create(ctx context.Context, q *models.Qualification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail(OpAdd, q.RelationPair); err != nil {
		return err
	}
	if err := r.db.exists(q.RelationPair); err != nil {
		return err
	}
	if _, ok := r.db.qualifications[q.RelationPair]; ok {
		return errUniqueViolation
	}
	r.db.qualifications[q.RelationPair] = *q
	return nil
}

func (r memQualificationRepo) Update(ctx context.Context, q *models.Qualification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail(OpUpdate, q.RelationPair); err != nil {
		return err
	}
	if _, ok := r.db.qualifications[q.RelationPair]; !ok {
		return sql.ErrNoRows
	}
	r.db.qualifications[q.RelationPair] = *q
	return nil
}

func (r memQualificationRepo) Upsert(ctx context.Context, q *models.Qualification) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.exists(q.RelationPair); err != nil {
		return err
	}
	r.db.qualifications[q.RelationPair] = *q
	return nil
}

func (r memQualificationRepo) Delete(ctx context.Context, pair models.RelationPair) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if err := r.db.fail(OpRemove, pair); err != nil {
		return err
	}
	if _, ok := r.db.qualifications[pair]; !ok {
		return sql.ErrNoRows
	}
	delete(r.db.qualifications, pair)
	return nil
}

func (r memQualificationRepo) ApplyDelta(ctx context.Context, add, update []models.Qualification, remove []models.RelationPair) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, pair := range remove {
		delete(r.db.qualifications, pair)
	}
	for _, q := range update {
		r.db.qualifications[q.RelationPair] = q
	}
	for _, q := range add {
		r.db.qualifications[q.RelationPair] = q
	}
	return nil
}

func pageOf[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return nil
	}
	end := len(rows)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return rows[offset:end]
}

// stubCacheRepo is a map backed cache with tag version counters.
type stubCacheRepo struct {
	mu       sync.Mutex
	store    map[string][]byte
	versions map[string]int64
	bumpErr  error
	bumped   []string
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payload, ok := s.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(payload, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		s.store = make(map[string][]byte)
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = payload
	return nil
}

func (s *stubCacheRepo) TagVersions(_ context.Context, tags []string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int64, len(tags))
	for i, tag := range tags {
		out[i] = s.versions[tag]
	}
	return out, nil
}

func (s *stubCacheRepo) BumpTags(_ context.Context, tags []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.bumpErr != nil {
		return s.bumpErr
	}
	if s.versions == nil {
		s.versions = make(map[string]int64)
	}
	for _, tag := range tags {
		s.versions[tag]++
	}
	s.bumped = append(s.bumped, tags...)
	return nil
}

func (s *stubCacheRepo) wasBumped(tag string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.bumped {
		if t == tag {
			return true
		}
	}
	return false
}

// testEnv wires every service against one memDB and one cache stub.
type testEnv struct {
	db        *memDB
	cacheRepo *stubCacheRepo
	cache     *CacheService
	lecturers *LecturerService
	courses   *CourseService
	relations *RelationService
}

func newTestEnv(reconcile ReconcileOptions) *testEnv {
	db := newMemDB()
	cacheRepo := &stubCacheRepo{}
	cache := NewCacheService(cacheRepo, nil, time.Hour, nil, true)
	opts := StoreOptions{QueryTimeout: time.Second, ListingTTL: time.Hour}
	validate := NewValidator()
	return &testEnv{
		db:        db,
		cacheRepo: cacheRepo,
		cache:     cache,
		lecturers: NewLecturerService(memLecturerRepo{db}, cache, nil, validate, opts, nil),
		courses:   NewCourseService(memCourseRepo{db}, cache, nil, validate, opts, nil),
		relations: NewRelationService(memAssignmentRepo{db}, memQualificationRepo{db}, memLecturerRepo{db}, memCourseRepo{db}, cache, nil, validate, opts, reconcile, nil),
	}
}
