package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
)

// Listing column ids accepted in URLs.
const (
	ColumnName                  = "name"
	ColumnEmail                 = "email"
	ColumnType                  = "type"
	ColumnCourseLevelPreference = "courseLevelPreference"
	ColumnCourseID              = "courseId"
	ColumnIsOpen                = "isOpen"
	ColumnCourseLevel           = "courseLevel"
	ColumnSemester              = "semester"
	ColumnCreatedAt             = "createdAt"

	// SemesterNone selects courses without a semester.
	SemesterNone = "none"
)

var (
	lecturerSortColumns   = columnSet(ColumnName, ColumnEmail, ColumnType, ColumnCourseLevelPreference, ColumnCreatedAt)
	lecturerFilterColumns = columnSet(ColumnType, ColumnCourseLevelPreference, ColumnCourseID)
	courseSortColumns     = columnSet(ColumnName, ColumnCourseLevel, ColumnSemester, ColumnIsOpen, ColumnCreatedAt)
	courseFilterColumns   = columnSet(ColumnIsOpen, ColumnCourseLevel, ColumnSemester)
)

// listingOptions bundles what every paginated listing needs besides the query itself.
type listingOptions struct {
	cache *CacheService
	guard storeGuard
	ttl   time.Duration
}

// listingQuery describes one paginated read against the store.
type listingQuery[T any] struct {
	kind  models.EntityKind
	state tablestate.State
	tags  []string
	fetch func(ctx context.Context) ([]T, int, error)
}

// runListing executes a paginated query through the tag-keyed cache. The cache key is the
// canonical encoding of the state so equal states share one entry.
func runListing[T any](ctx context.Context, opts listingOptions, q listingQuery[T]) (models.Page[T], bool, error) {
	key := fmt.Sprintf("listing:%s:%s", q.kind, q.state.Encode())
	label := fmt.Sprintf("list_%ss", q.kind)

	page, hit, err := Cached(ctx, opts.cache, key, opts.ttl, q.tags, func(ctx context.Context) (models.Page[T], error) {
		var (
			rows  []T
			total int
		)
		err := opts.guard.read(ctx, label, func(ctx context.Context) error {
			var err error
			rows, total, err = q.fetch(ctx)
			return err
		})
		if err != nil {
			return models.Page[T]{}, err
		}
		if rows == nil {
			rows = []T{}
		}
		return models.Page[T]{
			Data:      rows,
			PageCount: tablestate.PageCount(total, q.state.Limit()),
			RowCount:  total,
		}, nil
	})
	if err != nil {
		return models.Page[T]{}, false, storeFailure(err, fmt.Sprintf("failed to list %ss", q.kind))
	}
	return page, hit, nil
}

// lecturerFilterFromState translates listing state into a store filter, rejecting unknown
// columns and values.
func lecturerFilterFromState(state tablestate.State) (models.LecturerFilter, error) {
	fields := FieldErrors{}
	checkColumns(state, lecturerSortColumns, lecturerFilterColumns, fields)

	filter := models.LecturerFilter{
		Search:   state.Search,
		SortBy:   sortColumn(state),
		SortDesc: state.Sort.Desc(),
		Offset:   state.Offset(),
		Limit:    state.Limit(),
	}
	for _, v := range state.Filter(ColumnType) {
		switch t := models.LecturerType(v); t {
		case models.LecturerTypeInternal, models.LecturerTypeExternal:
			filter.Types = append(filter.Types, t)
		default:
			fields[ColumnType] = "unknown lecturer type " + strconv.Quote(v)
		}
	}
	for _, v := range state.Filter(ColumnCourseLevelPreference) {
		switch p := models.CourseLevelPreference(v); p {
		case models.PreferenceBachelor, models.PreferenceMaster, models.PreferenceBoth:
			filter.Preferences = append(filter.Preferences, p)
		default:
			fields[ColumnCourseLevelPreference] = "unknown course level preference " + strconv.Quote(v)
		}
	}
	for _, v := range state.Filter(ColumnCourseID) {
		if _, err := uuid.Parse(v); err != nil {
			fields[ColumnCourseID] = "invalid course id " + strconv.Quote(v)
			continue
		}
		filter.CourseIDs = append(filter.CourseIDs, v)
	}

	if len(fields) > 0 {
		return filter, validationFailure("invalid lecturer listing parameters", fields)
	}
	return filter, nil
}

func courseFilterFromState(state tablestate.State) (models.CourseFilter, error) {
	fields := FieldErrors{}
	checkColumns(state, courseSortColumns, courseFilterColumns, fields)

	filter := models.CourseFilter{
		Search:   state.Search,
		SortBy:   sortColumn(state),
		SortDesc: state.Sort.Desc(),
		Offset:   state.Offset(),
		Limit:    state.Limit(),
	}
	for _, v := range state.Filter(ColumnIsOpen) {
		open, err := strconv.ParseBool(v)
		if err != nil {
			fields[ColumnIsOpen] = "expected true or false, got " + strconv.Quote(v)
			continue
		}
		filter.IsOpen = append(filter.IsOpen, open)
	}
	for _, v := range state.Filter(ColumnCourseLevel) {
		switch l := models.CourseLevel(v); l {
		case models.CourseLevelBachelor, models.CourseLevelMaster:
			filter.Levels = append(filter.Levels, l)
		default:
			fields[ColumnCourseLevel] = "unknown course level " + strconv.Quote(v)
		}
	}
	for _, v := range state.Filter(ColumnSemester) {
		if strings.EqualFold(v, SemesterNone) {
			filter.IncludeNoSemester = true
			continue
		}
		semester, err := strconv.Atoi(v)
		if err != nil || semester < models.MinSemester || semester > models.MaxSemester {
			fields[ColumnSemester] = fmt.Sprintf("semester must be %d-%d or %q, got %q", models.MinSemester, models.MaxSemester, SemesterNone, v)
			continue
		}
		filter.Semesters = append(filter.Semesters, semester)
	}

	if len(fields) > 0 {
		return filter, validationFailure("invalid course listing parameters", fields)
	}
	return filter, nil
}

func checkColumns(state tablestate.State, sorts, filters map[string]struct{}, fields FieldErrors) {
	if !state.Sort.IsZero() {
		if _, ok := sorts[state.Sort.ColumnID]; !ok {
			fields[tablestate.ParamSortBy] = fmt.Sprintf("cannot sort by %q; expected one of %s", state.Sort.ColumnID, joinColumns(sorts))
		}
	}
	for _, f := range state.Filters {
		if _, ok := filters[f.ColumnID]; !ok {
			fields[f.ColumnID] = fmt.Sprintf("unknown filter column; expected one of %s", joinColumns(filters))
		}
	}
}

func sortColumn(state tablestate.State) string {
	if state.Sort.IsZero() {
		return ColumnName
	}
	return state.Sort.ColumnID
}

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

func joinColumns(set map[string]struct{}) string {
	columns := make([]string, 0, len(set))
	for c := range set {
		columns = append(columns, c)
	}
	sort.Strings(columns)
	return strings.Join(columns, ", ")
}
