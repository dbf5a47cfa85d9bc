package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

const courseColumns = "c.id, c.name, c.is_open, c.course_level, c.semester, c.created_at, c.updated_at"

var courseSorts = map[string][]string{
	"name":        {"c.name"},
	"isOpen":      {"c.is_open"},
	"courseLevel": {"c.course_level"},
	"semester":    {"c.semester"},
	"createdAt":   {"c.created_at"},
}

// CourseRepository manages persistence for courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns one page of courses matching filter along with the total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, int, error) {
	q := &pageQuery{columns: courseColumns, from: "courses c"}

	if filter.Search != "" {
		q.where(fmt.Sprintf("c.name ILIKE %s", q.bind("%"+escapeLike(filter.Search)+"%")))
	}
	if len(filter.IsOpen) > 0 {
		q.where(fmt.Sprintf("c.is_open = ANY(%s)", q.bind(pq.BoolArray(filter.IsOpen))))
	}
	if len(filter.Levels) > 0 {
		q.where(fmt.Sprintf("c.course_level = ANY(%s)", q.bind(pq.Array(toStrings(filter.Levels)))))
	}
	if len(filter.Semesters) > 0 || filter.IncludeNoSemester {
		var alternatives []string
		if len(filter.Semesters) > 0 {
			semesters := make([]int64, len(filter.Semesters))
			for i, s := range filter.Semesters {
				semesters[i] = int64(s)
			}
			alternatives = append(alternatives, fmt.Sprintf("c.semester = ANY(%s)", q.bind(pq.Int64Array(semesters))))
		}
		if filter.IncludeNoSemester {
			alternatives = append(alternatives, "c.semester IS NULL")
		}
		q.where("(" + strings.Join(alternatives, " OR ") + ")")
	}

	columns, ok := courseSorts[filter.SortBy]
	if !ok {
		columns = courseSorts["name"]
	}
	q.orderBy = orderClause(columns, filter.SortDesc, "c.id")
	q.limit = filter.Limit
	q.offset = filter.Offset

	var courses []models.Course
	total, err := fetchPage(ctx, r.db, q, &courses)
	if err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}
	return courses, total, nil
}

// FindByID fetches a course by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := "SELECT " + courseColumns + " FROM courses c WHERE c.id = $1"
	var course models.Course
	if err := r.db.GetContext(ctx, &course, query, id); err != nil {
		return nil, err
	}
	return &course, nil
}

// Create inserts the course together with its initial lecturer assignments in one transaction.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course, lecturerIDs []string) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const query = `INSERT INTO courses (id, name, is_open, course_level, semester, created_at, updated_at)
		VALUES (:id, :name, :is_open, :course_level, :semester, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, course); err != nil {
			return fmt.Errorf("create course: %w", err)
		}
		for _, lecturerID := range lecturerIDs {
			pair := models.RelationPair{LecturerID: lecturerID, CourseID: course.ID}
			if err := insertAssignmentTx(ctx, tx, pair, now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update modifies an existing course; sql.ErrNoRows signals a vanished record.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, is_open = :is_open, course_level = :course_level, semester = :semester, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return expectAffected(result, "update course")
}

// Delete removes a course and every relation row referencing it.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMany removes courses and their relation rows in one transaction and returns the
// ids that existed.
func (r *CourseRepository) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	var deleted []string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = cascadeDelete(ctx, tx, "courses", "course_id", ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("delete courses: %w", err)
	}
	return deleted, nil
}
