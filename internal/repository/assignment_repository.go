package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

// AssignmentRepository persists lecturer-course assignments keyed by the pair.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListCoursesByLecturer returns the courses a lecturer is assigned to.
func (r *AssignmentRepository) ListCoursesByLecturer(ctx context.Context, lecturerID string) ([]models.AssignedCourse, error) {
	query := `SELECT ` + courseColumns + `, ca.created_at AS assigned_at
FROM course_assignments ca
JOIN courses c ON c.id = ca.course_id
WHERE ca.lecturer_id = $1
ORDER BY c.name ASC, c.id ASC`
	var courses []models.AssignedCourse
	if err := r.db.SelectContext(ctx, &courses, query, lecturerID); err != nil {
		return nil, fmt.Errorf("list lecturer courses: %w", err)
	}
	return courses, nil
}

// ListLecturersByCourse returns the lecturers assigned to a course.
func (r *AssignmentRepository) ListLecturersByCourse(ctx context.Context, courseID string) ([]models.AssignedLecturer, error) {
	query := `SELECT ` + lecturerColumns + `, ca.created_at AS assigned_at
FROM course_assignments ca
JOIN lecturers l ON l.id = ca.lecturer_id
WHERE ca.course_id = $1
ORDER BY l.last_name ASC, l.first_name ASC, l.id ASC`
	var lecturers []models.AssignedLecturer
	if err := r.db.SelectContext(ctx, &lecturers, query, courseID); err != nil {
		return nil, fmt.Errorf("list course lecturers: %w", err)
	}
	return lecturers, nil
}

// RelatedIDs returns the ids on the other side of every assignment of the anchor.
func (r *AssignmentRepository) RelatedIDs(ctx context.Context, anchor models.EntityKind, anchorID string) ([]string, error) {
	query := fmt.Sprintf("SELECT %s FROM course_assignments WHERE %s = $1 ORDER BY %s", relatedColumn(anchor), anchorColumn(anchor), relatedColumn(anchor))
	var ids []string
	if err := r.db.SelectContext(ctx, &ids, query, anchorID); err != nil {
		return nil, fmt.Errorf("list assignment ids: %w", err)
	}
	return ids, nil
}

// Create inserts a single assignment. A duplicate pair surfaces as a unique violation.
func (r *AssignmentRepository) Create(ctx context.Context, pair models.RelationPair) (*models.Assignment, error) {
	now := time.Now().UTC()
	const query = `INSERT INTO course_assignments (lecturer_id, course_id, created_at) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, pair.LecturerID, pair.CourseID, now); err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}
	return &models.Assignment{RelationPair: pair, CreatedAt: now}, nil
}

// Delete removes the assignment for pair; sql.ErrNoRows when it does not exist.
func (r *AssignmentRepository) Delete(ctx context.Context, pair models.RelationPair) error {
	const query = `DELETE FROM course_assignments WHERE lecturer_id = $1 AND course_id = $2`
	result, err := r.db.ExecContext(ctx, query, pair.LecturerID, pair.CourseID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return expectAffected(result, "delete assignment")
}

// ApplyDelta adds and removes assignments in one transaction.
func (r *AssignmentRepository) ApplyDelta(ctx context.Context, add, remove []models.RelationPair) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, pair := range remove {
			result, err := tx.ExecContext(ctx, `DELETE FROM course_assignments WHERE lecturer_id = $1 AND course_id = $2`, pair.LecturerID, pair.CourseID)
			if err != nil {
				return &PairError{Pair: pair, Err: fmt.Errorf("delete assignment: %w", err)}
			}
			if err := expectAffected(result, "delete assignment"); err != nil {
				return &PairError{Pair: pair, Err: err}
			}
		}
		for _, pair := range add {
			if err := insertAssignmentTx(ctx, tx, pair, now); err != nil {
				return &PairError{Pair: pair, Err: err}
			}
		}
		return nil
	})
}

func insertAssignmentTx(ctx context.Context, tx *sqlx.Tx, pair models.RelationPair, now time.Time) error {
	const query = `INSERT INTO course_assignments (lecturer_id, course_id, created_at) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, pair.LecturerID, pair.CourseID, now); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// PairError ties a failed transactional statement to the relation pair it targeted.
type PairError struct {
	Pair models.RelationPair
	Err  error
}

func (e *PairError) Error() string {
	return fmt.Sprintf("%s/%s: %v", e.Pair.LecturerID, e.Pair.CourseID, e.Err)
}

func (e *PairError) Unwrap() error {
	return e.Err
}

func anchorColumn(anchor models.EntityKind) string {
	if anchor == models.EntityCourse {
		return "course_id"
	}
	return "lecturer_id"
}

func relatedColumn(anchor models.EntityKind) string {
	if anchor == models.EntityCourse {
		return "lecturer_id"
	}
	return "course_id"
}
