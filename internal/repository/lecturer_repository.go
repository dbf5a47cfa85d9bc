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

const lecturerColumns = "l.id, l.title, l.first_name, l.second_name, l.last_name, l.email, l.phone, l.type, l.course_level_preference, l.created_at, l.updated_at"

// lecturerSorts maps listing sort columns to stored columns; "name" is derived.
var lecturerSorts = map[string][]string{
	"name":                  {"l.last_name", "l.first_name"},
	"email":                 {"l.email"},
	"type":                  {"l.type"},
	"courseLevelPreference": {"l.course_level_preference"},
	"createdAt":             {"l.created_at"},
}

// LecturerRepository manages persistence for lecturers.
type LecturerRepository struct {
	db *sqlx.DB
}

// NewLecturerRepository constructs a LecturerRepository.
func NewLecturerRepository(db *sqlx.DB) *LecturerRepository {
	return &LecturerRepository{db: db}
}

// List returns one page of lecturers matching filter along with the total count.
func (r *LecturerRepository) List(ctx context.Context, filter models.LecturerFilter) ([]models.Lecturer, int, error) {
	q := &pageQuery{columns: lecturerColumns, from: "lecturers l"}

	if filter.Search != "" {
		p := q.bind("%" + escapeLike(filter.Search) + "%")
		q.where(fmt.Sprintf("CONCAT_WS(' ', l.title, l.first_name, l.second_name, l.last_name) ILIKE %s", p))
	}
	if len(filter.Types) > 0 {
		q.where(fmt.Sprintf("l.type = ANY(%s)", q.bind(pq.Array(toStrings(filter.Types)))))
	}
	if len(filter.Preferences) > 0 {
		expanded := models.ExpandPreferenceFilter(filter.Preferences)
		q.where(fmt.Sprintf("l.course_level_preference = ANY(%s)", q.bind(pq.Array(toStrings(expanded)))))
	}
	if len(filter.CourseIDs) > 0 {
		q.where(fmt.Sprintf("EXISTS (SELECT 1 FROM course_assignments ca WHERE ca.lecturer_id = l.id AND ca.course_id = ANY(%s))", q.bind(pq.Array(filter.CourseIDs))))
	}

	columns, ok := lecturerSorts[filter.SortBy]
	if !ok {
		columns = lecturerSorts["name"]
	}
	q.orderBy = orderClause(columns, filter.SortDesc, "l.id")
	q.limit = filter.Limit
	q.offset = filter.Offset

	var lecturers []models.Lecturer
	total, err := fetchPage(ctx, r.db, q, &lecturers)
	if err != nil {
		return nil, 0, fmt.Errorf("list lecturers: %w", err)
	}
	return lecturers, total, nil
}

// FindByID fetches a lecturer by ID.
func (r *LecturerRepository) FindByID(ctx context.Context, id string) (*models.Lecturer, error) {
	query := "SELECT " + lecturerColumns + " FROM lecturers l WHERE l.id = $1"
	var lecturer models.Lecturer
	if err := r.db.GetContext(ctx, &lecturer, query, id); err != nil {
		return nil, err
	}
	return &lecturer, nil
}

// ExistsByEmail checks if another lecturer uses the same email.
func (r *LecturerRepository) ExistsByEmail(ctx context.Context, email string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM lecturers WHERE LOWER(email) = LOWER($1)"
	args := []interface{}{email}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check lecturer email: %w", err)
	}
	return true, nil
}

// Create inserts the lecturer together with its initial assignments and qualifications
// in one transaction.
func (r *LecturerRepository) Create(ctx context.Context, lecturer *models.Lecturer, courseIDs []string, qualifications []models.Qualification) error {
	if lecturer.ID == "" {
		lecturer.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if lecturer.CreatedAt.IsZero() {
		lecturer.CreatedAt = now
	}
	lecturer.UpdatedAt = now

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const query = `INSERT INTO lecturers (id, title, first_name, second_name, last_name, email, phone, type, course_level_preference, created_at, updated_at)
		VALUES (:id, :title, :first_name, :second_name, :last_name, :email, :phone, :type, :course_level_preference, :created_at, :updated_at)`
		if _, err := tx.NamedExecContext(ctx, query, lecturer); err != nil {
			return fmt.Errorf("create lecturer: %w", err)
		}
		for _, courseID := range courseIDs {
			pair := models.RelationPair{LecturerID: lecturer.ID, CourseID: courseID}
			if err := insertAssignmentTx(ctx, tx, pair, now); err != nil {
				return err
			}
		}
		for i := range qualifications {
			qualifications[i].LecturerID = lecturer.ID
			if err := insertQualificationTx(ctx, tx, &qualifications[i], now); err != nil {
				return err
			}
		}
		return nil
	})
}

// Update modifies an existing lecturer; sql.ErrNoRows signals a vanished record.
func (r *LecturerRepository) Update(ctx context.Context, lecturer *models.Lecturer) error {
	lecturer.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lecturers SET title = :title, first_name = :first_name, second_name = :second_name, last_name = :last_name,
		email = :email, phone = :phone, type = :type, course_level_preference = :course_level_preference, updated_at = :updated_at WHERE id = :id`
	result, err := r.db.NamedExecContext(ctx, query, lecturer)
	if err != nil {
		return fmt.Errorf("update lecturer: %w", err)
	}
	return expectAffected(result, "update lecturer")
}

// Delete removes a lecturer and every relation row referencing it.
func (r *LecturerRepository) Delete(ctx context.Context, id string) error {
	deleted, err := r.DeleteMany(ctx, []string{id})
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteMany removes lecturers and their relation rows in one transaction and returns the
// ids that existed.
func (r *LecturerRepository) DeleteMany(ctx context.Context, ids []string) ([]string, error) {
	var deleted []string
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		deleted, err = cascadeDelete(ctx, tx, "lecturers", "lecturer_id", ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("delete lecturers: %w", err)
	}
	return deleted, nil
}

// cascadeDelete removes assignment and qualification rows pointing at ids before the
// owning rows themselves.
func cascadeDelete(ctx context.Context, tx *sqlx.Tx, table, refColumn string, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	arg := pq.Array(ids)
	for _, relTable := range []string{"course_assignments", "lecturer_qualifications"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE %s = ANY($1)", relTable, refColumn)
		if _, err := tx.ExecContext(ctx, query, arg); err != nil {
			return nil, fmt.Errorf("delete %s: %w", relTable, err)
		}
	}
	var deleted []string
	query := fmt.Sprintf("DELETE FROM %s WHERE id = ANY($1) RETURNING id", table)
	if err := tx.SelectContext(ctx, &deleted, query, arg); err != nil {
		return nil, fmt.Errorf("delete %s: %w", table, err)
	}
	return deleted, nil
}

func expectAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// escapeLike makes user input literal inside a LIKE pattern.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
