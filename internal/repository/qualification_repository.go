package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

const qualificationColumns = "q.lecturer_id, q.course_id, q.experience, q.lead_time, q.created_at, q.updated_at"

// QualificationRepository persists per-pair qualification attributes.
type QualificationRepository struct {
	db *sqlx.DB
}

// NewQualificationRepository constructs the repository.
func NewQualificationRepository(db *sqlx.DB) *QualificationRepository {
	return &QualificationRepository{db: db}
}

// ListDetails returns the qualifications of the anchor enriched with display names.
func (r *QualificationRepository) ListDetails(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.QualificationDetail, error) {
	query := fmt.Sprintf(`SELECT %s,
       CONCAT_WS(' ', l.title, l.first_name, l.second_name, l.last_name) AS lecturer_name, c.name AS course_name
FROM lecturer_qualifications q
JOIN lecturers l ON l.id = q.lecturer_id
JOIN courses c ON c.id = q.course_id
WHERE q.%s = $1
ORDER BY c.name ASC, l.last_name ASC, l.first_name ASC`, qualificationColumns, anchorColumn(anchor))
	var details []models.QualificationDetail
	if err := r.db.SelectContext(ctx, &details, query, anchorID); err != nil {
		return nil, fmt.Errorf("list qualifications: %w", err)
	}
	return details, nil
}

// ListForAnchor returns the raw qualification rows of the anchor.
func (r *QualificationRepository) ListForAnchor(ctx context.Context, anchor models.EntityKind, anchorID string) ([]models.Qualification, error) {
	query := fmt.Sprintf("SELECT %s FROM lecturer_qualifications q WHERE q.%s = $1 ORDER BY q.lecturer_id, q.course_id", qualificationColumns, anchorColumn(anchor))
	var items []models.Qualification
	if err := r.db.SelectContext(ctx, &items, query, anchorID); err != nil {
		return nil, fmt.Errorf("list anchor qualifications: %w", err)
	}
	return items, nil
}

// Create inserts a qualification. A duplicate pair surfaces as a unique violation.
func (r *QualificationRepository) Create(ctx context.Context, q *models.Qualification) error {
	if _, err := r.db.ExecContext(ctx, insertQualificationSQL, qualificationArgs(q, time.Now().UTC())...); err != nil {
		return fmt.Errorf("create qualification: %w", err)
	}
	return nil
}

// Update changes the attributes of an existing qualification.
func (r *QualificationRepository) Update(ctx context.Context, q *models.Qualification) error {
	q.UpdatedAt = time.Now().UTC()
	const query = `UPDATE lecturer_qualifications SET experience = $3, lead_time = $4, updated_at = $5 WHERE lecturer_id = $1 AND course_id = $2`
	result, err := r.db.ExecContext(ctx, query, q.LecturerID, q.CourseID, q.Experience, q.LeadTime, q.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update qualification: %w", err)
	}
	return expectAffected(result, "update qualification")
}

// Upsert creates or replaces the attributes for the pair.
func (r *QualificationRepository) Upsert(ctx context.Context, q *models.Qualification) error {
	now := time.Now().UTC()
	const query = `INSERT INTO lecturer_qualifications (lecturer_id, course_id, experience, lead_time, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (lecturer_id, course_id) DO UPDATE SET experience = EXCLUDED.experience, lead_time = EXCLUDED.lead_time, updated_at = EXCLUDED.updated_at
RETURNING created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query, q.LecturerID, q.CourseID, q.Experience, q.LeadTime, now, now)
	if err := row.Scan(&q.CreatedAt, &q.UpdatedAt); err != nil {
		return fmt.Errorf("upsert qualification: %w", err)
	}
	return nil
}

// Delete removes the qualification for pair; sql.ErrNoRows when it does not exist.
func (r *QualificationRepository) Delete(ctx context.Context, pair models.RelationPair) error {
	const query = `DELETE FROM lecturer_qualifications WHERE lecturer_id = $1 AND course_id = $2`
	result, err := r.db.ExecContext(ctx, query, pair.LecturerID, pair.CourseID)
	if err != nil {
		return fmt.Errorf("delete qualification: %w", err)
	}
	return expectAffected(result, "delete qualification")
}

// ApplyDelta writes qualification adds, updates and removals in one transaction.
func (r *QualificationRepository) ApplyDelta(ctx context.Context, add, update []models.Qualification, remove []models.RelationPair) error {
	now := time.Now().UTC()
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for _, pair := range remove {
			result, err := tx.ExecContext(ctx, `DELETE FROM lecturer_qualifications WHERE lecturer_id = $1 AND course_id = $2`, pair.LecturerID, pair.CourseID)
			if err != nil {
				return &PairError{Pair: pair, Err: fmt.Errorf("delete qualification: %w", err)}
			}
			if err := expectAffected(result, "delete qualification"); err != nil {
				return &PairError{Pair: pair, Err: err}
			}
		}
		for i := range update {
			item := &update[i]
			result, err := tx.ExecContext(ctx, `UPDATE lecturer_qualifications SET experience = $3, lead_time = $4, updated_at = $5 WHERE lecturer_id = $1 AND course_id = $2`,
				item.LecturerID, item.CourseID, item.Experience, item.LeadTime, now)
			if err != nil {
				return &PairError{Pair: item.RelationPair, Err: fmt.Errorf("update qualification: %w", err)}
			}
			if err := expectAffected(result, "update qualification"); err != nil {
				return &PairError{Pair: item.RelationPair, Err: err}
			}
		}
		for i := range add {
			if err := insertQualificationTx(ctx, tx, &add[i], now); err != nil {
				return &PairError{Pair: add[i].RelationPair, Err: err}
			}
		}
		return nil
	})
}

const insertQualificationSQL = `INSERT INTO lecturer_qualifications (lecturer_id, course_id, experience, lead_time, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`

func insertQualificationTx(ctx context.Context, tx *sqlx.Tx, q *models.Qualification, now time.Time) error {
	if _, err := tx.ExecContext(ctx, insertQualificationSQL, qualificationArgs(q, now)...); err != nil {
		return fmt.Errorf("create qualification: %w", err)
	}
	return nil
}

func qualificationArgs(q *models.Qualification, now time.Time) []interface{} {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = now
	}
	q.UpdatedAt = now
	return []interface{}{q.LecturerID, q.CourseID, q.Experience, q.LeadTime, q.CreatedAt, q.UpdatedAt}
}
