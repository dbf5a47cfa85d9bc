package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

func TestQualificationRepositoryListDetails(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQualificationRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE q.course_id = $1")).
		WithArgs("c1").
		WillReturnRows(sqlmock.NewRows([]string{"lecturer_id", "course_id", "experience", "lead_time", "created_at", "updated_at", "lecturer_name", "course_name"}).
			AddRow("l1", "c1", "provadis", "short", now, now, "Dr. Grace Hopper", "Databases"))

	details, err := repo.ListDetails(context.Background(), models.EntityCourse, "c1")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "l1", details[0].LecturerID)
	assert.Equal(t, models.ExperienceProvadis, details[0].Experience)
	assert.Equal(t, "Dr. Grace Hopper", details[0].LecturerName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQualificationRepositoryUpsertReturnsTimestamps(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQualificationRepository(db)

	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO lecturer_qualifications .* ON CONFLICT \\(lecturer_id, course_id\\) DO UPDATE").
		WithArgs("l1", "c1", models.ExperienceOtherUni, models.LeadTimeMoreWeeks, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, updated))

	q := &models.Qualification{
		RelationPair:            models.RelationPair{LecturerID: "l1", CourseID: "c1"},
		QualificationAttributes: models.QualificationAttributes{Experience: models.ExperienceOtherUni, LeadTime: models.LeadTimeMoreWeeks},
	}
	require.NoError(t, repo.Upsert(context.Background(), q))
	assert.Equal(t, created, q.CreatedAt)
	assert.Equal(t, updated, q.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQualificationRepositoryApplyDeltaOrder(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQualificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM lecturer_qualifications").WithArgs("l1", "c1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE lecturer_qualifications SET").WithArgs("l1", "c2", models.ExperienceNone, models.LeadTimeShort, sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	update := []models.Qualification{{
		RelationPair:            models.RelationPair{LecturerID: "l1", CourseID: "c2"},
		QualificationAttributes: models.QualificationAttributes{Experience: models.ExperienceNone, LeadTime: models.LeadTimeShort},
	}}
	err := repo.ApplyDelta(context.Background(), nil, update, []models.RelationPair{{LecturerID: "l1", CourseID: "c1"}})

	var pairErr *PairError
	require.True(t, errors.As(err, &pairErr))
	assert.Equal(t, "c2", pairErr.Pair.CourseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQualificationRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewQualificationRepository(db)

	mock.ExpectExec("INSERT INTO lecturer_qualifications").
		WithArgs("l1", "c3", models.ExperienceNone, models.LeadTimeFourWeeks, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	q := &models.Qualification{
		RelationPair:            models.RelationPair{LecturerID: "l1", CourseID: "c3"},
		QualificationAttributes: models.QualificationAttributes{Experience: models.ExperienceNone, LeadTime: models.LeadTimeFourWeeks},
	}
	require.NoError(t, repo.Create(context.Background(), q))
	assert.False(t, q.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
