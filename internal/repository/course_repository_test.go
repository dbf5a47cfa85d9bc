package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

var courseRowColumns = []string{"id", "name", "is_open", "course_level", "semester", "created_at", "updated_at"}

func TestCourseRepositoryListSemesterFilterIncludesUnscheduled(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM courses c WHERE c.is_open = ANY($1) AND (c.semester = ANY($2) OR c.semester IS NULL)")).
		WithArgs(pq.BoolArray([]bool{true}), pq.Int64Array([]int64{3})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.semester ASC, c.id ASC LIMIT 10 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow("c1", "Databases", true, "bachelor", 3, now, now).
			AddRow("c2", "Thesis", true, "master", nil, now, now))
	mock.ExpectCommit()

	list, total, err := repo.List(context.Background(), models.CourseFilter{
		IsOpen:            []bool{true},
		Semesters:         []int{3},
		IncludeNoSemester: true,
		SortBy:            "semester",
		Limit:             10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Semester)
	assert.Equal(t, 3, *list[0].Semester)
	assert.Nil(t, list[1].Semester)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListOnlyUnscheduled(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.name ILIKE $1 AND c.course_level = ANY($2) AND (c.semester IS NULL)")).
		WithArgs("%data%", pq.Array([]string{"master"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY c.name DESC, c.id ASC")).
		WillReturnRows(sqlmock.NewRows(courseRowColumns))
	mock.ExpectCommit()

	_, _, err := repo.List(context.Background(), models.CourseFilter{
		Search:            "data",
		Levels:            []models.CourseLevel{models.CourseLevelMaster},
		IncludeNoSemester: true,
		SortDesc:          true,
		Limit:             10,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryCreateWithLecturers(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO courses").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO course_assignments").
		WithArgs("l1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	course := &models.Course{Name: "Databases", CourseLevel: models.CourseLevelBachelor}
	require.NoError(t, repo.Create(context.Background(), course, []string{"l1"}))
	assert.NotEmpty(t, course.ID)
	assert.False(t, course.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteCascadesOnCourseColumn(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM course_assignments WHERE course_id = ANY($1)")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM lecturer_qualifications WHERE course_id = ANY($1)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM courses WHERE id = ANY($1) RETURNING id")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("c1"))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "c1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
