package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

func TestCreateRelationDuplicateIsConflict(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	pair := models.RelationPair{LecturerID: lecturerA, CourseID: courseA}

	require.NoError(t, env.relations.CreateRelation(context.Background(), models.RelationAssignments, pair, nil))
	err := env.relations.CreateRelation(context.Background(), models.RelationAssignments, pair, nil)
	assert.ErrorIs(t, err, appErrors.ErrConflict)
	assert.Len(t, env.db.assignments, 1)
}

func TestCreateRelationUnknownEntityIsNotFound(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	err := env.relations.CreateRelation(context.Background(), models.RelationAssignments, models.RelationPair{LecturerID: lecturerA, CourseID: missingID}, nil)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCreateQualificationRequiresAttributes(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	pair := models.RelationPair{LecturerID: lecturerA, CourseID: courseA}

	err := env.relations.CreateRelation(context.Background(), models.RelationQualifications, pair, nil)
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	err = env.relations.CreateRelation(context.Background(), models.RelationQualifications, pair,
		&models.QualificationAttributes{Experience: "guru", LeadTime: models.LeadTimeShort})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	err = env.relations.CreateRelation(context.Background(), models.RelationQualifications, pair,
		&models.QualificationAttributes{Experience: models.ExperienceOtherUni, LeadTime: models.LeadTimeShort})
	require.NoError(t, err)
	assert.Contains(t, env.db.qualifications, pair)
}

func TestDeleteRelationMissingIsNotFound(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	err := env.relations.DeleteRelation(context.Background(), models.RelationAssignments, models.RelationPair{LecturerID: lecturerA, CourseID: courseA})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestUpsertRelationAttributesReplaces(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	env.db.qualify(lecturerA, courseA, models.ExperienceNone, models.LeadTimeShort)
	pair := models.RelationPair{LecturerID: lecturerA, CourseID: courseA}

	q, err := env.relations.UpsertRelationAttributes(context.Background(), pair,
		models.QualificationAttributes{Experience: models.ExperienceProvadis, LeadTime: models.LeadTimeMoreWeeks})
	require.NoError(t, err)
	assert.Equal(t, models.LeadTimeMoreWeeks, q.LeadTime)
	assert.Equal(t, models.ExperienceProvadis, env.db.qualifications[pair].Experience)
	assert.True(t, env.cacheRepo.wasBumped(models.RelationTag(models.EntityLecturer, lecturerA, models.RelationQualifications)))
}

func TestRelationReadsAreInvalidatedByRelationMutations(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	env.db.assign(lecturerA, courseA)
	ctx := context.Background()

	lecturers, hit, err := env.relations.ListLecturersOfCourse(ctx, courseA)
	require.NoError(t, err)
	assert.False(t, hit)
	require.Len(t, lecturers, 1)

	_, hit, err = env.relations.ListLecturersOfCourse(ctx, courseA)
	require.NoError(t, err)
	assert.True(t, hit)

	require.NoError(t, env.relations.CreateRelation(ctx, models.RelationAssignments, models.RelationPair{LecturerID: lecturerB, CourseID: courseA}, nil))

	lecturers, hit, err = env.relations.ListLecturersOfCourse(ctx, courseA)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Len(t, lecturers, 2)
}

func TestRelationReadsSeeRenamedEntities(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	env.db.assign(lecturerA, courseA)
	ctx := context.Background()

	courses, _, err := env.relations.ListCoursesOfLecturer(ctx, lecturerA)
	require.NoError(t, err)
	require.Len(t, courses, 1)

	open := true
	_, err = env.courses.Update(ctx, courseA, UpdateCourseRequest{Name: "Advanced Algorithms", IsOpen: &open, CourseLevel: models.CourseLevelMaster})
	require.NoError(t, err)

	courses, hit, err := env.relations.ListCoursesOfLecturer(ctx, lecturerA)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, "Advanced Algorithms", courses[0].Name)
}

func TestListQualificationsIncludesNames(t *testing.T) {
	env := newTestEnv(ReconcileOptions{})
	seedCourses(env)
	env.db.qualify(lecturerA, courseB, models.ExperienceOtherUni, models.LeadTimeShort)

	details, _, err := env.relations.ListQualifications(context.Background(), models.EntityCourse, courseB)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Ada Lovelace", details[0].LecturerName)
	assert.Equal(t, "Databases", details[0].CourseName)

	_, _, err = env.relations.ListQualifications(context.Background(), models.EntityCourse, missingID)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
