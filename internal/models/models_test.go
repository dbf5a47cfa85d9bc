package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheTags(t *testing.T) {
	assert.Equal(t, "courses", ListTag(EntityCourse))
	assert.Equal(t, "lecturer-l1", EntityTag(EntityLecturer, "l1"))
	assert.Equal(t, "course-c1-relations", RelationsTag(EntityCourse, "c1"))
	assert.Equal(t, "lecturer-l1-qualifications", RelationTag(EntityLecturer, "l1", RelationQualifications))
	assert.Equal(t, []string{
		"lecturer-l1-relations",
		"lecturer-l1-assignments",
		"course-c1-relations",
		"course-c1-assignments",
	}, PairTags(RelationPair{LecturerID: "l1", CourseID: "c1"}, RelationAssignments))
	assert.Equal(t, EntityCourse, EntityLecturer.Other())
}

func TestBothPreferenceMatchesEveryLevel(t *testing.T) {
	assert.True(t, PreferenceBoth.MatchesLevel(CourseLevelBachelor))
	assert.True(t, PreferenceBoth.MatchesLevel(CourseLevelMaster))
	assert.True(t, PreferenceBachelor.MatchesLevel(CourseLevelBachelor))
	assert.False(t, PreferenceBachelor.MatchesLevel(CourseLevelMaster))
}

func TestLecturerDisplayName(t *testing.T) {
	title := "Dr."
	second := ""
	l := Lecturer{Title: &title, FirstName: "Anna", SecondName: &second, LastName: "Weber"}
	assert.Equal(t, "Dr. Anna Weber", l.DisplayName())
}

func TestExpandPreferenceFilter(t *testing.T) {
	assert.Equal(t, []CourseLevelPreference{PreferenceBachelor, PreferenceBoth}, ExpandPreferenceFilter([]CourseLevelPreference{PreferenceBachelor}))
	assert.Equal(t, []CourseLevelPreference{PreferenceMaster, PreferenceBoth}, ExpandPreferenceFilter([]CourseLevelPreference{PreferenceMaster}))
	assert.Equal(t, []CourseLevelPreference{PreferenceBachelor, PreferenceMaster, PreferenceBoth}, ExpandPreferenceFilter([]CourseLevelPreference{PreferenceBachelor, PreferenceMaster, PreferenceBachelor}))
	assert.Equal(t, []CourseLevelPreference{PreferenceBoth}, ExpandPreferenceFilter([]CourseLevelPreference{PreferenceBoth}))
}
