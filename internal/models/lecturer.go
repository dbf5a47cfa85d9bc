package models

import "time"

// LecturerType distinguishes staff lecturers from external ones.
type LecturerType string

const (
	LecturerTypeInternal LecturerType = "internal"
	LecturerTypeExternal LecturerType = "external"
)

// CourseLevelPreference states which course levels a lecturer wants to teach.
type CourseLevelPreference string

const (
	PreferenceBachelor CourseLevelPreference = "bachelor"
	PreferenceMaster   CourseLevelPreference = "master"
	PreferenceBoth     CourseLevelPreference = "both"
)

// Lecturer represents a person who can be assigned to courses.
type Lecturer struct {
	ID                    string                `db:"id" json:"id"`
	Title                 *string               `db:"title" json:"title,omitempty"`
	FirstName             string                `db:"first_name" json:"firstName"`
	SecondName            *string               `db:"second_name" json:"secondName,omitempty"`
	LastName              string                `db:"last_name" json:"lastName"`
	Email                 string                `db:"email" json:"email"`
	Phone                 string                `db:"phone" json:"phone"`
	Type                  LecturerType          `db:"type" json:"type"`
	CourseLevelPreference CourseLevelPreference `db:"course_level_preference" json:"courseLevelPreference"`
	CreatedAt             time.Time             `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time             `db:"updated_at" json:"updatedAt"`
}

// DisplayName joins the name parts the way listings show them.
func (l Lecturer) DisplayName() string {
	name := ""
	for _, part := range []*string{l.Title, &l.FirstName, l.SecondName, &l.LastName} {
		if part == nil || *part == "" {
			continue
		}
		if name != "" {
			name += " "
		}
		name += *part
	}
	return name
}

// MatchesLevel applies the "both" rule: a both-preference matches either level.
func (p CourseLevelPreference) MatchesLevel(level CourseLevel) bool {
	if p == PreferenceBoth {
		return level == CourseLevelBachelor || level == CourseLevelMaster
	}
	return string(p) == string(level)
}

// LecturerFilter captures the translated listing state for lecturers.
type LecturerFilter struct {
	Search      string
	Types       []LecturerType
	Preferences []CourseLevelPreference
	CourseIDs   []string
	SortBy      string
	SortDesc    bool
	Offset      int
	Limit       int
}

// ExpandPreferenceFilter adds "both" whenever a concrete level is selected so that
// lecturers willing to teach either level match.
func ExpandPreferenceFilter(selected []CourseLevelPreference) []CourseLevelPreference {
	out := make([]CourseLevelPreference, 0, len(selected)+1)
	seen := make(map[CourseLevelPreference]bool, len(selected)+1)
	needsBoth := false
	for _, p := range selected {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
		if p == PreferenceBachelor || p == PreferenceMaster {
			needsBoth = true
		}
	}
	if needsBoth && !seen[PreferenceBoth] {
		out = append(out, PreferenceBoth)
	}
	return out
}
