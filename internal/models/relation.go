package models

import "time"

// Experience records where a lecturer has taught a course before.
type Experience string

const (
	ExperienceNone     Experience = "none"
	ExperienceOtherUni Experience = "other_uni"
	ExperienceProvadis Experience = "provadis"
)

// LeadTime is how much preparation a lecturer needs before teaching a course.
type LeadTime string

const (
	LeadTimeShort     LeadTime = "short"
	LeadTimeFourWeeks LeadTime = "four_weeks"
	LeadTimeMoreWeeks LeadTime = "more_weeks"
)

// RelationPair identifies a lecturer/course pair.
type RelationPair struct {
	LecturerID string `db:"lecturer_id" json:"lecturerId"`
	CourseID   string `db:"course_id" json:"courseId"`
}

// Assignment links a lecturer to a course. The pair is the identity.
type Assignment struct {
	RelationPair
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// QualificationAttributes are the editable fields of a qualification.
type QualificationAttributes struct {
	Experience Experience `db:"experience" json:"experience"`
	LeadTime   LeadTime   `db:"lead_time" json:"leadTime"`
}

// Qualification stores how prepared a lecturer is for a course.
type Qualification struct {
	RelationPair
	QualificationAttributes
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// AssignedLecturer is a lecturer row as seen from a course.
type AssignedLecturer struct {
	Lecturer
	AssignedAt time.Time `db:"assigned_at" json:"assignedAt"`
}

// AssignedCourse is a course row as seen from a lecturer.
type AssignedCourse struct {
	Course
	AssignedAt time.Time `db:"assigned_at" json:"assignedAt"`
}

// QualificationDetail enriches a qualification with display names.
type QualificationDetail struct {
	Qualification
	LecturerName string `db:"lecturer_name" json:"lecturerName"`
	CourseName   string `db:"course_name" json:"courseName"`
}
