package models

import "time"

// CourseLevel is the degree level a course belongs to.
type CourseLevel string

const (
	CourseLevelBachelor CourseLevel = "bachelor"
	CourseLevelMaster   CourseLevel = "master"
)

const (
	MinSemester = 1
	MaxSemester = 12
)

// Course represents a teachable course. A nil Semester means the course is not semester-bound.
type Course struct {
	ID          string      `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	IsOpen      bool        `db:"is_open" json:"isOpen"`
	CourseLevel CourseLevel `db:"course_level" json:"courseLevel"`
	Semester    *int        `db:"semester" json:"semester"`
	CreatedAt   time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time   `db:"updated_at" json:"updatedAt"`
}

// CourseFilter captures the translated listing state for courses.
type CourseFilter struct {
	Search            string
	IsOpen            []bool
	Levels            []CourseLevel
	Semesters         []int
	IncludeNoSemester bool
	SortBy            string
	SortDesc          bool
	Offset            int
	Limit             int
}
