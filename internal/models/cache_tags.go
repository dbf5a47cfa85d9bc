package models

import "fmt"

// EntityKind names a primary entity for cache tagging.
type EntityKind string

const (
	EntityLecturer EntityKind = "lecturer"
	EntityCourse   EntityKind = "course"
)

// RelationName names a lecturer/course relation.
type RelationName string

const (
	RelationAssignments    RelationName = "assignments"
	RelationQualifications RelationName = "qualifications"
)

// Other returns the entity on the opposite side of a lecturer/course relation.
func (k EntityKind) Other() EntityKind {
	if k == EntityLecturer {
		return EntityCourse
	}
	return EntityLecturer
}

// ListTag tags every cached listing of kind.
func ListTag(kind EntityKind) string {
	return fmt.Sprintf("%ss", kind)
}

// EntityTag tags cached reads of a single entity.
func EntityTag(kind EntityKind, id string) string {
	return fmt.Sprintf("%s-%s", kind, id)
}

// RelationsTag tags every cached read that depends on any relation of the entity.
func RelationsTag(kind EntityKind, id string) string {
	return fmt.Sprintf("%s-%s-relations", kind, id)
}

// RelationTag tags cached reads of one named relation of the entity.
func RelationTag(kind EntityKind, id string, relation RelationName) string {
	return fmt.Sprintf("%s-%s-%s", kind, id, relation)
}

// PairTags returns the tags invalidated when a relation row for pair changes.
func PairTags(pair RelationPair, relation RelationName) []string {
	return []string{
		RelationsTag(EntityLecturer, pair.LecturerID),
		RelationTag(EntityLecturer, pair.LecturerID, relation),
		RelationsTag(EntityCourse, pair.CourseID),
		RelationTag(EntityCourse, pair.CourseID, relation),
	}
}
