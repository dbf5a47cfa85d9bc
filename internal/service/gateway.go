package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
)

// StoreOptions tunes store access and read caching for the entity services.
type StoreOptions struct {
	QueryTimeout time.Duration
	ListingTTL   time.Duration
}

// BulkDeleteRequest lists the ids removed by a bulk delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,max=500,dive,required"`
}

// BulkDeleteResult reports which requested ids were removed and which did not exist.
type BulkDeleteResult struct {
	Deleted  []string `json:"deleted"`
	NotFound []string `json:"notFound"`
}

// QualificationInput carries one desired qualification. Only the id of the side opposite
// to the anchor entity is read; the anchor side comes from the request path.
type QualificationInput struct {
	LecturerID string            `json:"lecturerId,omitempty" validate:"omitempty,uuid"`
	CourseID   string            `json:"courseId,omitempty" validate:"omitempty,uuid"`
	Experience models.Experience `json:"experience" validate:"required,oneof=none other_uni provadis"`
	LeadTime   models.LeadTime   `json:"leadTime" validate:"required,oneof=short four_weeks more_weeks"`
}

// entityMutationTags are the tags invalidated after an entity itself changes or disappears.
func entityMutationTags(kind models.EntityKind, id string) []string {
	return []string{
		models.ListTag(kind),
		models.EntityTag(kind, id),
		models.RelationsTag(kind, id),
	}
}

// qualificationsFromInput turns inputs into rows anchored on anchorID, rejecting missing
// or repeated related ids.
func qualificationsFromInput(anchor models.EntityKind, anchorID string, inputs []QualificationInput) ([]models.Qualification, error) {
	relatedField := "courseId"
	if anchor == models.EntityCourse {
		relatedField = "lecturerId"
	}
	fields := FieldErrors{}
	seen := make(map[string]bool, len(inputs))
	out := make([]models.Qualification, 0, len(inputs))
	for i, in := range inputs {
		relatedID := in.CourseID
		if anchor == models.EntityCourse {
			relatedID = in.LecturerID
		}
		path := fmt.Sprintf("qualifications[%d].%s", i, relatedField)
		switch {
		case relatedID == "":
			fields[path] = "is required"
			continue
		case seen[relatedID]:
			fields[path] = "must not contain duplicates"
			continue
		}
		seen[relatedID] = true
		out = append(out, models.Qualification{
			RelationPair:            pairFor(anchor, anchorID, relatedID),
			QualificationAttributes: models.QualificationAttributes{Experience: in.Experience, LeadTime: in.LeadTime},
		})
	}
	if len(fields) > 0 {
		return nil, validationFailure("invalid qualifications", fields)
	}
	return out, nil
}

// bulkDeleteIDs returns the distinct requested ids and the subset that can exist at all.
func bulkDeleteIDs(v *validator.Validate, req BulkDeleteRequest) (requested, valid []string, err error) {
	if err := validateStruct(v, req, "invalid bulk delete payload"); err != nil {
		return nil, nil, err
	}
	requested = uniqueStrings(req.IDs)
	for _, id := range requested {
		if validID(id) {
			valid = append(valid, id)
		}
	}
	return requested, valid, nil
}

func newBulkDeleteResult(requested, deleted []string) *BulkDeleteResult {
	gone := make(map[string]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}
	result := &BulkDeleteResult{Deleted: []string{}, NotFound: []string{}}
	for _, id := range requested {
		if gone[id] {
			result.Deleted = append(result.Deleted, id)
		} else {
			result.NotFound = append(result.NotFound, id)
		}
	}
	return result
}

// pairFor builds the relation pair for anchor and the id on the other side.
func pairFor(anchor models.EntityKind, anchorID, relatedID string) models.RelationPair {
	if anchor == models.EntityCourse {
		return models.RelationPair{LecturerID: relatedID, CourseID: anchorID}
	}
	return models.RelationPair{LecturerID: anchorID, CourseID: relatedID}
}

// relatedIDOf returns the id of pair on the side opposite to anchor.
func relatedIDOf(anchor models.EntityKind, pair models.RelationPair) string {
	if anchor == models.EntityCourse {
		return pair.LecturerID
	}
	return pair.CourseID
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func normalizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
