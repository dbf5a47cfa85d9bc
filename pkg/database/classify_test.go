package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want *appErrors.Error
	}{
		{"no rows", sql.ErrNoRows, appErrors.ErrNotFound},
		{"deadline", fmt.Errorf("list courses: %w", context.DeadlineExceeded), appErrors.ErrTimeout},
		{"unique", &pq.Error{Code: "23505", Constraint: "course_assignments_pkey"}, appErrors.ErrConflict},
		{"foreign key", &pq.Error{Code: "23503"}, appErrors.ErrNotFound},
		{"foreign key on delete", &pq.Error{Code: "23503", Message: `update or delete on table "courses" violates foreign key constraint "course_assignments_course_id_fkey" on table "course_assignments"`}, appErrors.ErrConflict},
		{"check", &pq.Error{Code: "23514", Constraint: "courses_semester_check"}, appErrors.ErrValidation},
		{"connection", &pq.Error{Code: "08006"}, appErrors.ErrStoreUnavailable},
		{"bad conn", driver.ErrBadConn, appErrors.ErrStoreUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(Classify(tc.err), tc.want))
		})
	}
}

func TestClassifyPassThrough(t *testing.T) {
	assert.Nil(t, Classify(nil))
	raw := errors.New("syntax")
	assert.Equal(t, raw, Classify(raw))
	assert.Equal(t, appErrors.ErrConflict, Classify(appErrors.ErrConflict))
}
