package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/repository"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
)

// Reconciliation operation names.
const (
	OpAdd    = "add"
	OpUpdate = "update"
	OpRemove = "remove"
)

// ReconcileResult lists the related ids changed by a reconciliation and the operations
// that failed.
type ReconcileResult struct {
	Added   []string          `json:"added"`
	Updated []string          `json:"updated"`
	Removed []string          `json:"removed"`
	Failed  []FailedOperation `json:"failed"`
}

// FailedOperation describes one relation change that could not be applied.
type FailedOperation struct {
	RelatedID string `json:"relatedId"`
	Op        string `json:"op"`
	Code      string `json:"code"`
	Message   string `json:"message"`
}

// DiffIDs returns the ids to add and to remove so that current becomes desired. Both
// results are sorted and free of duplicates.
func DiffIDs(current, desired []string) (toAdd, toRemove []string) {
	have := make(map[string]bool, len(current))
	for _, id := range current {
		have[id] = true
	}
	want := make(map[string]bool, len(desired))
	for _, id := range desired {
		if want[id] {
			continue
		}
		want[id] = true
		if !have[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range have {
		if !want[id] {
			toRemove = append(toRemove, id)
		}
	}
	sort.Strings(toAdd)
	sort.Strings(toRemove)
	return toAdd, toRemove
}

// DiffQualifications compares qualification sets by pair. A pair present on both sides
// with different attributes is an update; identical pairs are left alone.
func DiffQualifications(current, desired []models.Qualification) (toAdd, toUpdate []models.Qualification, toRemove []models.RelationPair) {
	have := make(map[models.RelationPair]models.QualificationAttributes, len(current))
	for _, q := range current {
		have[q.RelationPair] = q.QualificationAttributes
	}
	want := make(map[models.RelationPair]bool, len(desired))
	for _, q := range desired {
		want[q.RelationPair] = true
		attrs, ok := have[q.RelationPair]
		switch {
		case !ok:
			toAdd = append(toAdd, q)
		case attrs != q.QualificationAttributes:
			toUpdate = append(toUpdate, q)
		}
	}
	for pair := range have {
		if !want[pair] {
			toRemove = append(toRemove, pair)
		}
	}
	sortQualifications(toAdd)
	sortQualifications(toUpdate)
	sort.Slice(toRemove, func(i, j int) bool { return pairLess(toRemove[i], toRemove[j]) })
	return toAdd, toUpdate, toRemove
}

// relationOp is one independent change against the store.
type relationOp struct {
	op        string
	relatedID string
	pair      models.RelationPair
	apply     func(ctx context.Context) error
}

// applyConcurrently runs ops with at most limit in flight. Every op records its own
// outcome; one failure never cancels the others.
func (s *RelationService) applyConcurrently(ctx context.Context, relation models.RelationName, ops []relationOp) *ReconcileResult {
	outcomes := make([]error, len(ops))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i := range ops {
		i := i
		g.Go(func() error {
			op := ops[i]
			outcomes[i] = s.guard.write(ctx, "reconcile_"+string(relation), op.apply)
			s.metrics.RecordReconcileOp(string(relation), op.op, outcomes[i] == nil)
			return nil
		})
	}
	_ = g.Wait()

	result := newReconcileResult()
	for i, op := range ops {
		if err := outcomes[i]; err != nil {
			result.Failed = append(result.Failed, failedOperation(op, err))
			continue
		}
		result.record(op)
	}
	return result
}

// applyAtomically writes the whole delta in one transaction. On failure nothing is
// applied and the failing operation is reported when it can be identified.
func (s *RelationService) applyAtomically(ctx context.Context, relation models.RelationName, ops []relationOp, apply func(ctx context.Context) error) *ReconcileResult {
	result := newReconcileResult()
	err := s.guard.write(ctx, "reconcile_"+string(relation)+"_atomic", apply)
	if err == nil {
		for _, op := range ops {
			result.record(op)
			s.metrics.RecordReconcileOp(string(relation), op.op, true)
		}
		return result
	}

	failing := relationOp{op: "apply"}
	var pairErr *repository.PairError
	if errors.As(err, &pairErr) {
		for _, op := range ops {
			if op.pair == pairErr.Pair {
				failing = op
				break
			}
		}
	}
	s.metrics.RecordReconcileOp(string(relation), failing.op, false)
	result.Failed = append(result.Failed, failedOperation(failing, err))
	return result
}

func (s *RelationService) finishReconcile(ctx context.Context, relation models.RelationName, anchor models.EntityKind, anchorID string, ops []relationOp, result *ReconcileResult) (*ReconcileResult, error) {
	var tags []string
	for _, op := range ops {
		tags = append(tags, models.PairTags(op.pair, relation)...)
	}
	s.invalidate(ctx, tags...)

	if len(result.Failed) == 0 {
		s.logger.Info("relations reconciled",
			zap.String("relation", string(relation)),
			zap.String("anchor", string(anchor)),
			zap.String("anchor_id", anchorID),
			zap.Int("added", len(result.Added)),
			zap.Int("updated", len(result.Updated)),
			zap.Int("removed", len(result.Removed)),
		)
		return result, nil
	}
	s.logger.Warn("relation reconciliation incomplete",
		zap.String("relation", string(relation)),
		zap.String("anchor", string(anchor)),
		zap.String("anchor_id", anchorID),
		zap.Int("failed", len(result.Failed)),
	)
	return result, appErrors.WithDetails(appErrors.ErrPartialReconciliation, appErrors.ErrPartialReconciliation.Message, result)
}

func newReconcileResult() *ReconcileResult {
	return &ReconcileResult{Added: []string{}, Updated: []string{}, Removed: []string{}, Failed: []FailedOperation{}}
}

func (r *ReconcileResult) record(op relationOp) {
	switch op.op {
	case OpAdd:
		r.Added = append(r.Added, op.relatedID)
	case OpUpdate:
		r.Updated = append(r.Updated, op.relatedID)
	case OpRemove:
		r.Removed = append(r.Removed, op.relatedID)
	}
}

func failedOperation(op relationOp, err error) FailedOperation {
	appErr := appErrors.FromError(err)
	return FailedOperation{RelatedID: op.relatedID, Op: op.op, Code: appErr.Code, Message: appErr.Message}
}

func sortQualifications(items []models.Qualification) {
	sort.Slice(items, func(i, j int) bool { return pairLess(items[i].RelationPair, items[j].RelationPair) })
}

func pairLess(a, b models.RelationPair) bool {
	if a.LecturerID != b.LecturerID {
		return a.LecturerID < b.LecturerID
	}
	return a.CourseID < b.CourseID
}
