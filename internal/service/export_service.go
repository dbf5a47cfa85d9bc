package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/lecturer-admin-api/internal/models"
	"github.com/noah-isme/lecturer-admin-api/internal/tablestate"
	appErrors "github.com/noah-isme/lecturer-admin-api/pkg/errors"
	"github.com/noah-isme/lecturer-admin-api/pkg/export"
)

type lecturerExporter interface {
	Export(ctx context.Context, state tablestate.State, maxRows int) ([]models.Lecturer, int, error)
}

type courseExporter interface {
	Export(ctx context.Context, state tablestate.State, maxRows int) ([]models.Course, int, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	Enabled bool
	MaxRows int
}

// ExportFile is a rendered listing ready to be served. Total counts every matching
// row; Truncated is set when the file holds fewer rows than that.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
	Rows        int
	Total       int
	Truncated   bool
}

// ExportService renders complete filtered listings as CSV or PDF.
type ExportService struct {
	lecturers lecturerExporter
	courses   courseExporter
	renderers map[export.Format]export.Renderer
	cfg       ExportConfig
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the defaults.
func NewExportService(lecturers lecturerExporter, courses courseExporter, cfg ExportConfig, logger *zap.Logger, csv, pdf export.Renderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxRows <= 0 {
		cfg.MaxRows = 5000
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		lecturers: lecturers,
		courses:   courses,
		renderers: map[export.Format]export.Renderer{export.FormatCSV: csv, export.FormatPDF: pdf},
		cfg:       cfg,
		logger:    logger,
		now:       time.Now,
	}
}

// ExportLecturers renders every lecturer matching state's search, filters and sort.
func (s *ExportService) ExportLecturers(ctx context.Context, state tablestate.State, format string) (*ExportFile, error) {
	f, err := s.checkFormat(format)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.lecturers.Export(ctx, state, s.cfg.MaxRows)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Lecturers",
		Headers: []string{"Title", "First name", "Second name", "Last name", "Email", "Phone", "Type", "Course level preference"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, l := range rows {
		data.Rows = append(data.Rows, []string{
			deref(l.Title), l.FirstName, deref(l.SecondName), l.LastName,
			l.Email, l.Phone, string(l.Type), string(l.CourseLevelPreference),
		})
	}
	return s.render(f, "lecturers", data, total)
}

// ExportCourses renders every course matching state's search, filters and sort.
func (s *ExportService) ExportCourses(ctx context.Context, state tablestate.State, format string) (*ExportFile, error) {
	f, err := s.checkFormat(format)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.courses.Export(ctx, state, s.cfg.MaxRows)
	if err != nil {
		return nil, err
	}
	data := export.Dataset{
		Title:   "Courses",
		Headers: []string{"Name", "Open", "Course level", "Semester"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, c := range rows {
		semester := ""
		if c.Semester != nil {
			semester = strconv.Itoa(*c.Semester)
		}
		data.Rows = append(data.Rows, []string{c.Name, strconv.FormatBool(c.IsOpen), string(c.CourseLevel), semester})
	}
	return s.render(f, "courses", data, total)
}

func (s *ExportService) checkFormat(raw string) (export.Format, error) {
	if !s.cfg.Enabled {
		return "", appErrors.Clone(appErrors.ErrNotFound, "exports are disabled")
	}
	f, err := export.ParseFormat(raw)
	if err != nil {
		return "", validationFailure("invalid export request", FieldErrors{"format": err.Error()})
	}
	return f, nil
}

func (s *ExportService) render(f export.Format, name string, data export.Dataset, total int) (*ExportFile, error) {
	payload, err := s.renderers[f].Render(data)
	if err != nil {
		s.logger.Error("export render failed", zap.String("export", name), zap.String("format", string(f)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	if total < len(data.Rows) {
		total = len(data.Rows)
	}
	truncated := total > len(data.Rows)
	if truncated {
		s.logger.Warn("export truncated",
			zap.String("export", name),
			zap.Int("max_rows", s.cfg.MaxRows),
			zap.Int("total", total),
		)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("%s_%s.%s", name, s.now().UTC().Format("20060102_150405"), f),
		ContentType: f.ContentType(),
		Data:        payload,
		Rows:        len(data.Rows),
		Total:       total,
		Truncated:   truncated,
	}, nil
}

func deref(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return *ptr
}
