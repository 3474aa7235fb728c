package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/repository"
	"github.com/xuri/excelize/v2"
)

// Column headers recognised in admission sheets, matched case-insensitively.
// Vietnamese spellings are accepted next to the English ones.
var importHeaders = map[string]string{
	"major":               "major",
	"ngành":               "major",
	"tên ngành":           "major",
	"major code":          "major_code",
	"mã ngành":            "major_code",
	"field of study":      "field_of_study",
	"lĩnh vực":            "field_of_study",
	"exam type":           "exam_type",
	"phương thức":         "exam_type",
	"subject combination": "subject_combination",
	"tổ hợp":              "subject_combination",
	"score":               "score",
	"điểm chuẩn":          "score",
	"year":                "year",
	"năm":                 "year",
}

// ImportRow is one admission threshold read from a sheet.
type ImportRow struct {
	Sheet     string
	Line      int
	MajorName string
	MajorCode *string
	Field     *string
	Request   model.AdmissionRequirementRequest
}

// RowError points at a sheet line that could not be imported.
type RowError struct {
	Sheet   string `json:"sheet"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// ImportReport summarises one workbook import.
type ImportReport struct {
	BatchID        string     `json:"batchId"`
	UniversityCode string     `json:"universityCode"`
	Sheets         int        `json:"sheets"`
	Rows           int        `json:"rows"`
	MajorsCreated  int        `json:"majorsCreated"`
	Inserted       int        `json:"inserted"`
	Updated        int        `json:"updated"`
	Errors         []RowError `json:"errors"`
}

// ImportService loads admission thresholds from .xlsx workbooks, one workbook per university.
type ImportService struct {
	universityRepo  repository.UniversityRepository
	majorRepo       repository.MajorRepository
	requirementRepo repository.AdmissionRequirementRepository
	log             zerolog.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(
	universityRepo repository.UniversityRepository,
	majorRepo repository.MajorRepository,
	requirementRepo repository.AdmissionRequirementRepository,
	log zerolog.Logger,
) *ImportService {
	return &ImportService{
		universityRepo:  universityRepo,
		majorRepo:       majorRepo,
		requirementRepo: requirementRepo,
		log:             log.With().Str("component", "import_service").Logger(),
	}
}

// ImportWorkbook reads every sheet of the workbook and upserts its rows under
// the university with the given code. Majors are matched by name and created
// when missing. Bad rows are reported and skipped; infrastructure errors abort.
func (s *ImportService) ImportWorkbook(ctx context.Context, r io.Reader, universityCode string) (*ImportReport, error) {
	uni, err := s.universityRepo.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(universityCode)))
	if err != nil {
		return nil, mapNotFound(err, ErrUniversityNotFound)
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidWorkbook, err)
	}
	defer f.Close()

	rows, rowErrs, sheets := ParseWorkbook(f)
	report := &ImportReport{
		BatchID:        uuid.NewString(),
		UniversityCode: uni.Code,
		Sheets:         sheets,
		Rows:           len(rows),
		Errors:         rowErrs,
	}
	log := s.log.With().Str("batch_id", report.BatchID).Str("university", uni.Code).Logger()

	majors := make(map[string]*model.Major)
	for _, row := range rows {
		// Rejected rows must not leave a major behind.
		req, err := NewAdmissionRequirement(row.Request)
		if err != nil {
			report.Errors = append(report.Errors, RowError{Sheet: row.Sheet, Line: row.Line, Message: err.Error()})
			continue
		}

		major, created, err := s.resolveMajor(ctx, uni.ID, row, majors)
		if err != nil {
			return report, err
		}
		if created {
			report.MajorsCreated++
		}
		req.MajorID = major.ID

		inserted, err := s.requirementRepo.Upsert(ctx, req)
		if err != nil {
			return report, fmt.Errorf("%s line %d: %w", row.Sheet, row.Line, err)
		}
		if inserted {
			report.Inserted++
		} else {
			report.Updated++
		}
	}

	log.Info().
		Int("rows", report.Rows).
		Int("inserted", report.Inserted).
		Int("updated", report.Updated).
		Int("majors_created", report.MajorsCreated).
		Int("errors", len(report.Errors)).
		Msg("Workbook imported")
	return report, nil
}

func (s *ImportService) resolveMajor(ctx context.Context, universityID int, row ImportRow, cache map[string]*model.Major) (*model.Major, bool, error) {
	key := strings.ToLower(row.MajorName)
	if m, ok := cache[key]; ok {
		return m, false, nil
	}

	m, err := s.majorRepo.FindByName(ctx, universityID, row.MajorName)
	if err == nil {
		cache[key] = m
		return m, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	m = &model.Major{UniversityID: universityID, Name: row.MajorName, Code: row.MajorCode, FieldOfStudy: row.Field}
	if err := s.majorRepo.Create(ctx, m); err != nil {
		return nil, false, err
	}
	cache[key] = m
	return m, true, nil
}

// ParseWorkbook reads every sheet whose first row carries at least the major
// and score headers. A cell listing several combinations ("A00, A01") yields
// one row per combination. It returns the rows, per-line problems and the
// number of sheets that were recognised.
func ParseWorkbook(f *excelize.File) ([]ImportRow, []RowError, int) {
	var rows []ImportRow
	errs := []RowError{}
	sheets := 0

	for _, sheet := range f.GetSheetList() {
		cells, err := f.GetRows(sheet)
		if err != nil {
			errs = append(errs, RowError{Sheet: sheet, Message: err.Error()})
			continue
		}
		if len(cells) == 0 {
			continue
		}

		cols := headerIndex(cells[0])
		if _, ok := cols["major"]; !ok {
			continue
		}
		if _, ok := cols["score"]; !ok {
			continue
		}
		sheets++

		for i, line := range cells[1:] {
			lineNo := i + 2
			get := func(name string) string {
				idx, ok := cols[name]
				if !ok || idx >= len(line) {
					return ""
				}
				return strings.TrimSpace(line[idx])
			}
			if strings.Join(line, "") == "" {
				continue
			}

			parsed, err := parseImportLine(get)
			if err != nil {
				errs = append(errs, RowError{Sheet: sheet, Line: lineNo, Message: err.Error()})
				continue
			}
			for _, p := range parsed {
				p.Sheet, p.Line = sheet, lineNo
				rows = append(rows, p)
			}
		}
	}
	return rows, errs, sheets
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int)
	for i, h := range header {
		if name, ok := importHeaders[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := cols[name]; !dup {
				cols[name] = i
			}
		}
	}
	return cols
}

func parseImportLine(get func(string) string) ([]ImportRow, error) {
	name := get("major")
	if name == "" {
		return nil, errors.New("major name is empty")
	}

	// Vietnamese sheets write decimals with a comma.
	score, err := strconv.ParseFloat(strings.ReplaceAll(get("score"), ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid score %q", get("score"))
	}

	year, err := strconv.Atoi(get("year"))
	if err != nil {
		return nil, fmt.Errorf("invalid year %q", get("year"))
	}

	combos := splitCombinations(get("subject_combination"))
	examRaw := get("exam_type")
	if examRaw == "" {
		examRaw = string(model.ExamTypeDGNL)
		if len(combos) > 0 {
			examRaw = string(model.ExamTypeTHPTQG)
		}
	}
	examType, err := model.ParseExamType(examRaw)
	if err != nil {
		return nil, err
	}

	base := ImportRow{
		MajorName: name,
		MajorCode: optional(get("major_code")),
		Field:     optional(get("field_of_study")),
		Request: model.AdmissionRequirementRequest{
			ExamType: string(examType),
			Score:    score,
			Year:     year,
		},
	}
	if len(combos) == 0 {
		return []ImportRow{base}, nil
	}

	out := make([]ImportRow, 0, len(combos))
	for _, c := range combos {
		row := base
		combo := c
		row.Request.SubjectCombination = &combo
		out = append(out, row)
	}
	return out, nil
}

func splitCombinations(raw string) []string {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '/' || r == ' '
	})
	out := parts[:0]
	for _, p := range parts {
		if p = strings.ToUpper(strings.TrimSpace(p)); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
