package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/timtruong/timtruong-backend/internal/model"
	"github.com/timtruong/timtruong-backend/internal/response"
	"github.com/timtruong/timtruong-backend/internal/service"
	"github.com/timtruong/timtruong-backend/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock Recommender ──

type mockRecommender struct {
	result *model.RecommendationResponse
	err    error
	got    *model.RecommendationQuery
}

func (m *mockRecommender) Recommend(_ context.Context, q model.RecommendationQuery) (*model.RecommendationResponse, error) {
	m.got = &q
	return m.result, m.err
}

type mockRecorder struct{ calls int }

func (m *mockRecorder) Record(context.Context, model.RecommendationQuery, *model.RecommendationResponse) {
	m.calls++
}

// ── Mock UniversityService ──

type mockUniversityService struct {
	listResult   []model.University
	listErr      error
	getResult    *model.University
	getErr       error
	createResult *model.University
	createErr    error
	deleteErr    error
	gotFilter    model.UniversityFilter
}

func (m *mockUniversityService) List(_ context.Context, f model.UniversityFilter) ([]model.University, error) {
	m.gotFilter = f
	return m.listResult, m.listErr
}
func (m *mockUniversityService) ListSimple(context.Context) ([]model.UniversitySimple, error) {
	return []model.UniversitySimple{}, nil
}
func (m *mockUniversityService) Get(context.Context, int) (*model.University, error) {
	return m.getResult, m.getErr
}
func (m *mockUniversityService) Create(context.Context, model.UniversityRequest) (*model.University, error) {
	return m.createResult, m.createErr
}
func (m *mockUniversityService) Update(context.Context, int, model.UniversityRequest) (*model.University, error) {
	return m.createResult, m.createErr
}
func (m *mockUniversityService) Delete(context.Context, int) error {
	return m.deleteErr
}

// ── Mock AdmissionRequirementService ──

type mockRequirementService struct {
	result *model.AdmissionRequirement
	err    error
}

func (m *mockRequirementService) ListByMajor(context.Context, int) ([]model.AdmissionRequirement, error) {
	return []model.AdmissionRequirement{}, m.err
}
func (m *mockRequirementService) Get(context.Context, int) (*model.AdmissionRequirement, error) {
	return m.result, m.err
}
func (m *mockRequirementService) Create(context.Context, int, model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error) {
	return m.result, m.err
}
func (m *mockRequirementService) Update(context.Context, int, model.AdmissionRequirementRequest) (*model.AdmissionRequirement, error) {
	return m.result, m.err
}
func (m *mockRequirementService) Delete(context.Context, int) error {
	return m.err
}

// ── Mock WorkbookImporter ──

type mockImporter struct {
	report  *service.ImportReport
	err     error
	gotCode string
	gotSize int
}

func (m *mockImporter) ImportWorkbook(_ context.Context, r io.Reader, code string) (*service.ImportReport, error) {
	b, _ := io.ReadAll(r)
	m.gotSize = len(b)
	m.gotCode = code
	return m.report, m.err
}

// ═══════════════════════════════════════════════════════════
// Helpers
// ═══════════════════════════════════════════════════════════

type envelope struct {
	Data       json.RawMessage      `json:"data"`
	Error      *response.ErrorBody  `json:"error"`
	Pagination *response.Pagination `json:"pagination"`
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
	return env
}

func recommendationRouter(rec *mockRecommender, recorder *mockRecorder) *gin.Engine {
	r := gin.New()
	h := NewRecommendationHandler(rec, recorder, zerolog.Nop())
	r.POST("/api/v1/recommendations", h.Recommend)
	return r
}

// ═══════════════════════════════════════════════════════════
// Recommendations
// ═══════════════════════════════════════════════════════════

func TestRecommend_ReturnsBareBody(t *testing.T) {
	code := "7480101"
	rec := &mockRecommender{result: &model.RecommendationResponse{Recommendations: []model.UniversityRecommendation{{
		UniversityID: 1, UniversityName: "Đại học Bách Khoa Hà Nội", UniversityCode: "BKA", UniversityType: "Public",
		Majors: []model.MajorRecommendation{{MajorID: 10, MajorName: "Computer Science", MajorCode: &code, AdmissionScore: 28, SubjectCombination: "A00", Year: 2024}},
	}}}}
	recorder := &mockRecorder{}
	r := recommendationRouter(rec, recorder)

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"examType":"THPTQG","score":28.5,"subjectCombination":"A00"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var body map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if _, ok := body["recommendations"]; !ok || len(body) != 1 {
		t.Fatalf("body must be the bare recommendations object, got %s", w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"admissionScore":28`) || !strings.Contains(w.Body.String(), `"universityImageUrl":null`) {
		t.Errorf("unexpected wire shape: %s", w.Body.String())
	}
	if rec.got == nil || rec.got.Score != 28.5 || *rec.got.SubjectCombination != "A00" {
		t.Errorf("engine received %+v", rec.got)
	}
	if recorder.calls != 1 {
		t.Errorf("recorder calls = %d, want 1", recorder.calls)
	}
}

func TestRecommend_EmptyResult(t *testing.T) {
	rec := &mockRecommender{result: &model.RecommendationResponse{Recommendations: []model.UniversityRecommendation{}}}
	r := recommendationRouter(rec, &mockRecorder{})

	w := doJSON(r, http.MethodPost, "/api/v1/recommendations", `{"examType":"DGNL","score":300}`)
	if w.Code != http.StatusOK || w.Body.String() != `{"recommendations":[]}` {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if rec.got.ExamType != model.ExamTypeDGNL || rec.got.SubjectCombination != nil {
		t.Errorf("engine received %+v", rec.got)
	}
}

func TestRecommend_ValidationErrors(t *testing.T) {
	cases := []struct {
		name       string
		body       string
		wantCode   response.ErrCode
		wantFields []string
	}{
		{"missing combination", `{"examType":"THPTQG","score":20,"subjectCombination":null}`, response.ErrValidation, []string{"subjectCombination"}},
		{"thptqg over 30", `{"examType":"THPTQG","score":31,"subjectCombination":"A00"}`, response.ErrValidation, []string{"score"}},
		{"dgnl over 1200", `{"examType":"ĐGNL","score":1250}`, response.ErrValidation, []string{"score"}},
		{"zero score", `{"examType":"ĐGNL","score":0}`, response.ErrValidation, []string{"score"}},
		{"missing score and combination", `{"examType":"THPTQG"}`, response.ErrValidation, []string{"score", "subjectCombination"}},
		{"unknown exam type", `{"examType":"IELTS","score":7}`, response.ErrValidation, []string{"examType"}},
		{"malformed json", `{"examType":`, response.ErrInvalidPayload, []string{"detail"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &mockRecommender{}
			recorder := &mockRecorder{}
			w := doJSON(recommendationRouter(rec, recorder), http.MethodPost, "/api/v1/recommendations", tc.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Error == nil || env.Error.Code != tc.wantCode {
				t.Fatalf("error = %+v", env.Error)
			}
			for _, f := range tc.wantFields {
				if env.Error.Fields[f] == "" {
					t.Errorf("missing field %q in %v", f, env.Error.Fields)
				}
			}
			if rec.got != nil {
				t.Error("engine must not run on invalid input")
			}
			if recorder.calls != 0 {
				t.Error("invalid searches must not be recorded")
			}
		})
	}
}

func TestRecommend_EngineFailureIsGeneric500(t *testing.T) {
	rec := &mockRecommender{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")}
	recorder := &mockRecorder{}
	w := doJSON(recommendationRouter(rec, recorder), http.MethodPost, "/api/v1/recommendations", `{"examType":"ĐGNL","score":900}`)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "10.0.0.5") {
		t.Error("infrastructure details leaked to the client")
	}
	if env := decodeEnvelope(t, w); env.Error == nil || env.Error.Code != response.ErrInternal {
		t.Errorf("error = %+v", env.Error)
	}
	if recorder.calls != 0 {
		t.Error("failed searches must not be recorded")
	}
}

// ═══════════════════════════════════════════════════════════
// Universities
// ═══════════════════════════════════════════════════════════

func universityRouter(svc *mockUniversityService) *gin.Engine {
	r := gin.New()
	h := NewUniversityHandler(svc, zerolog.Nop())
	r.GET("/universities", h.ListUniversities)
	r.GET("/universities/:id", h.GetUniversity)
	r.POST("/universities", h.CreateUniversity)
	r.DELETE("/universities/:id", h.DeleteUniversity)
	return r
}

func TestListUniversities_FiltersAndPagination(t *testing.T) {
	unis := make([]model.University, 5)
	for i := range unis {
		unis[i] = model.University{ID: i + 1, Name: "U" + string(rune('A'+i)), Code: "AA" + string(rune('A'+i))}
	}
	svc := &mockUniversityService{listResult: unis}
	r := universityRouter(svc)

	w := doJSON(r, http.MethodGet, "/universities?search=bach&type=Public&city=H%C3%A0%20N%E1%BB%99i&page=2&per_page=2", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if svc.gotFilter.Search != "bach" || svc.gotFilter.Type != model.UniversityPublic || svc.gotFilter.City != "Hà Nội" {
		t.Errorf("filter = %+v", svc.gotFilter)
	}

	env := decodeEnvelope(t, w)
	var data struct {
		Universities []model.University `json:"universities"`
	}
	_ = json.Unmarshal(env.Data, &data)
	if len(data.Universities) != 2 || data.Universities[0].ID != 3 {
		t.Errorf("page 2 = %+v", data.Universities)
	}
	if env.Pagination == nil || env.Pagination.TotalItems != 5 || env.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
}

func TestListUniversities_PageBounds(t *testing.T) {
	unis := make([]model.University, 3)
	for i := range unis {
		unis[i] = model.University{ID: i + 1}
	}
	r := universityRouter(&mockUniversityService{listResult: unis})

	cases := []struct {
		name    string
		query   string
		wantLen int
		wantID  int
	}{
		{"first page", "page=1&per_page=2", 2, 1},
		{"last partial page", "page=2&per_page=2", 1, 3},
		{"past the end", "page=3&per_page=2", 0, 0},
		{"huge page number", "page=100000000000000000&per_page=100", 0, 0},
		{"max int page", "page=9223372036854775807&per_page=100", 0, 0},
		{"invalid page falls back to 1", "page=-4&per_page=100", 3, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/universities?"+tc.query, "")
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			var data struct {
				Universities []model.University `json:"universities"`
			}
			if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
				t.Fatalf("decode data: %v", err)
			}
			if len(data.Universities) != tc.wantLen {
				t.Fatalf("len = %d, want %d", len(data.Universities), tc.wantLen)
			}
			if tc.wantLen > 0 && data.Universities[0].ID != tc.wantID {
				t.Errorf("first id = %d, want %d", data.Universities[0].ID, tc.wantID)
			}
		})
	}
}

func TestUniversity_ErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		svc        *mockUniversityService
		method     string
		path       string
		body       string
		wantStatus int
		wantCode   response.ErrCode
	}{
		{"invalid id", &mockUniversityService{}, http.MethodGet, "/universities/abc", "", http.StatusBadRequest, response.ErrInvalidID},
		{"not found", &mockUniversityService{getErr: service.ErrUniversityNotFound}, http.MethodGet, "/universities/9", "", http.StatusNotFound, response.ErrUniversityNotFound},
		{"bad code", &mockUniversityService{}, http.MethodPost, "/universities", `{"name":"Đại học Huế","code":"hue1","type":"Public"}`, http.StatusBadRequest, response.ErrValidation},
		{"duplicate code", &mockUniversityService{createErr: &service.ConflictError{Field: "code", Message: "University with code 'DHH' already exists"}},
			http.MethodPost, "/universities", `{"name":"Đại học Huế","code":"DHH","type":"Public"}`, http.StatusConflict, response.ErrConflict},
		{"unique index race", &mockUniversityService{createErr: &pgconn.PgError{Code: "23505"}},
			http.MethodPost, "/universities", `{"name":"Đại học Huế","code":"DHH","type":"Public"}`, http.StatusConflict, response.ErrConflict},
		{"still referenced", &mockUniversityService{deleteErr: &pgconn.PgError{Code: "23503"}}, http.MethodDelete, "/universities/3", "", http.StatusConflict, response.ErrDependencyExists},
		{"infrastructure", &mockUniversityService{listErr: errors.New("boom")}, http.MethodGet, "/universities", "", http.StatusInternalServerError, response.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(universityRouter(tc.svc), tc.method, tc.path, tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tc.wantStatus, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Error == nil || env.Error.Code != tc.wantCode {
				t.Fatalf("error = %+v, want %s", env.Error, tc.wantCode)
			}
		})
	}
}

func TestCreateUniversity_ConflictCarriesField(t *testing.T) {
	svc := &mockUniversityService{createErr: &service.ConflictError{Field: "name", Message: "University with name 'X' already exists"}}
	w := doJSON(universityRouter(svc), http.MethodPost, "/universities", `{"name":"Đại học X","code":"XXX","type":"Private"}`)

	env := decodeEnvelope(t, w)
	if env.Error == nil || env.Error.Fields["name"] == "" {
		t.Fatalf("error = %+v", env.Error)
	}
}

func TestDeleteUniversity_NoContent(t *testing.T) {
	w := doJSON(universityRouter(&mockUniversityService{}), http.MethodDelete, "/universities/3", "")
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("status = %d, body = %q", w.Code, w.Body.String())
	}
}

// ═══════════════════════════════════════════════════════════
// Admission requirements
// ═══════════════════════════════════════════════════════════

func TestCreateRequirement(t *testing.T) {
	combo := model.SubjectCombination("A00")
	ok := &mockRequirementService{result: &model.AdmissionRequirement{ID: 7, MajorID: 3, ExamType: model.ExamTypeTHPTQG, Score: 27, SubjectCombination: &combo, Year: 2024}}

	newRouter := func(svc *mockRequirementService) *gin.Engine {
		r := gin.New()
		h := NewAdmissionRequirementHandler(svc, zerolog.Nop())
		r.POST("/majors/:id/requirements", h.CreateRequirement)
		return r
	}

	w := doJSON(newRouter(ok), http.MethodPost, "/majors/3/requirements", `{"examType":"THPTQG","score":27,"subjectCombination":"A00","year":2024}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "enumVersion") || strings.Contains(w.Body.String(), "EnumVersion") {
		t.Error("enum version is a storage detail and must not be serialised")
	}

	mismatch := &mockRequirementService{err: service.ErrCombinationMismatch}
	w = doJSON(newRouter(mismatch), http.MethodPost, "/majors/3/requirements", `{"examType":"ĐGNL","score":900,"subjectCombination":"A00","year":2024}`)
	if env := decodeEnvelope(t, w); w.Code != http.StatusBadRequest || env.Error.Code != response.ErrCombinationMismatch {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}

	w = doJSON(newRouter(ok), http.MethodPost, "/majors/3/requirements", `{"examType":"THPTQG","score":27,"subjectCombination":"Q99","year":2024}`)
	if env := decodeEnvelope(t, w); w.Code != http.StatusBadRequest || env.Error.Fields["subjectCombination"] == "" {
		t.Fatalf("unknown combination: status = %d, error = %+v", w.Code, env.Error)
	}

	badYear := &mockRequirementService{err: fmt.Errorf("year 20245 outside [2000, 2100]: %w", service.ErrYearOutOfRange)}
	w = doJSON(newRouter(badYear), http.MethodPost, "/majors/3/requirements", `{"examType":"ĐGNL","score":900,"year":2024}`)
	if env := decodeEnvelope(t, w); w.Code != http.StatusBadRequest || env.Error.Fields["year"] == "" {
		t.Fatalf("year out of range: status = %d, error = %+v", w.Code, env.Error)
	}

	missingMajor := &mockRequirementService{err: service.ErrMajorNotFound}
	w = doJSON(newRouter(missingMajor), http.MethodPost, "/majors/3/requirements", `{"examType":"ĐGNL","score":900,"year":2024}`)
	if env := decodeEnvelope(t, w); w.Code != http.StatusNotFound || env.Error.Code != response.ErrMajorNotFound {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// Reference data
// ═══════════════════════════════════════════════════════════

func TestReferenceEndpoints(t *testing.T) {
	r := gin.New()
	h := NewReferenceHandler()
	r.GET("/exam-types", h.ListExamTypes)
	r.GET("/subject-combinations", h.ListSubjectCombinations)

	w := doJSON(r, http.MethodGet, "/exam-types", "")
	var examTypes struct {
		ExamTypes []examTypeInfo `json:"examTypes"`
	}
	_ = json.Unmarshal(decodeEnvelope(t, w).Data, &examTypes)
	if len(examTypes.ExamTypes) != 2 || examTypes.ExamTypes[1].Code != model.ExamTypeDGNL || examTypes.ExamTypes[1].MaxScore != 1200 {
		t.Errorf("exam types = %+v", examTypes.ExamTypes)
	}
	if !examTypes.ExamTypes[0].RequiresSubjectCombination || examTypes.ExamTypes[1].RequiresSubjectCombination {
		t.Error("only THPTQG requires a subject combination")
	}

	w = doJSON(r, http.MethodGet, "/subject-combinations", "")
	var combos struct {
		SubjectCombinations []model.SubjectCombinationInfo `json:"subjectCombinations"`
	}
	_ = json.Unmarshal(decodeEnvelope(t, w).Data, &combos)
	if len(combos.SubjectCombinations) == 0 || combos.SubjectCombinations[0].Code != "A00" {
		t.Errorf("combinations = %+v", combos.SubjectCombinations)
	}
}

// ═══════════════════════════════════════════════════════════
// Import
// ═══════════════════════════════════════════════════════════

func multipartRequest(t *testing.T, filename string, content []byte, code string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		fw, err := mw.CreateFormFile("file", filename)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(content)
	}
	if code != "" {
		_ = mw.WriteField("universityCode", code)
	}
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestImportRequirements(t *testing.T) {
	importer := &mockImporter{report: &service.ImportReport{BatchID: "b1", UniversityCode: "BKA", Inserted: 4}}
	r := gin.New()
	h := NewImportHandler(importer, zerolog.Nop())
	r.POST("/import", h.ImportRequirements)

	cases := []struct {
		name       string
		req        *http.Request
		wantStatus int
		wantCode   response.ErrCode
	}{
		{"no file", multipartRequest(t, "", nil, "BKA"), http.StatusBadRequest, response.ErrFileRequired},
		{"wrong extension", multipartRequest(t, "scores.csv", []byte("a,b"), "BKA"), http.StatusBadRequest, response.ErrUnsupportedFile},
		{"no university", multipartRequest(t, "scores.xlsx", []byte("PK"), ""), http.StatusBadRequest, response.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, tc.req)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			if env := decodeEnvelope(t, w); env.Error == nil || env.Error.Code != tc.wantCode {
				t.Fatalf("error = %+v", env.Error)
			}
		})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "Scores.XLSX", []byte("PK-workbook"), "BKA"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if importer.gotCode != "BKA" || importer.gotSize != len("PK-workbook") {
		t.Errorf("importer got code %q size %d", importer.gotCode, importer.gotSize)
	}

	importer.err = service.ErrInvalidWorkbook
	w = httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "broken.xlsx", []byte("not a zip"), "BKA"))
	if env := decodeEnvelope(t, w); w.Code != http.StatusBadRequest || env.Error.Code != response.ErrUnsupportedFile {
		t.Fatalf("status = %d, error = %+v", w.Code, env.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// Dashboard
// ═══════════════════════════════════════════════════════════

type mockDashboard struct {
	data *service.DashboardData
	err  error
}

func (m *mockDashboard) GetDashboardData(context.Context) (*service.DashboardData, error) {
	return m.data, m.err
}

func TestGetDashboardData(t *testing.T) {
	provider := &mockDashboard{data: &service.DashboardData{
		RequirementsByExam: map[model.ExamType]int{model.ExamTypeTHPTQG: 12, model.ExamTypeDGNL: 3},
		LegacyRequirements: 2,
		RecentSearches:     []model.SearchStat{},
		LiveSearches:       []model.SearchStat{},
	}}
	provider.data.Totals.Universities = 4

	r := gin.New()
	r.GET("/api/v1/admin/dashboard", NewDashboardHandler(provider, zerolog.Nop()).GetDashboardData)

	w := doJSON(r, http.MethodGet, "/api/v1/admin/dashboard", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var data struct {
		Totals struct {
			Universities int `json:"universities"`
		} `json:"totals"`
		RequirementsByExam map[string]int `json:"requirementsByExamType"`
		LegacyRequirements int            `json:"legacyRequirements"`
	}
	if err := json.Unmarshal(decodeEnvelope(t, w).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.Totals.Universities != 4 || data.RequirementsByExam["ĐGNL"] != 3 || data.LegacyRequirements != 2 {
		t.Errorf("data = %+v", data)
	}

	provider.err = errors.New("connection reset")
	w = doJSON(r, http.MethodGet, "/api/v1/admin/dashboard", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	if env := decodeEnvelope(t, w); env.Error == nil || env.Error.Code != response.ErrInternal {
		t.Errorf("error = %+v", env.Error)
	}
}
