package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"payequity/internal/compliance"
	"payequity/internal/report/handler/mocks"
	"payequity/internal/report/models"
	dErrors "payequity/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type ReportHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestReportHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerSuite))
}

func (s *ReportHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *ReportHandlerSuite) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func sampleReport() *models.Report {
	jobs := []compliance.JobClass{
		{Title: "Engineer", Points: 300, Males: 5, MaxSalary: 6000},
		{Title: "Clerk", Points: 100, Females: 5, MaxSalary: 3000},
	}
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	return &models.Report{
		ID:           uuid.MustParse("6f1c2a7e-8a43-4d8e-9f0e-3b2d5c1a9e77"),
		Jurisdiction: "Example County",
		ReportYear:   2025,
		Jobs:         jobs,
		Verdict:      compliance.Analyze(jobs),
		Fingerprint:  "abc",
		SubmittedAt:  at,
		AnalyzedAt:   at,
	}
}

func (s *ReportHandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *ReportHandlerSuite) TestSubmit() {
	s.Run("created", func() {
		report := sampleReport()
		s.service.EXPECT().Submit(gomock.Any(), models.SubmitRequest{
			Jurisdiction: "Example County",
			ReportYear:   2025,
			Jobs:         report.Jobs,
		}).Return(report, nil)

		w := s.do(http.MethodPost, "/v1/reports", `{
			"jurisdiction": " Example County ",
			"report_year": 2025,
			"jobs": [
				{"title": "Engineer", "points": 300, "males": 5, "females": 0, "min_salary": 0, "max_salary": 6000},
				{"title": "Clerk", "points": 100, "males": 0, "females": 5, "min_salary": 0, "max_salary": 3000}
			]
		}`)

		s.Equal(http.StatusCreated, w.Code)
		s.Equal("/v1/reports/6f1c2a7e-8a43-4d8e-9f0e-3b2d5c1a9e77", w.Header().Get("Location"))
		body := s.decode(w)
		s.Equal("6f1c2a7e-8a43-4d8e-9f0e-3b2d5c1a9e77", body["id"])
		s.Equal("manual_review", body["outcome"])
		s.Len(body["jobs"], 2)
	})

	s.Run("missing fields", func() {
		for _, payload := range []string{
			`{"report_year": 2025, "jobs": []}`,
			`{"jurisdiction": "Example County", "jobs": []}`,
			`{"jurisdiction": "Example County", "report_year": 2025}`,
		} {
			w := s.do(http.MethodPost, "/v1/reports", payload)
			s.Equal(http.StatusBadRequest, w.Code, payload)
			s.Equal("validation_error", s.decode(w)["error"], payload)
		}
	})

	s.Run("service validation error", func() {
		s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "report_year must be between 1900 and 2200"))

		w := s.do(http.MethodPost, "/v1/reports", `{"jurisdiction": "Example County", "report_year": 1800, "jobs": []}`)

		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("report_year must be between 1900 and 2200", s.decode(w)["error_description"])
	})

	s.Run("internal error hides details", func() {
		s.service.EXPECT().Submit(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInternal, "failed to save report"))

		w := s.do(http.MethodPost, "/v1/reports", `{"jurisdiction": "Example County", "report_year": 2025, "jobs": []}`)

		s.Equal(http.StatusInternalServerError, w.Code)
		body := s.decode(w)
		s.Equal("internal_error", body["error"])
		s.NotContains(body, "error_description")
	})
}

func (s *ReportHandlerSuite) TestGet() {
	s.Run("found", func() {
		report := sampleReport()
		s.service.EXPECT().Get(gomock.Any(), report.ID).Return(report, nil)

		w := s.do(http.MethodGet, "/v1/reports/"+report.ID.String(), "")

		s.Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.Equal("Example County", body["jurisdiction"])
		verdict := body["verdict"].(map[string]any)
		s.Equal("manual_review", verdict["state"])
	})

	s.Run("not found", func() {
		s.service.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, dErrors.New(dErrors.CodeNotFound, "report not found"))

		w := s.do(http.MethodGet, "/v1/reports/"+uuid.NewString(), "")

		s.Equal(http.StatusNotFound, w.Code)
		s.Equal("not_found", s.decode(w)["error"])
	})

	s.Run("malformed id", func() {
		w := s.do(http.MethodGet, "/v1/reports/not-a-uuid", "")

		s.Equal(http.StatusBadRequest, w.Code)
		s.Equal("bad_request", s.decode(w)["error"])
	})
}

func (s *ReportHandlerSuite) TestList() {
	s.Run("summaries", func() {
		report := sampleReport()
		s.service.EXPECT().List(gomock.Any(), "Example County").Return([]*models.Report{report}, nil)

		w := s.do(http.MethodGet, "/v1/reports?jurisdiction=Example+County", "")

		s.Equal(http.StatusOK, w.Code)
		var resp ListResponse
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		s.Equal("Example County", resp.Jurisdiction)
		s.Require().Len(resp.Reports, 1)
		s.Equal(report.ID, resp.Reports[0].ID)
		s.Equal(2, resp.Reports[0].JobClasses)
		s.True(resp.Reports[0].RequiresManualReview)
	})

	s.Run("empty listing is an empty array", func() {
		s.service.EXPECT().List(gomock.Any(), "Nowhere").Return([]*models.Report{}, nil)

		w := s.do(http.MethodGet, "/v1/reports?jurisdiction=Nowhere", "")

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), `"reports":[]`)
	})

	s.Run("missing jurisdiction", func() {
		s.service.EXPECT().List(gomock.Any(), "").Return(nil, dErrors.New(dErrors.CodeValidation, "jurisdiction is required"))

		w := s.do(http.MethodGet, "/v1/reports", "")

		s.Equal(http.StatusBadRequest, w.Code)
	})
}
