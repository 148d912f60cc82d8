package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"payequity/internal/compliance"
	"payequity/internal/compliance/handler/mocks"
	dErrors "payequity/pkg/domain-errors"
	"payequity/pkg/requestcontext"
	"payequity/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service
type ComplianceHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  chi.Router
}

func TestComplianceHandlerSuite(t *testing.T) {
	suite.Run(t, new(ComplianceHandlerSuite))
}

func (s *ComplianceHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.router = chi.NewRouter()
	New(s.service, logger).Register(s.router)
}

func (s *ComplianceHandlerSuite) post(body string) *httptest.ResponseRecorder {
	req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/v1/compliance/analyze", body)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	req = req.WithContext(requestcontext.WithTime(req.Context(), fixed))
	return testutil.DoRequest(s.router, req)
}

func (s *ComplianceHandlerSuite) TestAnalyze() {
	s.Run("returns the verdict", func() {
		jobs := []compliance.JobClass{
			{Title: "Engineer", Points: 300, Males: 5, MaxSalary: 6000},
			{Title: "Clerk", Points: 100, Females: 5, MaxSalary: 3000},
		}
		verdict := compliance.Analyze(jobs)
		s.service.EXPECT().Analyze(gomock.Any(), jobs).Return(&verdict, nil)

		w := s.post(testutil.MustMarshal(s.T(), AnalyzeRequest{Jurisdiction: " Example County ", Jobs: jobs}))

		s.Equal(http.StatusOK, w.Code)
		resp := testutil.UnmarshalResponse[struct {
			Jurisdiction string         `json:"jurisdiction"`
			JobClasses   int            `json:"job_classes"`
			Outcome      string         `json:"outcome"`
			Verdict      map[string]any `json:"verdict"`
			AnalyzedAt   time.Time      `json:"analyzed_at"`
		}](s.T(), w)
		s.Equal("Example County", resp.Jurisdiction)
		s.Equal(2, resp.JobClasses)
		s.Equal("manual_review", resp.Outcome)
		s.Equal("manual_review", resp.Verdict["state"])
		s.Equal(true, resp.Verdict["requires_manual_review"])
		s.True(resp.AnalyzedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	})

	s.Run("empty job list is analyzed", func() {
		verdict := compliance.Analyze(nil)
		s.service.EXPECT().Analyze(gomock.Any(), []compliance.JobClass{}).Return(&verdict, nil)

		w := s.post(`{"jobs": []}`)

		s.Equal(http.StatusOK, w.Code)
		var resp map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		v := resp["verdict"].(map[string]any)
		s.Equal("empty", v["state"])
		s.Nil(v["statistical_test"])
	})

	s.Run("missing jobs", func() {
		w := s.post(`{"jurisdiction": "Example County"}`)
		s.assertError(w, http.StatusBadRequest, "validation_error")
	})

	s.Run("malformed body", func() {
		w := s.post(`{"jobs": [`)
		s.assertError(w, http.StatusBadRequest, "bad_request")
	})

	s.Run("empty body", func() {
		w := s.post("")
		s.assertError(w, http.StatusBadRequest, "bad_request")
	})

	s.Run("service validation error", func() {
		s.service.EXPECT().Analyze(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeValidation, "row 1: points must not be negative"))

		w := s.post(`{"jobs": [{"points": -5, "males": 1, "females": 0, "max_salary": 100}]}`)

		body := s.assertError(w, http.StatusBadRequest, "validation_error")
		s.Equal("row 1: points must not be negative", body["error_description"])
	})
}

func (s *ComplianceHandlerSuite) TestRequestSizeLimit() {
	jobs := make([]compliance.JobClass, MaxJobClasses+1)
	var buf bytes.Buffer
	s.Require().NoError(json.NewEncoder(&buf).Encode(AnalyzeRequest{Jobs: jobs}))

	w := s.post(buf.String())

	s.assertError(w, http.StatusBadRequest, "validation_error")
}

func (s *ComplianceHandlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) map[string]string {
	return testutil.AssertStatusAndError(s.T(), w, status, code)
}
