package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"segmentation-service/internal/segmentation"

	mockservice "segmentation-service/internal/testdata/mockservice"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type HandlerTestSuite struct {
	suite.Suite
	router  http.Handler
	service *mockservice.Service
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.service = &mockservice.Service{}
	s.router = newRouter(NewHandler(s.service), "http://localhost:8080/swagger/doc.json")
}

func (s *HandlerTestSuite) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerTestSuite) decodeError(rec *httptest.ResponseRecorder) ErrorResponse {
	var e ErrorResponse
	require.NoError(s.T(), json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func (s *HandlerTestSuite) TestPreview_Success() {
	out := &segmentation.Outcome{
		Message: "Strategy computed: 1 of 1 criteria applied",
		Result: segmentation.StrategyResult{
			Coverage:        0.5,
			TotalClients:    2,
			SelectedClients: []string{"a"},
			SegmentGroups: []segmentation.SegmentGroup{
				{Criterion: "country", Value: "CR", ClientIDs: []string{"a"}, Reason: "clients matching country = CR"},
			},
		},
	}
	s.service.On("Compute", mock.Anything, mock.MatchedBy(func(b segmentation.RequestBody) bool {
		return len(b.Filters) == 1 && b.Filters[0].Field == "country" && *b.MinGroupSize == 1
	})).Return(out, nil)

	rec := s.do(http.MethodPost, "/v1/strategies/preview",
		`{"filters":[{"field":"country","match":"CR"}],"minGroupSize":1}`)

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.JSONEq(`{
		"message": "Strategy computed: 1 of 1 criteria applied",
		"strategy": {
			"coverage": 0.5,
			"totalClients": 2,
			"selectedClients": ["a"],
			"segmentGroups": [
				{"criterion": "country", "value": "CR", "clientIds": ["a"], "reason": "clients matching country = CR"}
			]
		}
	}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestPreview_ValidationErrors() {
	tests := []struct {
		err  error
		code string
	}{
		{&segmentation.FilterError{Index: 0, Field: "unknownField", Err: segmentation.ErrInvalidFilterField}, "InvalidFilterField"},
		{segmentation.ErrInvalidFilterShape, "InvalidFilterShape"},
		{fmt.Errorf("filters[2] (birthDate): %w", segmentation.ErrInvalidRange), "InvalidRange"},
	}
	for _, tt := range tests {
		s.Run(tt.code, func() {
			s.SetupTest()
			s.service.On("Compute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := s.do(http.MethodPost, "/v1/strategies/preview", `{"filters":[]}`)

			s.Equal(http.StatusBadRequest, rec.Code)
			s.Equal(tt.code, s.decodeError(rec).Code)
		})
	}
}

func (s *HandlerTestSuite) TestPreview_DataUnavailable() {
	err := fmt.Errorf("%w: %w", segmentation.ErrDataUnavailable, errors.New("dial tcp: refused"))
	s.service.On("Compute", mock.Anything, mock.Anything).Return(nil, err)

	rec := s.do(http.MethodPost, "/v1/strategies/preview", `{}`)

	s.Equal(http.StatusServiceUnavailable, rec.Code)
	s.Equal("DataUnavailable", s.decodeError(rec).Code)
}

func (s *HandlerTestSuite) TestPreview_InvalidJSON() {
	rec := s.do(http.MethodPost, "/v1/strategies/preview", `{`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("InvalidRequest", s.decodeError(rec).Code)
	s.service.AssertNotCalled(s.T(), "Compute", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestPreview_NestedMatchValue() {
	rec := s.do(http.MethodPost, "/v1/strategies/preview",
		`{"filters":[{"field":"tags","match":[["vip"]]}]}`)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.service.AssertNotCalled(s.T(), "Compute", mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestCreate_Created() {
	saved := &segmentation.SavedStrategy{ID: "9b2e", Message: "ok"}
	s.service.On("CreateStrategy", mock.Anything, mock.Anything).Return(saved, nil)

	rec := s.do(http.MethodPost, "/v1/strategies", `{"filters":[]}`)

	s.Equal(http.StatusCreated, rec.Code)
	var got segmentation.SavedStrategy
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &got))
	s.Equal("9b2e", got.ID)
}

func (s *HandlerTestSuite) TestCreate_InternalError() {
	s.service.On("CreateStrategy", mock.Anything, mock.Anything).Return(nil, errors.New("insert failed"))

	rec := s.do(http.MethodPost, "/v1/strategies", `{}`)

	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *HandlerTestSuite) TestValidate() {
	size, used := 3, 5
	normalized := segmentation.RequestBody{Filters: []segmentation.FilterSpec{}, MinGroupSize: &size, MaxCriteriaUsed: &used}
	s.service.On("Validate", mock.Anything).Return(normalized, nil)

	rec := s.do(http.MethodPost, "/v1/filters/validate", `{}`)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"filters":[],"minGroupSize":3,"maxCriteriaUsed":5}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestGetStrategy() {
	s.service.On("GetStrategy", mock.Anything, "x1").Return(&segmentation.SavedStrategy{ID: "x1"}, nil)
	s.service.On("GetStrategy", mock.Anything, "x2").Return(nil, nil)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1/strategies/detail?id=x1", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodGet, "/v1/strategies/detail?id=x2", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/v1/strategies/detail", "").Code)
}

func (s *HandlerTestSuite) TestListStrategies_EmptyIsArray() {
	s.service.On("ListStrategies", mock.Anything).Return(nil, nil)

	rec := s.do(http.MethodGet, "/v1/strategies", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`[]`, rec.Body.String())
}

func (s *HandlerTestSuite) TestRecentStrategies() {
	s.service.On("RecentStrategies", mock.Anything, int64(5)).Return([]*segmentation.SavedStrategy{{ID: "r1"}}, nil)

	s.Equal(http.StatusOK, s.do(http.MethodGet, "/v1/strategies/recent?limit=5", "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodGet, "/v1/strategies/recent?limit=-1", "").Code)
}

func (s *HandlerTestSuite) TestDeleteStrategy() {
	s.service.On("DeleteStrategy", mock.Anything, "d1").Return(nil)
	s.service.On("DeleteStrategy", mock.Anything, "d2").Return(segmentation.ErrStrategyNotFound)

	s.Equal(http.StatusNoContent, s.do(http.MethodDelete, "/v1/strategies?id=d1", "").Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, "/v1/strategies?id=d2", "").Code)
}

func (s *HandlerTestSuite) TestSyncData() {
	s.service.On("SyncStrategies", mock.Anything).Return(4, nil)

	rec := s.do(http.MethodPost, "/debug/sync", "")

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"synced":4}`, rec.Body.String())
}

func (s *HandlerTestSuite) TestHealth() {
	rec := s.do(http.MethodGet, "/health", "")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("ok", rec.Body.String())
}
