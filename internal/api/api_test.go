package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/report"
	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"
	"github.com/LenaDzi1/TimeManager-sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type routerDeps struct {
	reports *mockReportService
	events  *mockEventService
	rewards *mockRewardService
	db      mockPinger
}

func newTestRouter(d *routerDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewSystemRoutes(router, d.db)
	v1 := router.Group("/api/v1")
	NewReportRoutes(v1, d.reports)
	NewEventRoutes(v1, d.events)
	NewRewardRoutes(v1, d.rewards)
	return router
}

func newDeps() *routerDeps {
	return &routerDeps{
		reports: &mockReportService{},
		events:  &mockEventService{},
		rewards: &mockRewardService{},
	}
}

func serve(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func strPtr(s string) *string { return &s }

func TestGetQuickTasks(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(m *mockReportService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "dialog",
			mockSetup: func(m *mockReportService) {
				m.On("QuickTasks", mock.Anything).
					Return(report.QuickTasksDialog([]*model.Event{{Title: strPtr("Water plants"), Duration: 5}}), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"title":"Quick tasks","columns":["Title","Duration"],"rows":[["Water plants","5 min"]],"state":"populated"}`,
		},
		{
			name: "database unreachable",
			mockSetup: func(m *mockReportService) {
				m.On("QuickTasks", mock.Anything).
					Return(nil, &repository.ConnectionError{Driver: "sqlserver", Err: errors.New("login failed")})
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   `{"error":"database unavailable"}`,
		},
		{
			name: "statement failure",
			mockSetup: func(m *mockReportService) {
				m.On("QuickTasks", mock.Anything).
					Return(nil, &repository.StatementError{Statement: "SELECT", Err: errors.New("invalid column")})
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.mockSetup(d.reports)

			w := serve(newTestRouter(d), http.MethodGet, "/api/v1/reports/quick-tasks", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			d.reports.AssertExpectations(t)
		})
	}
}

func TestGetRedeemedRewards(t *testing.T) {
	d := newDeps()
	d.reports.On("RedeemedRewards", mock.Anything).Return(report.RedeemedRewardsDialog(nil), nil)

	w := serve(newTestRouter(d), http.MethodGet, "/api/v1/reports/redeemed-rewards", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"title":"Redeemed rewards","columns":["Reward","Redeemed","Points"],"rows":[],"state":"populated"}`, w.Body.String())
}

func TestGetDueCount(t *testing.T) {
	cutoff := time.Date(2024, 3, 1, 10, 15, 30, 0, time.UTC)

	tests := []struct {
		name       string
		query      string
		mockSetup  func(m *mockReportService)
		wantStatus int
		wantBody   string
	}{
		{
			name:  "explicit cutoff",
			query: "?before=2024-03-01T10:15:30Z",
			mockSetup: func(m *mockReportService) {
				m.On("DueCount", mock.Anything, mock.MatchedBy(func(t time.Time) bool { return t.Equal(cutoff) })).
					Return(int64(3), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"count":3}`,
		},
		{
			name:  "defaults to now",
			query: "",
			mockSetup: func(m *mockReportService) {
				m.On("DueCount", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"count":0}`,
		},
		{
			name:       "malformed cutoff",
			query:      "?before=yesterday",
			mockSetup:  func(m *mockReportService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid before, expected RFC3339"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.mockSetup(d.reports)

			w := serve(newTestRouter(d), http.MethodGet, "/api/v1/events/due-count"+tt.query, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			d.reports.AssertExpectations(t)
		})
	}
}

func TestCreateEvent(t *testing.T) {
	due := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		body       string
		mockSetup  func(m *mockEventService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"title":"Dentist","duration":45,"priority":"high","due":"2024-03-01T09:00:00Z"}`,
			mockSetup: func(m *mockEventService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Event) bool {
					return *e.Title == "Dentist" && e.Priority == model.PriorityHigh && e.Due.Equal(due)
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Event).ID = 9
				}).Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"id":9,"title":"Dentist","duration":45,"priority":"high","due":"2024-03-01T09:00:00Z","done":false}`,
		},
		{
			name:       "unknown priority",
			body:       `{"duration":5,"priority":"urgent","due":"2024-03-01T09:00:00Z"}`,
			mockSetup:  func(m *mockEventService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"unknown priority \"urgent\""}`,
		},
		{
			name:       "malformed body",
			body:       `{"duration":`,
			mockSetup:  func(m *mockEventService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid request"}`,
		},
		{
			name: "rejected by validation",
			body: `{"duration":-5,"due":"2024-03-01T09:00:00Z"}`,
			mockSetup: func(m *mockEventService) {
				m.On("Create", mock.Anything, mock.Anything).Return(service.ErrInvalidEvent)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid event"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.mockSetup(d.events)

			w := serve(newTestRouter(d), http.MethodPost, "/api/v1/events", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			d.events.AssertExpectations(t)
		})
	}
}

func TestCompleteEvent(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		mockSetup  func(m *mockEventService)
		wantStatus int
	}{
		{
			name: "done",
			path: "/api/v1/events/5/done",
			mockSetup: func(m *mockEventService) {
				m.On("Complete", mock.Anything, int64(5)).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name: "missing",
			path: "/api/v1/events/6/done",
			mockSetup: func(m *mockEventService) {
				m.On("Complete", mock.Anything, int64(6)).Return(service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "bad id",
			path:       "/api/v1/events/abc/done",
			mockSetup:  func(m *mockEventService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.mockSetup(d.events)

			w := serve(newTestRouter(d), http.MethodPatch, tt.path, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			d.events.AssertExpectations(t)
		})
	}
}

func TestRedeemReward(t *testing.T) {
	at := time.Date(2024, 2, 14, 19, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mockSetup  func(m *mockRewardService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "redeemed",
			mockSetup: func(m *mockRewardService) {
				m.On("Redeem", mock.Anything, int64(3)).
					Return(&model.RedeemedReward{RewardName: "Movie night", RedeemedDate: at, PointsSpent: 100}, nil)
			},
			wantStatus: http.StatusCreated,
			wantBody:   `{"reward":"Movie night","redeemed_date":"2024-02-14T19:30:00Z","points_spent":100}`,
		},
		{
			name: "unknown reward",
			mockSetup: func(m *mockRewardService) {
				m.On("Redeem", mock.Anything, int64(3)).Return(nil, service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.mockSetup(d.rewards)

			w := serve(newTestRouter(d), http.MethodPost, "/api/v1/rewards/3/redeem", "")

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			d.rewards.AssertExpectations(t)
		})
	}
}

func TestHealthz(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "healthy", wantStatus: http.StatusOK},
		{name: "unreachable", err: &repository.ConnectionError{Driver: "sqlserver", Err: errors.New("dial tcp")}, wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			d.db = mockPinger{err: tt.err}

			w := serve(newTestRouter(d), http.MethodGet, "/healthz", "")

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	w := serve(newTestRouter(newDeps()), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}
