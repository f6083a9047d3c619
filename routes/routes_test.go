package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/imartinez/fronton-league/handlers"
	"github.com/imartinez/fronton-league/league"
)

// Handlers get nil services: these tests only reach the routing and
// auth layers, never a handler body.
func newTestRouter() *chi.Mux {
	router := chi.NewRouter()
	SetupRoutes(
		router,
		[]byte("test-secret"),
		handlers.NewAuthHandler(nil, "test-secret"),
		handlers.NewPlayerHandler(nil),
		handlers.NewCategoryHandler(nil, nil),
		handlers.NewTeamHandler(nil),
		handlers.NewScheduleHandler(nil, nil),
		handlers.NewMatchHandler(nil),
		handlers.NewTransferHandler(nil, nil),
		handlers.NewReportHandler(nil, nil),
		handlers.NewDashboardHandler(nil),
		handlers.NewWebSocketHandler(league.NewHub(), nil),
	)
	return router
}

func TestMutationsRequireToken(t *testing.T) {
	router := newTestRouter()

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/players"},
		{http.MethodDelete, "/players/1"},
		{http.MethodPost, "/categories"},
		{http.MethodPut, "/categories/1"},
		{http.MethodPost, "/categories/1/schedule"},
		{http.MethodPost, "/categories/1/import"},
		{http.MethodPost, "/categories/1/report"},
		{http.MethodPost, "/categories/1/summary"},
		{http.MethodPost, "/teams"},
		{http.MethodPost, "/teams/1/players/2"},
		{http.MethodPut, "/matches/abc/result"},
	}

	for _, req := range requests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(req.method, req.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", req.method, req.path)
	}
}

func TestSwaggerUIServed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
