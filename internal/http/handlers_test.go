package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mauv0809/rally-stats/internal/analytics"
	"github.com/mauv0809/rally-stats/internal/club"
	"github.com/mauv0809/rally-stats/internal/config"
	"github.com/mauv0809/rally-stats/internal/database"
	"github.com/mauv0809/rally-stats/internal/metrics"
	"github.com/mauv0809/rally-stats/internal/notifier"
	"github.com/mauv0809/rally-stats/internal/page"
	"github.com/mauv0809/rally-stats/internal/pubsub"
	"github.com/mauv0809/rally-stats/internal/query"
	"github.com/mauv0809/rally-stats/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

// setupTestServer initializes a new server with an in-memory database and a mock notifier.
func setupTestServer(t *testing.T) (*Server, *notifier.Mock) {
	t.Helper()

	db, teardown, err := database.InitDB(config.DatabaseConfig{Driver: "sqlite3", Name: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(teardown)

	reg := prometheus.NewRegistry()
	svc := service.New(service.Deps{
		Store:      club.New(db, query.Question),
		Classifier: analytics.NewClassifier(func() time.Time { return today }),
		Metrics:    metrics.NewService(reg),
	})
	n := notifier.NewMock()
	return NewServer(svc, n, metrics.NewMetricsHandler(reg), config.Config{}), n
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

func createPlayer(t *testing.T, s *Server, body string) service.PlayerView {
	t.Helper()
	rr := do(t, s, http.MethodPost, "/players", body)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[service.PlayerView](t, rr)
}

func TestHealthCheckHandler(t *testing.T) {
	s, _ := setupTestServer(t)
	rr := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestPlayerLifecycle(t *testing.T) {
	s, _ := setupTestServer(t)

	p := createPlayer(t, s, `{"name":"Ana","dateOfBirth":"2015-06-01","gender":"female","preferredHand":"left"}`)
	assert.Equal(t, 9, p.Age)
	assert.Equal(t, analytics.AgeGroupU11, p.AgeGroup)

	rr := do(t, s, http.MethodGet, "/players/"+p.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[service.PlayerDetail](t, rr)
	assert.Equal(t, "Ana", detail.Name)
	assert.NotNil(t, detail.Results)

	rr = do(t, s, http.MethodPatch, "/players/"+p.ID, `{"name":"Ana Maria"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Ana Maria", decode[service.PlayerView](t, rr).Name)

	rr = do(t, s, http.MethodDelete, "/players/"+p.ID, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, s, http.MethodGet, "/players/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	body := decode[map[string]any](t, rr)
	assert.Equal(t, "not_found", body["error"])
	assert.Contains(t, body["message"], "player")
}

func TestListPlayersEnvelope(t *testing.T) {
	s, _ := setupTestServer(t)
	createPlayer(t, s, `{"name":"Ana","dateOfBirth":"2015-06-01","gender":"female","preferredHand":"left"}`)
	createPlayer(t, s, `{"name":"Ben","dateOfBirth":"2016-01-01","gender":"male","preferredHand":"right"}`)
	createPlayer(t, s, `{"name":"Cy","dateOfBirth":"1990-01-01","gender":"male","preferredHand":"both"}`)

	rr := do(t, s, http.MethodGet, "/players?ageGroup=U-11&limit=1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	env := decode[page.Envelope[service.PlayerView]](t, rr)
	assert.Equal(t, 2, env.TotalItems)
	assert.Equal(t, 2, env.TotalPages)
	assert.Equal(t, 1, env.Limit)
	require.Len(t, env.Items, 1)

	rr = do(t, s, http.MethodGet, "/players?page=5", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"items":[]`)
}

func TestValidationErrorShape(t *testing.T) {
	s, _ := setupTestServer(t)

	rr := do(t, s, http.MethodGet, "/players?minAge=ten&page=x", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decode[errorResponse](t, rr)
	assert.Equal(t, "validation_failed", body.Error)
	assert.ElementsMatch(t, []service.FieldError{
		{Field: "minAge", Message: "must be an integer"},
		{Field: "page", Message: "must be an integer"},
	}, body.Fields)

	rr = do(t, s, http.MethodPost, "/players", `{"name":"Ana","dateOfBirth":"2015-06-01","gender":"x","preferredHand":"left"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	body = decode[errorResponse](t, rr)
	require.Len(t, body.Fields, 1)
	assert.Equal(t, "gender", body.Fields[0].Field)

	rr = do(t, s, http.MethodPost, "/players", `{"name":`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "body", decode[errorResponse](t, rr).Fields[0].Field)

	rr = do(t, s, http.MethodPost, "/players", `{"name":"Ana","nickname":"A"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, s, http.MethodPost, "/results", `{"playerId":"p","testId":"t","leftHand":"ten"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "leftHand", decode[errorResponse](t, rr).Fields[0].Field)
}

func TestResultFlow(t *testing.T) {
	s, _ := setupTestServer(t)
	p := createPlayer(t, s, `{"name":"Ana","dateOfBirth":"2015-06-01","gender":"female","preferredHand":"left"}`)

	rr := do(t, s, http.MethodPost, "/tests", `{"name":"Spring","testType":"sprint","dateConducted":"2024-05-20"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	test := decode[service.TestView](t, rr)
	assert.Equal(t, 30, test.PlayingTime)

	rr = do(t, s, http.MethodPost, "/results", `{"playerId":"`+p.ID+`","testId":"ghost","leftHand":1,"rightHand":1,"forehand":1,"backhand":1}`)
	require.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, s, http.MethodPost, "/results", `{"playerId":"`+p.ID+`","testId":"`+test.ID+`","leftHand":10,"rightHand":8,"forehand":7,"backhand":5}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	res := decode[map[string]any](t, rr)
	assert.EqualValues(t, 30, res["totalScore"])
	assert.EqualValues(t, 7.5, res["averageScore"])
	assert.Equal(t, "good", res["performanceCategory"])
	assert.Contains(t, res, "scoreDistribution")
	assert.Contains(t, res, "analysis")

	rr = do(t, s, http.MethodGet, "/results?minScore=25&category=good", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[page.Envelope[service.ResultView]](t, rr).TotalItems)

	rr = do(t, s, http.MethodGet, "/results/"+res["id"].(string), "")
	require.Equal(t, http.StatusOK, rr.Code)
	detail := decode[service.ResultDetail](t, rr)
	assert.Equal(t, analytics.AgeGroupU11, detail.Player.AgeGroup)
	assert.Equal(t, "Spring", detail.Test.Name)

	rr = do(t, s, http.MethodGet, "/tests/"+test.ID, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[service.TestDetail](t, rr).ResultsCount)

	rr = do(t, s, http.MethodGet, "/tests?from=2024-05-01&testType=sprint", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, 1, decode[page.Envelope[service.TestView]](t, rr).TotalItems)
}

func TestInternalErrorsAreHidden(t *testing.T) {
	store := club.NewMock()
	store.CountPlayersFunc = func(ctx context.Context, opts club.ListOptions) (int, error) {
		return 0, errors.New("disk on fire at /var/db")
	}
	s := NewServer(service.New(service.Deps{Store: store}), nil, nil, config.Config{})

	rr := do(t, s, http.MethodGet, "/players", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rr.Body.String())
}

func pushBody(t *testing.T, event pubsub.ResultRecorded) string {
	t.Helper()
	data, err := pubsub.Encode(event)
	require.NoError(t, err)
	body, err := json.Marshal(map[string]any{"message": map[string]any{"data": data, "messageId": "1"}})
	require.NoError(t, err)
	return string(body)
}

func TestResultRecordedHandler(t *testing.T) {
	s, n := setupTestServer(t)

	rr := do(t, s, http.MethodPost, "/events/result-recorded?dry_run=true", pushBody(t, pubsub.ResultRecorded{ResultID: "r1", TotalScore: 30}))
	require.Equal(t, http.StatusOK, rr.Code)
	calls := n.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "r1", calls[0].Event.ResultID)
	assert.True(t, calls[0].DryRun)

	n.SendResultNotificationFunc = func(pubsub.ResultRecorded, bool) error { return errors.New("slack down") }
	rr = do(t, s, http.MethodPost, "/events/result-recorded", pushBody(t, pubsub.ResultRecorded{ResultID: "r2"}))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)

	rr = do(t, s, http.MethodPost, "/events/result-recorded", `{"message":{"data":"bm90IG1zZ3BhY2s="}}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	createPlayer(t, s, `{"name":"Ana","dateOfBirth":"2015-06-01","gender":"female","preferredHand":"left"}`)

	rr := do(t, s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `rally_mutations_total{entity="player",op="create"} 1`)
}

func TestMethodNotAllowed(t *testing.T) {
	s, _ := setupTestServer(t)
	rr := do(t, s, http.MethodPut, "/players", "{}")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
