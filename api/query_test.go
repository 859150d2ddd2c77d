package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"hermannm.dev/devlog"

	"hermannm.dev/notecharts/charts"
	"hermannm.dev/notecharts/notes"
)

func TestMain(m *testing.M) {
	logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))

	os.Exit(m.Run())
}

func newTestAPI() ChartAPI {
	source := notes.FixedSource{
		{Path: "n1", Properties: map[string]any{"status": "done", "cost": 10}},
		{Path: "n2", Properties: map[string]any{"status": "done", "cost": 20}},
		{Path: "n3", Properties: map[string]any{"status": "open", "cost": 5}},
	}
	engine := charts.NewEngine(source, charts.EngineOptions{})
	return NewChartAPI(engine, http.NewServeMux(), Config{Port: "0"})
}

func postQuery(api ChartAPI, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader(body))
	response := httptest.NewRecorder()
	api.router.ServeHTTP(response, request)
	return response
}

func TestRunChartQueryEndpoint(t *testing.T) {
	response := postQuery(newTestAPI(), `{
		"type": "bar",
		"encoding": {"x": "status", "y": "cost"},
		"aggregate": {"y": "sum"}
	}`)

	require.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/json", response.Header().Get("Content-Type"))
	assert.NotEmpty(t, response.Header().Get("Query-Id"))

	body := response.Body.String()
	assert.Contains(t, body, `"x":"done"`)
	assert.Contains(t, body, `"y":30`)
	assert.Contains(t, body, `"notes":["n1","n2"]`)
}

func TestRunChartQueryEndpointRejectsMalformedBody(t *testing.T) {
	response := postQuery(newTestAPI(), `{not json`)

	require.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "failed to parse chart query")
}

func TestRunChartQueryEndpointNamesOffendingWhereClause(t *testing.T) {
	response := postQuery(newTestAPI(), `{
		"type": "bar",
		"source": {"where": ["bogus clause"]},
		"encoding": {"x": "status", "y": "cost"}
	}`)

	require.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "bogus clause")
}

func TestRunChartQueryEndpointRejectsInvalidTransformCombination(t *testing.T) {
	response := postQuery(newTestAPI(), `{
		"type": "bar",
		"encoding": {"x": "status", "y": "cost"},
		"aggregate": {"y": "sum", "cumulative": true}
	}`)

	require.Equal(t, http.StatusBadRequest, response.Code)
	assert.Contains(t, response.Body.String(), "line and area")
}
