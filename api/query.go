package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"hermannm.dev/devlog/log"
	"hermannm.dev/notecharts/charts"
)

// Expects:
//   - body: JSON-encoded charts.ChartQuery
//
// Returns:
//   - JSON-encoded charts.ChartData
//
// Structural query errors (malformed WHERE clauses, missing encodings, invalid
// transform combinations) are caller mistakes, answered with 400 and a message naming
// the offending part of the query.
func (api ChartAPI) RunChartQuery(res http.ResponseWriter, req *http.Request) {
	queryID := uuid.NewString()
	res.Header().Set("Query-Id", queryID)

	var query charts.ChartQuery
	if err := json.NewDecoder(req.Body).Decode(&query); err != nil {
		sendClientError(res, err, "failed to parse chart query from request body")
		return
	}

	chartData, err := api.engine.RunChartQuery(query)
	if err != nil {
		sendClientError(res, err, "failed to run chart query")
		return
	}

	log.Debug(
		"chart query completed",
		slog.String("queryId", queryID),
		slog.Int("rows", len(chartData.Rows)),
	)
	sendJSON(res, chartData)
}
