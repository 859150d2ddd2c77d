// Package api exposes the chart query engine over HTTP.
package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/notecharts/charts"
)

type ChartAPI struct {
	engine charts.Engine
	router *http.ServeMux
	config Config
}

type Config struct {
	Port string
}

func NewChartAPI(engine charts.Engine, router *http.ServeMux, config Config) ChartAPI {
	api := ChartAPI{engine: engine, router: router, config: config}

	api.router.HandleFunc("/query", api.RunChartQuery)

	return api
}

func (api ChartAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}
