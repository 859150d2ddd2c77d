package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/notecharts/api"
	"hermannm.dev/notecharts/charts"
	"hermannm.dev/notecharts/config"
	"hermannm.dev/notecharts/notes"
	"hermannm.dev/wrap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "notecharts",
		Short:         "Chart queries over property-bearing markdown notes",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCommand(), newQueryCommand())
	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the chart query HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.ReadFromEnv()
			if err != nil {
				return wrap.Error(err, "failed to read config from env")
			}

			logLevel := slog.LevelDebug
			if conf.IsProduction {
				logLevel = slog.LevelInfo
			}
			logHandler := devlog.NewHandler(os.Stdout, &devlog.Options{Level: logLevel})
			slog.SetDefault(slog.New(logHandler))

			log.Infof("Loading notes from '%s'...", conf.Notes.Dir)
			source, err := notes.LoadDir(conf.Notes.Dir)
			if err != nil {
				return wrap.Error(err, "failed to load notes")
			}
			log.Infof("Loaded %d notes", len(source.GetAll()))

			engine := charts.NewEngine(source, charts.EngineOptions{
				GanttDefaultBlock: time.Duration(conf.Gantt.DefaultBlockMinutes) * time.Minute,
			})

			chartAPI := api.NewChartAPI(engine, http.NewServeMux(), api.Config{Port: conf.API.Port})

			log.Infof("Listening on port %s...", conf.API.Port)
			if err := chartAPI.ListenAndServe(); err != nil {
				return wrap.Error(err, "server stopped")
			}
			return nil
		},
	}
}

func newQueryCommand() *cobra.Command {
	var notesDir string
	var queryFile string

	command := &cobra.Command{
		Use:   "query",
		Short: "Run a single chart query and print the result rows as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := readChartQuery(queryFile)
			if err != nil {
				return err
			}

			source, err := notes.LoadDir(notesDir)
			if err != nil {
				return wrap.Error(err, "failed to load notes")
			}

			engine := charts.NewEngine(source, charts.EngineOptions{})
			chartData, err := engine.RunChartQuery(query)
			if err != nil {
				return wrap.Error(err, "failed to run chart query")
			}

			encoded, err := json.MarshalIndent(chartData, "", "  ")
			if err != nil {
				return wrap.Error(err, "failed to serialize chart data")
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
			return nil
		},
	}

	command.Flags().StringVar(&notesDir, "notes", ".", "directory of markdown notes to query")
	command.Flags().StringVar(
		&queryFile, "query", "", "path to a JSON chart query (reads stdin when omitted)",
	)
	return command
}

func readChartQuery(queryFile string) (charts.ChartQuery, error) {
	var contents []byte
	var err error
	if queryFile == "" {
		contents, err = io.ReadAll(os.Stdin)
	} else {
		contents, err = os.ReadFile(queryFile)
	}
	if err != nil {
		return charts.ChartQuery{}, wrap.Error(err, "failed to read chart query")
	}

	var query charts.ChartQuery
	if err := json.Unmarshal(contents, &query); err != nil {
		return charts.ChartQuery{}, wrap.Error(err, "failed to parse chart query JSON")
	}
	return query, nil
}
