package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/careatlas/pkg/pipeline"
)

// previewPage is the minimal embed page served at /. The document itself is
// fetched from /document.json, so edits to the snapshot show up on reload.
const previewPage = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <title>Careatlas</title>
  <script src="https://cdn.jsdelivr.net/npm/vega@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-lite@5"></script>
  <script src="https://cdn.jsdelivr.net/npm/vega-embed@6"></script>
  <style>body { margin: 2em; font-family: sans-serif; } #view { width: 90vw; }</style>
</head>
<body>
  <div id="view"></div>
  <script>
    vegaEmbed("#view", "/document.json", {actions: true});
  </script>
</body>
</html>
`

// serveCommand creates the serve command for live document previews.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve the compiled document with a live preview page",
		Long: `Serve the compiled document over HTTP.

Endpoints:
  /                the preview page rendering the document
  /document.json   the compiled document (recompiled when the snapshot changes)
  /healthz         liveness probe
  /metrics         Prometheus metrics

The document is compiled on demand and cached by snapshot content hash, so
editing the snapshot and reloading the page picks up the change without a
restart.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := c.Config.Dataset
			if len(args) > 0 {
				dataset = args[0]
			}
			listen := c.Config.Serve.Addr
			if cmd.Flags().Changed("addr") {
				listen = addr
			}
			return c.runServe(cmd.Context(), dataset, listen)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// runServe starts the preview server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, datasetPath, addr string) error {
	runner, err := c.newRunner(false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	newPromMetrics(reg).register()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(previewPage))
	})

	r.Get("/document.json", func(w http.ResponseWriter, req *http.Request) {
		opts := pipeline.Options{
			Dataset: datasetPath,
			Table:   c.Config.Table,
			Inline:  true, // the page has no way to fetch the raw snapshot
			Refresh: req.URL.Query().Get("refresh") == "true",
			Logger:  c.Logger,
		}
		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			c.Logger.Error("compile failed", "error", err)
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(result.Encoded)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	c.Logger.Info("serving preview", "addr", addr, "dataset", datasetPath)
	printInfo("Preview at http://localhost%s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
