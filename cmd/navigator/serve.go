package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/content"
	"github.com/BrandonKowalski/navigator/pkg/navigator/metrics"
	"github.com/BrandonKowalski/navigator/pkg/navigator/view"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve page templates and a remote-controlled navigator",
	Long: `Serves the template directory under /pages, drives a headless navigator
through /navigator and exposes its metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		nav, err := newNavigator(view.NewContainer())
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		collector, err := metrics.NewCollector(reg)
		if err != nil {
			return err
		}
		defer collector.Observe(nav)()

		srv := &http.Server{
			Addr:              addr,
			Handler:           newServer(nav, config.TemplateDir, reg),
			ReadHeaderTimeout: 5 * time.Second,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting navigator server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return err
		case sig := <-shutdown:
			fmt.Printf("\nShutting down... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				return srv.Close()
			}
			return nil
		}
	},
}

type pageJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
}

type stackJSON struct {
	Busy  bool       `json:"busy"`
	Pages []pageJSON `json:"pages"`
}

type navigateRequest struct {
	Locator string         `json:"locator"`
	Options map[string]any `json:"options"`
}

func newServer(nav *navigator.Navigator, templateDir string, reg *prometheus.Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	if templateDir != "" {
		r.Handle("/pages/*", http.StripPrefix("/pages/", http.FileServer(http.Dir(templateDir))))
	}
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/navigator", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			writeStack(w, nav)
		})
		r.Post("/push", navigateHandler(nav, "push", nav.PushPage))
		r.Post("/reset", navigateHandler(nav, "reset", nav.ResetToPage))
		r.Post("/pop", func(w http.ResponseWriter, req *http.Request) {
			failed, detach := watchFailures(nav, "pop", "")
			defer detach()

			if err := nav.PopPage(); err != nil {
				writeError(w, err)
				return
			}
			waitAndWriteStack(w, req, nav, failed)
		})
	})

	return r
}

func navigateHandler(nav *navigator.Navigator, name string, op func(string, *navigator.PushOptions) error) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body navigateRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
		if body.Locator == "" {
			http.Error(w, "locator is required", http.StatusBadRequest)
			return
		}

		var raw any
		if body.Options != nil {
			raw = body.Options
		}
		opts, err := navigator.DecodePushOptions(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		failed, detach := watchFailures(nav, name, body.Locator)
		defer detach()

		if err := op(body.Locator, opts); err != nil {
			writeError(w, err)
			return
		}
		waitAndWriteStack(w, req, nav, failed)
	}
}

// failures keeps the first error reported for one queued operation.
type failures struct {
	mu  sync.Mutex
	err error
}

func (f *failures) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// watchFailures records errors the navigator reports for op on locator
// until detach is called.
func watchFailures(nav *navigator.Navigator, op, locator string) (*failures, func()) {
	f := &failures{}
	detach := nav.OnError(func(e *navigator.ErrorEvent) {
		var navErr *navigator.NavigationError
		if !errors.As(e.Err, &navErr) || navErr.Op != op || navErr.Locator != locator {
			return
		}
		f.mu.Lock()
		if f.err == nil {
			f.err = e.Err
		}
		f.mu.Unlock()
	})
	return f, detach
}

func waitAndWriteStack(w http.ResponseWriter, req *http.Request, nav *navigator.Navigator, failed *failures) {
	ctx, cancel := context.WithTimeout(req.Context(), 10*time.Second)
	defer cancel()

	if err := nav.WaitIdle(ctx); err != nil {
		http.Error(w, "navigation did not settle", http.StatusGatewayTimeout)
		return
	}
	if err := failed.Err(); err != nil {
		writeError(w, err)
		return
	}
	writeStack(w, nav)
}

func writeStack(w http.ResponseWriter, nav *navigator.Navigator) {
	out := stackJSON{Busy: nav.Busy(), Pages: []pageJSON{}}
	for _, p := range nav.GetPages() {
		page := pageJSON{ID: p.ID, Name: p.Name}
		if p.Controller != nil {
			page.Title = p.Controller.Title()
		}
		out.Pages = append(out.Pages, page)
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var fetchErr *content.FetchError
	switch {
	case errors.Is(err, navigator.ErrStackEmpty), navigator.IsCanceled(err):
		status = http.StatusConflict
	case errors.Is(err, navigator.ErrInvalidOptions), errors.Is(err, navigator.ErrUnknownAnimator), errors.Is(err, navigator.ErrInvalidAnimator):
		status = http.StatusBadRequest
	case errors.As(err, &fetchErr):
		status = http.StatusBadGateway
	case errors.Is(err, view.ErrNoPageElement):
		status = http.StatusUnprocessableEntity
	}
	http.Error(w, err.Error(), status)
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
