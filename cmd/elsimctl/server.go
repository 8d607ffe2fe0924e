package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/gosimilarity/elsim/compare"
	"github.com/gosimilarity/elsim/compressor"
	"github.com/gosimilarity/elsim/elsimcfg"
	"github.com/gosimilarity/elsim/filter"
	"github.com/gosimilarity/elsim/kernel"
	"github.com/gosimilarity/elsim/report"
)

// newServer builds the demo HTTP report endpoint (spec §3's ambient
// stack keeps go-chi regardless of the "no CLI front-end" non-goal):
// GET /compare?a=<dir>&b=<dir> runs a full comparison and writes the
// text report, GET /healthz is a bare liveness probe. Grounded on
// router/router.go's middleware chain, trimmed to the three
// middlewares that apply to a single unauthenticated local tool
// (request ID, structured request logging, panic recovery) — CORS,
// security headers, rate limiting, and auth all presuppose a
// multi-tenant gateway this tool isn't.
func newServer(cfg *elsimcfg.Config, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger(log))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/compare", func(w http.ResponseWriter, r *http.Request) {
		dirA := r.URL.Query().Get("a")
		dirB := r.URL.Query().Get("b")
		if dirA == "" || dirB == "" {
			http.Error(w, "both a and b query parameters are required", http.StatusBadRequest)
			return
		}

		sentencesA, err := sentencesInDir(dirA)
		if err != nil {
			http.Error(w, "reading a: "+err.Error(), http.StatusBadRequest)
			return
		}
		sentencesB, err := sentencesInDir(dirB)
		if err != nil {
			http.Error(w, "reading b: "+err.Error(), http.StatusBadRequest)
			return
		}

		facade := compressor.New()
		if ctype, ok := compressor.ByName(cfg.DefaultCompressor); ok {
			facade.SetType(ctype)
		}
		if err := facade.SetLevel(cfg.Level); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		k := kernel.New(facade)

		session, err := compare.New(toAny(sentencesA), toAny(sentencesB), filter.Text(cfg), k, cfg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		listings := r.URL.Query().Get("listings") != ""
		var opts []report.Option
		if listings {
			opts = append(opts, report.WithListings())
		}
		if err := report.Write(w, session, opts...); err != nil {
			log.Error().Err(err).Msg("writing report failed mid-response")
		}
	})

	return r
}

// requestLogger logs one line per request at Info level, the shape of
// router.go's own structured access logging but scoped to this tool's
// two routes instead of the gateway's full request lifecycle.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Info().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
