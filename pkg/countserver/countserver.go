// Package countserver serves word-count tables over HTTP.
//
// It is the service side of [source.Remote]: any [source.Source] can be
// exposed so that remote clients fetch counts with GET /{corpus}.
//
// # Routes
//
//	GET /health            liveness and version
//	GET /{corpus}          top-N [[term, count], ...], count descending
//	GET /cloud/{corpus}    full pipeline result; query: max, grid, min, zero
//
// Every response carries Access-Control-Allow-Origin: * so browser-based
// layout engines can call the service directly. Errors are JSON objects
// with an "error" message and a machine-readable "code".
package countserver

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cloudweights/pkg/buildinfo"
	"github.com/matzehuels/cloudweights/pkg/cloud"
	cerrors "github.com/matzehuels/cloudweights/pkg/errors"
	"github.com/matzehuels/cloudweights/pkg/pipeline"
	"github.com/matzehuels/cloudweights/pkg/source"
)

// Defaults for [Options].
const (
	DefaultAddr = "localhost:3005"
	DefaultTopN = 100
)

// Options configures the handler.
type Options struct {
	// TopN caps the entries returned by GET /{corpus}. Zero means DefaultTopN;
	// a negative value disables the cap.
	TopN int

	// RateLimit is the sustained requests per second allowed per client IP.
	// Zero disables rate limiting.
	RateLimit float64

	// Burst is the per-client burst size. Zero means max(1, 2*RateLimit).
	Burst int

	// Defaults for GET /cloud/{corpus} when the query omits them.
	Cloud pipeline.Options

	Logger *log.Logger
}

func (o *Options) setDefaults() {
	if o.TopN == 0 {
		o.TopN = DefaultTopN
	}
	if o.Burst == 0 && o.RateLimit > 0 {
		o.Burst = max(1, int(2*o.RateLimit))
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

type handler struct {
	src    source.Source
	runner *pipeline.Runner
	opts   Options
}

// New returns the HTTP handler for src. A nil runner means a fresh
// [pipeline.Runner] over src.
func New(src source.Source, runner *pipeline.Runner, opts Options) http.Handler {
	opts.setDefaults()
	if runner == nil {
		runner = pipeline.NewRunner(src, opts.Logger)
	}
	h := &handler{src: src, runner: runner, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(allowAllOrigins)
	if opts.RateLimit > 0 {
		r.Use(newClientLimiter(opts.RateLimit, opts.Burst).middleware)
	}

	r.Get("/health", h.health)
	r.Get("/cloud/{corpus}", h.cloud)
	r.Get("/{corpus}", h.counts)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, cerrors.New(cerrors.ErrCodeNotFound, "not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed", Code: cerrors.ErrCodeInvalidInput})
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (h *handler) counts(w http.ResponseWriter, r *http.Request) {
	corpus, err := corpusParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	counts, err := h.src.Fetch(r.Context(), corpus)
	if err != nil {
		h.opts.Logger.Debug("fetch failed", "corpus", corpus, "error", err)
		writeError(w, err)
		return
	}

	setJSONHeader(w)
	w.WriteHeader(http.StatusOK)
	if err := source.EncodeCounts(w, TopCounts(counts, h.opts.TopN)); err != nil {
		h.opts.Logger.Warn("write response", "corpus", corpus, "error", err)
	}
}

func (h *handler) cloud(w http.ResponseWriter, r *http.Request) {
	corpus, err := corpusParam(r)
	if err != nil {
		writeError(w, err)
		return
	}

	opts, err := h.cloudOptions(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	opts.CorpusID = corpus

	result, err := h.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *handler) cloudOptions(q url.Values) (pipeline.Options, error) {
	opts := h.opts.Cloud
	opts.Logger = nil

	floats := []struct {
		key string
		dst *float64
	}{
		{"max", &opts.TargetMax},
		{"grid", &opts.GridSize},
		{"min", &opts.MinSize},
	}
	for _, f := range floats {
		raw := q.Get(f.key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return opts, cerrors.New(cerrors.ErrCodeInvalidInput, "invalid %s: %q", f.key, raw)
		}
		*f.dst = v
	}
	if raw := q.Get("zero"); raw != "" {
		opts.Zero = cloud.ZeroPolicy(raw)
	}
	return opts, nil
}

// TopCounts returns at most n entries of counts ordered by count, descending.
// Entries with equal counts keep their relative order. A negative n keeps
// every entry. The input is not modified.
func TopCounts(counts []cloud.RawCount, n int) []cloud.RawCount {
	sorted := slices.Clone(counts)
	slices.SortStableFunc(sorted, func(a, b cloud.RawCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// corpusParam reads the {corpus} segment. chi matches against the escaped
// path when one exists, so the segment is unescaped here.
func corpusParam(r *http.Request) (string, error) {
	corpus := chi.URLParam(r, "corpus")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(corpus)
		if err != nil {
			return "", cerrors.New(cerrors.ErrCodeInvalidCorpus, "malformed corpus identifier")
		}
		corpus = unescaped
	}
	if err := cerrors.ValidateCorpusID(corpus); err != nil {
		return "", err
	}
	return corpus, nil
}

type errorBody struct {
	Error string       `json:"error"`
	Code  cerrors.Code `json:"code"`
}

// writeError answers with the status matching err's code. Source sentinels
// without a code are classified here.
func writeError(w http.ResponseWriter, err error) {
	code := cerrors.GetCode(err)
	msg := cerrors.UserMessage(err)
	if code == "" {
		switch {
		case errors.Is(err, source.ErrNotFound):
			code, msg = cerrors.ErrCodeNotFound, "not found"
		case errors.Is(err, source.ErrUnavailable):
			code, msg = cerrors.ErrCodeSourceUnavailable, "source unavailable"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			code, msg = cerrors.ErrCodeSourceUnavailable, "request canceled"
		default:
			code, msg = cerrors.ErrCodeInternal, "internal error"
		}
	}
	writeJSON(w, cerrors.HTTPStatus(code), errorBody{Error: msg, Code: code})
}

func setJSONHeader(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	setJSONHeader(w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
