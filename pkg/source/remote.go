package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/cloudweights/pkg/buildinfo"
	"github.com/matzehuels/cloudweights/pkg/cloud"
	"github.com/matzehuels/cloudweights/pkg/observability"
)

// maxBodySize caps how much of a count response is read.
const maxBodySize = 32 << 20

// Remote fetches counts from an HTTP count service.
//
// A request for corpus c is GET <baseURL>/<c>; the service answers with a
// JSON array of [term, count] pairs. A 404 maps to [ErrNotFound]; every
// other failure (transport error, non-200 status, malformed body) maps to
// [ErrUnavailable].
//
// Remote does not retry, cache or deduplicate requests, and imposes no
// timeout beyond the one configured on its http.Client.
// It is safe for concurrent use.
type Remote struct {
	http    *http.Client
	baseURL string
	headers map[string]string
}

// NewRemote creates a remote source for the service at baseURL.
// A nil client means a plain http.Client without timeout.
func NewRemote(baseURL string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{}
	}
	return &Remote{
		http:    client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": buildinfo.UserAgent(),
		},
	}
}

// NewHTTPClient creates an HTTP client with the given request timeout.
// A zero timeout means none.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// BaseURL returns the service endpoint.
func (r *Remote) BaseURL() string { return r.baseURL }

// Fetch requests the count table for corpus, preserving response order.
func (r *Remote) Fetch(ctx context.Context, corpus string) ([]cloud.RawCount, error) {
	body, err := r.doRequest(ctx, r.baseURL+"/"+url.PathEscape(corpus))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, corpus)
		}
		return nil, err
	}
	defer body.Close()

	counts, err := DecodeCounts(io.LimitReader(body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrUnavailable, corpus, err)
	}
	return counts, nil
}

func (r *Remote) doRequest(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := r.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	default:
		return fmt.Errorf("%w: status %d", ErrUnavailable, code)
	}
}

// DecodeCounts decodes a JSON array of [term, count] pairs.
// Anything else (an object, null, pairs of the wrong length, a non-string
// term, a negative or fractional count, trailing data) is an error.
func DecodeCounts(r io.Reader) ([]cloud.RawCount, error) {
	dec := json.NewDecoder(r)
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after the count array")
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, fmt.Errorf("expected a JSON array of [term, count] pairs")
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	counts := make([]cloud.RawCount, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("entry %d: expected [term, count], got %d elements", i, len(row))
		}
		if isNull(row[0]) || isNull(row[1]) {
			return nil, fmt.Errorf("entry %d: null element", i)
		}
		if err := json.Unmarshal(row[0], &counts[i].Term); err != nil {
			return nil, fmt.Errorf("entry %d term: %w", i, err)
		}
		if err := json.Unmarshal(row[1], &counts[i].Count); err != nil {
			return nil, fmt.Errorf("entry %d count: %w", i, err)
		}
	}
	return counts, nil
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// EncodeCounts writes counts as a JSON array of [term, count] pairs.
func EncodeCounts(w io.Writer, counts []cloud.RawCount) error {
	rows := make([][2]any, len(counts))
	for i, c := range counts {
		rows[i] = [2]any{c.Term, c.Count}
	}
	return json.NewEncoder(w).Encode(rows)
}

var _ Source = (*Remote)(nil)
