// Package backend is the HTTP client for the visit backend: transcripts,
// quiz generation, hint clip lookup and free-form text queries.
package backend

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

	"github.com/abhisek/recall/internal/quiz"
)

// Endpoint paths.
const (
	PathTranscript = "/transcript"
	PathQuiz       = "/quiz"
	PathHintQuery  = "/hint-query"
	PathTextQuery  = "/text-query"
	PathHealth     = "/health"
)

// HSPHeader carries the tenant label on quiz requests.
const HSPHeader = "X-HSP-Header"

// maxBodyBytes caps how much of a response is read.
const maxBodyBytes = 4 << 20

// Service is the set of backend operations the client uses.
type Service interface {
	// Transcript returns the visit transcript for a video in an index.
	Transcript(ctx context.Context, video, index string) (string, error)

	// Quiz asks the backend to generate questions from a transcript.
	Quiz(ctx context.Context, transcript string) ([]quiz.Question, error)

	// HintQuery returns the clip window that best answers query.
	HintQuery(ctx context.Context, query string) (*quiz.TimingHint, error)

	// TextQuery sends a free-form question about a video.
	TextQuery(ctx context.Context, query, videoID string) (map[string]any, error)
}

// Config configures a Client.
type Config struct {
	BaseURL string
	HSP     string
	Timeout time.Duration

	// HTTPClient overrides the default client. Its Timeout is left alone.
	HTTPClient *http.Client
}

// Client talks to the backend over HTTP. Requests are not retried.
type Client struct {
	base *url.URL
	hsp  string
	http *http.Client
}

var _ Service = (*Client)(nil)

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend URL %q must be http or https", cfg.BaseURL)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 20 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{base: u, hsp: cfg.HSP, http: hc}, nil
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string { return c.base.String() }

func (c *Client) Transcript(ctx context.Context, video, index string) (string, error) {
	q := url.Values{}
	q.Set("video", video)
	q.Set("index", index)

	body, err := c.do(ctx, http.MethodGet, PathTranscript, q, nil, nil)
	if err != nil {
		return "", err
	}
	t, err := DecodeTranscript(body)
	if err != nil {
		return "", &ErrMalformed{Op: PathTranscript, Err: err}
	}
	return t, nil
}

func (c *Client) Quiz(ctx context.Context, transcript string) ([]quiz.Question, error) {
	var (
		q      url.Values
		header http.Header
	)
	if c.hsp != "" {
		q = url.Values{"hsp": {c.hsp}}
		header = http.Header{HSPHeader: {c.hsp}}
	}

	body, err := c.do(ctx, http.MethodPost, PathQuiz, q, map[string]string{"transcription": transcript}, header)
	if err != nil {
		return nil, err
	}
	qs, err := DecodeQuiz(body)
	if err != nil {
		return nil, &ErrMalformed{Op: PathQuiz, Err: err}
	}
	return qs, nil
}

func (c *Client) HintQuery(ctx context.Context, query string) (*quiz.TimingHint, error) {
	body, err := c.do(ctx, http.MethodPost, PathHintQuery, nil, map[string]string{"query": query}, nil)
	if err != nil {
		return nil, err
	}
	h, err := DecodeHint(body)
	if err != nil {
		return nil, &ErrMalformed{Op: PathHintQuery, Err: err}
	}
	return h, nil
}

func (c *Client) TextQuery(ctx context.Context, query, videoID string) (map[string]any, error) {
	req := map[string]string{"query": query, "video_id": videoID}
	body, err := c.do(ctx, http.MethodPost, PathTextQuery, nil, req, nil)
	if err != nil {
		return nil, err
	}
	resp, err := DecodeTextQuery(body)
	if err != nil {
		return nil, &ErrMalformed{Op: PathTextQuery, Err: err}
	}
	return resp, nil
}

// Ping checks the backend health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, PathHealth, nil, nil, nil)
	return err
}

// do sends one request and returns the response body. Transport failures
// become *ErrUnavailable; non-2xx answers and {"error": ...} bodies become
// *ErrStatus.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, header http.Header) ([]byte, error) {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", path, err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ErrUnavailable{Op: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &ErrUnavailable{Op: path, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := errorMessage(body)
		return nil, &ErrStatus{Op: path, Code: resp.StatusCode, Message: msg}
	}
	if msg, ok := errorMessage(body); ok {
		return nil, &ErrStatus{Op: path, Code: resp.StatusCode, Message: msg}
	}
	return body, nil
}

// StatusCode returns the HTTP status carried by err, 0 when there is none.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var se *ErrStatus
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}
