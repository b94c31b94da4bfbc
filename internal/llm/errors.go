package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a failed generation.
type Kind int

const (
	// KindUnavailable covers network failures, timeouts on the provider
	// side and 5xx responses.
	KindUnavailable Kind = iota
	KindRateLimited
	// KindRejected means the provider refused the request itself: a bad
	// key, an unknown model or a malformed request. Retrying cannot help.
	KindRejected
	// KindBlocked means the model or its safety filter declined to answer.
	// Visit transcripts name medications and conditions, which sometimes
	// trips these filters.
	KindBlocked
	// KindInvalid means the output did not match the requested schema.
	KindInvalid
	// KindTruncated means structured output stopped at the token limit.
	KindTruncated
)

func (k Kind) String() string {
	switch k {
	case KindRateLimited:
		return "rate limited"
	case KindRejected:
		return "request rejected"
	case KindBlocked:
		return "content blocked"
	case KindInvalid:
		return "invalid response"
	case KindTruncated:
		return "response truncated"
	default:
		return "unavailable"
	}
}

// Error is the error every provider returns. Provider and Purpose name the
// backend that failed and the recall feature that asked.
type Error struct {
	Kind     Kind
	Provider string
	Purpose  string

	// RetryAfter is the provider's requested wait for KindRateLimited.
	RetryAfter time.Duration

	// Content holds the raw output for KindInvalid and KindTruncated.
	Content json.RawMessage

	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Provider != "" {
		b.WriteString(e.Provider)
		if e.Purpose != "" {
			b.WriteByte(' ')
			b.WriteString(e.Purpose)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.String())
	if e.RetryAfter > 0 {
		fmt.Fprintf(&b, " (retry after %s)", e.RetryAfter)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindUnavailable, KindRateLimited, KindInvalid:
		return true
	}
	return false
}

// KindOf returns the Kind of err. ok is false when err is not an *Error.
func KindOf(err error) (kind Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// newError builds an *Error for provider, taking the purpose from ctx.
func newError(ctx context.Context, provider string, kind Kind, err error) *Error {
	return &Error{Kind: kind, Provider: provider, Purpose: PurposeFrom(ctx), Err: err}
}

// invalidf reports output that could not be used.
func invalidf(ctx context.Context, provider string, content json.RawMessage, format string, args ...any) *Error {
	e := newError(ctx, provider, KindInvalid, fmt.Errorf(format, args...))
	e.Content = content
	return e
}

// statusKind classifies an HTTP status returned by a provider API. 529 is
// Anthropic's overloaded status.
func statusKind(status int) Kind {
	switch {
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status == http.StatusRequestTimeout, status == http.StatusConflict:
		return KindUnavailable
	case status >= 400 && status < 500:
		return KindRejected
	default:
		return KindUnavailable
	}
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(h http.Header) time.Duration {
	v := h.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.ParseFloat(v, 64)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}
