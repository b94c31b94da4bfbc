package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// wantKind fails the test unless err is an *Error of kind.
func wantKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("err = %T (%v), want *Error", err, err)
	}
	if e.Kind != kind {
		t.Fatalf("kind = %s, want %s (%v)", e.Kind, kind, err)
	}
	return e
}

func TestError_Message(t *testing.T) {
	ctx := WithPurpose(context.Background(), PurposeQuizGen)
	e := newError(ctx, ProviderAnthropic, KindRateLimited, errors.New("slow down"))
	e.RetryAfter = 2 * time.Second

	want := "anthropic quiz-gen: rate limited (retry after 2s): slow down"
	if e.Error() != want {
		t.Fatalf("Error() = %q, want %q", e.Error(), want)
	}
	if (&Error{Kind: KindBlocked}).Error() != "content blocked" {
		t.Fatalf("bare error = %q", (&Error{Kind: KindBlocked}).Error())
	}
}

func TestError_Retryable(t *testing.T) {
	tests := []struct {
		kind Kind
		want bool
	}{
		{KindUnavailable, true},
		{KindRateLimited, true},
		{KindInvalid, true},
		{KindRejected, false},
		{KindBlocked, false},
		{KindTruncated, false},
	}
	for _, tt := range tests {
		if got := (&Error{Kind: tt.kind}).Retryable(); got != tt.want {
			t.Errorf("%s: Retryable = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("quiz"), &Error{Kind: KindTruncated})
	if k, ok := KindOf(wrapped); !ok || k != KindTruncated {
		t.Fatalf("KindOf(wrapped) = %s, %v", k, ok)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("plain errors have no kind")
	}
}

func TestStatusKind(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusUnauthorized, KindRejected},
		{http.StatusNotFound, KindRejected},
		{http.StatusBadRequest, KindRejected},
		{http.StatusRequestTimeout, KindUnavailable},
		{http.StatusInternalServerError, KindUnavailable},
		{529, KindUnavailable},
		{0, KindUnavailable},
	}
	for _, tt := range tests {
		if got := statusKind(tt.status); got != tt.want {
			t.Errorf("statusKind(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"3", 3 * time.Second},
		{"0.5", 500 * time.Millisecond},
		{"-1", 0},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.header != "" {
			h.Set("Retry-After", tt.header)
		}
		if got := retryAfter(h); got != tt.want {
			t.Errorf("retryAfter(%q) = %s, want %s", tt.header, got, tt.want)
		}
	}
}
