package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/recall/internal/fakebackend"
	"github.com/abhisek/recall/internal/store"
)

func TestWithLogging_RecordsRequests(t *testing.T) {
	st, err := store.Open("file:backend_logging?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	c, fake := newTestClient(t, fakebackend.Options{}, "")
	fake.FailWith(PathHintQuery, http.StatusServiceUnavailable)
	svc := WithLogging(c, st.EventRepo())

	ctx := context.Background()
	_, err = svc.Transcript(ctx, fakebackend.VideoID, fakebackend.IndexID)
	require.NoError(t, err)
	_, err = svc.HintQuery(ctx, "medicine")
	require.Error(t, err)

	events, err := st.EventRepo().RecentRequests(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.Equal(t, "backend", failed.Service)
	assert.Equal(t, PathHintQuery, failed.Operation)
	assert.False(t, failed.Success)
	assert.Equal(t, http.StatusServiceUnavailable, failed.StatusCode)
	assert.NotEmpty(t, failed.ErrorMessage)

	assert.Equal(t, PathTranscript, ok.Operation)
	assert.True(t, ok.Success)
	assert.Equal(t, http.StatusOK, ok.StatusCode)
	assert.Less(t, ok.Sequence, failed.Sequence)
}
