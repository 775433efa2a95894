package transitions

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fightcard/internal/domain/event"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransition() transition.Transition {
	return transition.Transition{
		ID:         "tr-9",
		Kind:       transition.KindSection,
		EntityID:   "ev-1",
		EventID:    "ev-1",
		To:         "COMPLETED",
		Method:     event.MethodTimeBased,
		Count:      3,
		OccurredAt: time.Date(2026, time.May, 2, 3, 0, 0, 0, time.UTC),
	}
}

func TestWebhookPublisher_PostsTransition(t *testing.T) {
	t.Parallel()

	var got transition.Transition
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		raw, _ := io.ReadAll(r.Body)
		_ = jsoniter.Unmarshal(raw, &got)
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	publisher, err := NewWebhookPublisher(WebhookConfig{URL: srv.URL + "/hooks/transitions", Token: "hook-token"}, logging.NewNop())
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), sampleTransition()))
	assert.Equal(t, "tr-9", got.ID)
	assert.Equal(t, 3, got.Count)
	assert.Equal(t, "Bearer hook-token", headers.Get("Authorization"))
	assert.Equal(t, "tr-9", headers.Get(transitionIDHeader))
	assert.Equal(t, "section", headers.Get(transitionKindHeader))
}

func TestWebhookPublisher_NonSuccessStatusOpensCircuit(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "consumer down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	publisher, err := NewWebhookPublisher(WebhookConfig{
		URL:     srv.URL,
		Breaker: resilience.CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute, HalfOpenMaxReq: 1},
	}, logging.NewNop())
	require.NoError(t, err)

	err = publisher.Publish(context.Background(), sampleTransition())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=502")

	err = publisher.Publish(context.Background(), sampleTransition())
	require.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewWebhookPublisher_RejectsBadURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://hooks.example", "https://"} {
		_, err := NewWebhookPublisher(WebhookConfig{URL: raw}, nil)
		require.Error(t, err, raw)
	}
}

func TestFanout_PublishesToAllAndJoinsErrors(t *testing.T) {
	t.Parallel()

	first := NewRecorder()
	second := NewRecorder()
	second.FailWith(errors.New("broker unavailable"))
	third := NewRecorder()

	err := Fanout{first, second, third}.Publish(context.Background(), sampleTransition())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker unavailable")
	assert.Len(t, first.Items(), 1)
	assert.Len(t, third.Items(), 1)
}
