package transitions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	transitionIDHeader   = "X-Transition-Id"
	transitionKindHeader = "X-Transition-Kind"
)

type WebhookConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
	Breaker resilience.CircuitBreakerConfig
}

// WebhookPublisher POSTs each transition as JSON to one endpoint. The
// transition id header lets the receiver drop redelivered transitions.
type WebhookPublisher struct {
	client  *http.Client
	url     string
	token   string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewWebhookPublisher(cfg WebhookConfig, logger *logging.Logger) (*WebhookPublisher, error) {
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "webhook: invalid url")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &WebhookPublisher{
		client:  &http.Client{Timeout: timeout},
		url:     target,
		token:   strings.TrimSpace(cfg.Token),
		breaker: resilience.NewCircuitBreaker(cfg.Breaker, nil),
		logger:  logger,
	}, nil
}

func (p *WebhookPublisher) Publish(ctx context.Context, item transition.Transition) error {
	body, err := jsoniter.Marshal(item)
	if err != nil {
		return crerr.Wrap(err, "marshal transition")
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.url", p.url),
			attribute.String("transition.id", item.ID),
			attribute.String("transition.kind", string(item.Kind)),
		)
	}

	err = p.breaker.Execute(func() error {
		return p.post(ctx, item, body)
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		p.logger.DebugContext(ctx, "transition dropped, webhook circuit open", "transition_id", item.ID)
		return err
	}
	if err != nil {
		return crerr.Wrapf(err, "deliver transition %s", item.ID)
	}
	return nil
}

func (p *WebhookPublisher) post(ctx context.Context, item transition.Transition, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(string(body)))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(transitionIDHeader, item.ID)
	req.Header.Set(transitionKindHeader, string(item.Kind))
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("webhook status=%d body=%s", resp.StatusCode, truncateForLog(strings.TrimSpace(string(raw)), 512))
	}
	return nil
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", fmt.Errorf("value is empty")
	}

	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", candidate, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("%q has empty host", candidate)
	}

	return candidate, nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
