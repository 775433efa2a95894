package transitions

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fightcard/internal/domain/transition"
	"github.com/riskibarqy/fightcard/internal/platform/logging"
	"github.com/riskibarqy/fightcard/internal/platform/resilience"
	"github.com/segmentio/kafka-go"
)

type KafkaConfig struct {
	Brokers      []string
	Topic        string
	WriteTimeout time.Duration
	Breaker      resilience.CircuitBreakerConfig
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes transitions to one topic keyed by event id, so all
// transitions of an event land on the same partition in order.
type KafkaPublisher struct {
	writer  messageWriter
	breaker *resilience.CircuitBreaker
	timeout time.Duration
	logger  *logging.Logger
}

func NewKafkaPublisher(cfg KafkaConfig, logger *logging.Logger) (*KafkaPublisher, error) {
	brokers := make([]string, 0, len(cfg.Brokers))
	for _, broker := range cfg.Brokers {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	if len(brokers) == 0 {
		return nil, crerr.New("kafka: at least one broker required")
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return nil, crerr.New("kafka: topic required")
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        strings.TrimSpace(cfg.Topic),
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: cfg.WriteTimeout,
	})

	return newKafkaPublisher(writer, cfg, logger), nil
}

func newKafkaPublisher(writer messageWriter, cfg KafkaConfig, logger *logging.Logger) *KafkaPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}
	return &KafkaPublisher{
		writer:  writer,
		breaker: resilience.NewCircuitBreaker(cfg.Breaker, nil),
		timeout: cfg.WriteTimeout,
		logger:  logger,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, item transition.Transition) error {
	payload, err := sonic.Marshal(item)
	if err != nil {
		return crerr.Wrap(err, "marshal transition")
	}

	msg := kafka.Message{
		Key:   []byte(item.EventID),
		Value: payload,
		Time:  item.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(item.Kind)},
			{Key: "transition_id", Value: []byte(item.ID)},
		},
	}

	err = p.breaker.Execute(func() error {
		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.writer.WriteMessages(writeCtx, msg)
	})
	if crerr.Is(err, resilience.ErrCircuitOpen) {
		p.logger.DebugContext(ctx, "transition dropped, kafka circuit open", "transition_id", item.ID)
		return err
	}
	if err != nil {
		return crerr.Wrapf(err, "write transition %s", item.ID)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
