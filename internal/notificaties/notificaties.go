// Package notificaties publishes the post-commit notification stream on the
// "zaken" kanaal. Delivery is best-effort and at-least-once: a failed produce
// lands on a Redis retry list and is replayed out-of-band. Publishing never
// blocks or fails the request that triggered it.
package notificaties

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/kgo"

	"zaakregister/internal/platform/metrics"
)

// Kanaal is the notification channel of the case registration.
const Kanaal = "zaken"

// Acties on the kanaal.
const (
	ActieCreate        = "create"
	ActieUpdate        = "update"
	ActiePartialUpdate = "partial_update"
	ActieDestroy       = "destroy"
)

// Message is one notification on the kanaal.
type Message struct {
	Kanaal       string            `json:"kanaal"`
	HoofdObject  string            `json:"hoofdObject"`
	Resource     string            `json:"resource"`
	ResourceURL  string            `json:"resourceUrl"`
	Actie        string            `json:"actie"`
	AanmaakDatum time.Time         `json:"aanmaakdatum"`
	Kenmerken    map[string]string `json:"kenmerken"`
}

// Publisher delivers messages to subscribers.
type Publisher interface {
	Publish(ctx context.Context, msg Message)
}

const retryList = "notificaties:retry"

// KafkaPublisher produces messages to Kafka, keyed by hoofdObject so
// notifications for one case land on one partition. Failed produces are
// parked on Redis and replayed by the retry loop.
type KafkaPublisher struct {
	client  *kgo.Client
	redis   *redis.Client
	topic   string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewKafkaPublisher(client *kgo.Client, rdb *redis.Client, topic string, logger *slog.Logger, m *metrics.Metrics) *KafkaPublisher {
	return &KafkaPublisher{client: client, redis: rdb, topic: topic, logger: logger, metrics: m}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to marshal notification", "error", err)
		return
	}
	record := &kgo.Record{
		Topic: p.topic,
		Key:   []byte(msg.HoofdObject),
		Value: payload,
	}
	// The request transaction has already committed; detach from its
	// cancellation.
	produceCtx := context.WithoutCancel(ctx)
	p.client.Produce(produceCtx, record, func(_ *kgo.Record, err error) {
		if err == nil {
			p.metrics.NotificationsPublished.Inc()
			return
		}
		p.metrics.NotificationsFailed.Inc()
		p.logger.Error("failed to produce notification, parking for retry",
			"error", err, "resource", msg.Resource, "actie", msg.Actie)
		p.park(produceCtx, payload)
	})
}

func (p *KafkaPublisher) park(ctx context.Context, payload []byte) {
	if p.redis == nil {
		return
	}
	if err := p.redis.RPush(ctx, retryList, payload).Err(); err != nil {
		p.logger.Error("failed to park notification on retry list", "error", err)
	}
}

// RetryLoop replays parked notifications until ctx is cancelled. Run it in
// its own goroutine.
func (p *KafkaPublisher) RetryLoop(ctx context.Context, interval time.Duration) {
	if p.redis == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.drainRetries(ctx)
		}
	}
}

func (p *KafkaPublisher) drainRetries(ctx context.Context) {
	for {
		payload, err := p.redis.LPop(ctx, retryList).Bytes()
		if err != nil {
			return
		}
		var msg Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			p.logger.Error("dropping malformed parked notification", "error", err)
			continue
		}
		p.metrics.NotificationsRequeued.Inc()
		p.Publish(ctx, msg)
	}
}

// LogPublisher logs messages instead of delivering them. Used in tests and
// when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) Publish(ctx context.Context, msg Message) {
	p.Logger.InfoContext(ctx, "notification",
		"kanaal", msg.Kanaal, "resource", msg.Resource, "actie", msg.Actie,
		"hoofd_object", msg.HoofdObject)
}

// CapturePublisher collects messages for assertions in tests.
type CapturePublisher struct {
	Messages []Message
}

func (p *CapturePublisher) Publish(_ context.Context, msg Message) {
	p.Messages = append(p.Messages, msg)
}
