package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
)

const publishTimeout = 2 * time.Second

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Metrics счётчик опубликованных событий
type Metrics interface {
	IncEventPublished(eventType, status string)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher публикует доменные события в Kafka.
// Ошибка публикации логируется и не возвращается вызывающему.
type Publisher struct {
	writer  messageWriter
	logger  Logger
	metrics Metrics
}

// NewPublisher создаёт издателя. Без брокеров события только пишутся в лог.
func NewPublisher(brokers []string, topic string, logger Logger, metrics Metrics) *Publisher {
	p := &Publisher{logger: logger, metrics: metrics}
	if len(brokers) == 0 {
		logger.Warn("events publisher disabled (no kafka brokers configured)")
		return p
	}

	p.writer = kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
	})
	return p
}

// Publish отправляет событие. Ключ сообщения - идентификатор агрегата,
// поэтому события одного бронирования попадают в одну партицию.
func (p *Publisher) Publish(ctx context.Context, event Event) {
	if p.writer == nil {
		p.logger.Info("event %s aggregate=%d (not published)", event.Type, event.AggregateID)
		return
	}

	value, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("Publish: encode %s: %v", event.Type, err)
		p.inc(event.Type, "error")
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AggregateID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}
	carrier := &headerCarrier{headers: msg.Headers}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	msg.Headers = carrier.headers

	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(writeCtx, msg); err != nil {
		p.logger.Warn("Publish: %s aggregate=%d: %v", event.Type, event.AggregateID, err)
		p.inc(event.Type, "error")
		return
	}
	p.inc(event.Type, "ok")
}

// Close закрывает writer
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

func (p *Publisher) inc(eventType, status string) {
	if p.metrics != nil {
		p.metrics.IncEventPublished(eventType, status)
	}
}

// headerCarrier переносит W3C trace context в заголовки Kafka
type headerCarrier struct {
	headers []kafka.Header
}

func (c *headerCarrier) Get(key string) string {
	for _, h := range c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c *headerCarrier) Set(key, value string) {
	for i := range c.headers {
		if c.headers[i].Key == key {
			c.headers[i].Value = []byte(value)
			return
		}
	}
	c.headers = append(c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c *headerCarrier) Keys() []string {
	keys := make([]string, 0, len(c.headers))
	for _, h := range c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
