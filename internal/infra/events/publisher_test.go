package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ludoteca-service/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

type recordingMetrics struct {
	calls []string
}

func (m *recordingMetrics) IncEventPublished(eventType, status string) {
	m.calls = append(m.calls, eventType+":"+status)
}

func TestPublisher_WritesKeyedMessage(t *testing.T) {
	w := &fakeWriter{}
	m := &recordingMetrics{}
	p := &Publisher{writer: w, logger: nopLogger{}, metrics: m}

	event := New(BookingStatusChanged, domain.KindBirthday, 42, StatusChange{From: domain.StatusPending, To: domain.StatusConfirmed})
	p.Publish(context.Background(), event)

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, event.ID, headerValue(msg.Headers, "event_id"))
	assert.Equal(t, BookingStatusChanged, headerValue(msg.Headers, "event_type"))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "birthday", decoded["kind"])
	assert.Equal(t, "CONFIRMED", decoded["payload"].(map[string]interface{})["to"])
	assert.Equal(t, []string{"booking.status_changed:ok"}, m.calls)
}

func TestPublisher_FailureIsSwallowed(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	m := &recordingMetrics{}
	p := &Publisher{writer: w, logger: nopLogger{}, metrics: m}

	p.Publish(context.Background(), New(BookingDeleted, domain.KindDaycare, 1, nil))
	assert.Equal(t, []string{"booking.deleted:error"}, m.calls)
}

func TestPublisher_DisabledWithoutBrokers(t *testing.T) {
	p := NewPublisher(nil, "ludoteca.bookings", nopLogger{}, nil)
	p.Publish(context.Background(), New(SlotCreated, domain.KindDaycare, 1, nil))
	assert.NoError(t, p.Close())
}

func TestHeaderCarrier_Overwrites(t *testing.T) {
	c := &headerCarrier{}
	c.Set("traceparent", "a")
	c.Set("traceparent", "b")
	assert.Equal(t, "b", c.Get("traceparent"))
	assert.Equal(t, []string{"traceparent"}, c.Keys())
}

func headerValue(headers []kafka.Header, key string) string {
	for _, h := range headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
