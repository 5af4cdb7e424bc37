package notification_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"seedcare/internal/features/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type delivery struct {
	recipient string
	subject   string
	body      string
}

type fakeSender struct {
	channel notification.Channel
	err     error
	panics  bool

	mu         sync.Mutex
	deliveries []delivery
}

func (f *fakeSender) Channel() notification.Channel { return f.channel }

func (f *fakeSender) Deliver(ctx context.Context, recipient, subject, body string) error {
	if f.panics {
		panic("gateway exploded")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deliveries = append(f.deliveries, delivery{recipient, subject, body})
	return f.err
}

func (f *fakeSender) sent() []delivery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]delivery(nil), f.deliveries...)
}

func statusMessage(channel notification.Channel, recipient string) notification.Message {
	return notification.Message{
		Channel:   channel,
		Template:  notification.TemplateStatusUpdate,
		Recipient: recipient,
		Variables: map[string]string{"complaint_number": "CPL-1", "status_label": "Diproses"},
	}
}

func TestDispatcherDelivers(t *testing.T) {
	email := &fakeSender{channel: notification.ChannelEmail}
	d := notification.NewDispatcher(zap.NewNop(), time.Second, email)

	d.Send(context.Background(), statusMessage(notification.ChannelEmail, "farmer@example.test"))
	d.Wait()

	sent := email.sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "farmer@example.test", sent[0].recipient)
	assert.Equal(t, "Status keluhan CPL-1: Diproses", sent[0].subject)
}

func TestDispatcherSkipsWithoutRecipientOrSender(t *testing.T) {
	email := &fakeSender{channel: notification.ChannelEmail}
	d := notification.NewDispatcher(zap.NewNop(), time.Second, email)

	d.Send(context.Background(), statusMessage(notification.ChannelEmail, ""))
	d.Send(context.Background(), statusMessage(notification.ChannelWhatsApp, "0812"))
	d.Wait()

	assert.Empty(t, email.sent())
}

func TestDispatcherSurvivesCanceledRequest(t *testing.T) {
	email := &fakeSender{channel: notification.ChannelEmail}
	d := notification.NewDispatcher(zap.NewNop(), time.Second, email)

	ctx, cancel := context.WithCancel(context.Background())
	d.Send(ctx, statusMessage(notification.ChannelEmail, "farmer@example.test"))
	cancel()
	d.Wait()

	assert.Len(t, email.sent(), 1)
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	failing := &fakeSender{channel: notification.ChannelEmail, err: errors.New("smtp down")}
	panicking := &fakeSender{channel: notification.ChannelWhatsApp, panics: true}
	d := notification.NewDispatcher(zap.NewNop(), time.Second, failing, panicking)

	assert.NotPanics(t, func() {
		d.Send(context.Background(), statusMessage(notification.ChannelEmail, "farmer@example.test"))
		d.Send(context.Background(), statusMessage(notification.ChannelWhatsApp, "0812"))
		d.Wait()
	})
	assert.Len(t, failing.sent(), 1)
}

func TestWhatsAppSender(t *testing.T) {
	var got struct {
		Phone   string `json:"phone"`
		Message string `json:"message"`
	}
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	sender := notification.NewWhatsAppSender(server.URL, "token-1")
	require.NoError(t, sender.Deliver(context.Background(), "0812-345", "", "halo"))

	assert.Equal(t, "Bearer token-1", auth)
	assert.Equal(t, "62812345", got.Phone)
	assert.Equal(t, "halo", got.Message)
}

func TestWhatsAppSenderGatewayError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	err := notification.NewWhatsAppSender(server.URL, "").Deliver(context.Background(), "0812", "", "halo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
}
