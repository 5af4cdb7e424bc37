package notification

import (
	"context"
	"sync"
	"time"

	"seedcare/internal/config"
	"seedcare/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Notifier sends customer notifications. Send never reports failure to the caller;
// implementations log and count delivery problems themselves.
type Notifier interface {
	Send(ctx context.Context, msg Message)
}

// Sender delivers a rendered message over one channel
type Sender interface {
	Channel() Channel
	Deliver(ctx context.Context, recipient, subject, body string) error
}

// Dispatcher renders messages and delivers them in the background
type Dispatcher struct {
	senders map[Channel]Sender
	log     *zap.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewDispatcher(log *zap.Logger, timeout time.Duration, senders ...Sender) *Dispatcher {
	d := &Dispatcher{
		senders: make(map[Channel]Sender),
		log:     log,
		timeout: timeout,
	}
	for _, s := range senders {
		d.senders[s.Channel()] = s
	}
	return d
}

// NewDispatcherFromConfig wires the configured channels and drains pending deliveries on shutdown
func NewDispatcherFromConfig(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) *Dispatcher {
	var senders []Sender
	if cfg.SMTPHost != "" {
		senders = append(senders, NewSMTPSender(SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
		}, cfg.SMTPFrom))
	} else {
		log.Warn("SMTP_HOST not set, email notifications disabled")
	}
	if cfg.WhatsAppAPIURL != "" {
		senders = append(senders, NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppAPIToken))
	} else {
		log.Warn("WHATSAPP_API_URL not set, WhatsApp notifications disabled")
	}

	d := NewDispatcher(log, time.Duration(cfg.NotifyTimeoutSecs)*time.Second, senders...)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			d.Wait()
			return nil
		},
	})

	return d
}

// Send queues delivery and returns immediately
func (d *Dispatcher) Send(ctx context.Context, msg Message) {
	if msg.Recipient == "" {
		d.log.Debug("Skipping notification without recipient",
			zap.String("channel", string(msg.Channel)),
			zap.String("template", string(msg.Template)))
		return
	}

	sender, ok := d.senders[msg.Channel]
	if !ok {
		metrics.NotificationsSent.WithLabelValues(string(msg.Channel), string(msg.Template), "disabled").Inc()
		return
	}

	subject, body, err := Render(msg)
	if err != nil {
		d.log.Error("Failed to render notification", zap.Error(err))
		metrics.NotificationsSent.WithLabelValues(string(msg.Channel), string(msg.Template), "failed").Inc()
		return
	}

	deliveryID := uuid.NewString()
	// Delivery must outlive the request that triggered it
	bg := context.WithoutCancel(ctx)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				d.log.Error("Notification sender panicked", zap.String("delivery_id", deliveryID), zap.Any("panic", r))
			}
		}()

		dctx, cancel := context.WithTimeout(bg, d.timeout)
		defer cancel()

		if err := sender.Deliver(dctx, msg.Recipient, subject, body); err != nil {
			d.log.Warn("Notification delivery failed",
				zap.String("delivery_id", deliveryID),
				zap.String("channel", string(msg.Channel)),
				zap.String("template", string(msg.Template)),
				zap.String("complaint_id", msg.Variables["complaint_id"]),
				zap.Error(err))
			metrics.NotificationsSent.WithLabelValues(string(msg.Channel), string(msg.Template), "failed").Inc()
			return
		}

		d.log.Info("Notification delivered",
			zap.String("delivery_id", deliveryID),
			zap.String("channel", string(msg.Channel)),
			zap.String("template", string(msg.Template)),
			zap.String("complaint_id", msg.Variables["complaint_id"]))
		metrics.NotificationsSent.WithLabelValues(string(msg.Channel), string(msg.Template), "sent").Inc()
	}()
}

// Wait blocks until in-flight deliveries finish
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
