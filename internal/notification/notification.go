// Package notification sends best-effort order notifications across up
// to three channels. Channels are independently optional: one that is
// not configured logs the message instead of sending it, and a failure
// in one channel never blocks the others or the order update.
package notification

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/config"
	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

// Message is the channel-independent notification content.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a message over one channel.
type Sender interface {
	// Send delivers the message. Returns an error on delivery failure;
	// an unconfigured sender logs the message and reports
	// ErrNotConfigured.
	Send(ctx context.Context, msg Message) error
}

// ErrNotConfigured marks a channel without provider configuration.
var ErrNotConfigured = fmt.Errorf("channel not configured")

// Result is the per-channel delivery summary returned to the caller.
// It is informational only: never persisted, never retried.
type Result struct {
	Email    bool `json:"email"`
	SMS      bool `json:"sms"`
	WhatsApp bool `json:"whatsapp"`
}

// Dispatcher fans an order notification out to all channels.
type Dispatcher struct {
	email    Sender
	sms      Sender
	whatsapp Sender
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher with one sender per channel built
// from the notification configuration.
func NewDispatcher(cfg config.NotificationConfig, logger zerolog.Logger) *Dispatcher {
	logger = logger.With().Str("component", "notification").Logger()
	return &Dispatcher{
		email:    newEmailSender(cfg, logger),
		sms:      newSMSSender(cfg, logger),
		whatsapp: newWhatsAppSender(cfg, logger),
		logger:   logger,
	}
}

// NewDispatcherWithSenders wires explicit senders; used by tests.
func NewDispatcherWithSenders(email, sms, whatsapp Sender, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{email: email, sms: sms, whatsapp: whatsapp, logger: logger}
}

// OrderConfirmed notifies the buyer that their order was confirmed.
// All three channels run concurrently; the call returns once every
// channel has either delivered, failed, or been skipped.
func (d *Dispatcher) OrderConfirmed(ctx context.Context, order *model.Order) Result {
	subject := "Your Janu Collections order is confirmed"
	body := fmt.Sprintf(
		"Hi %s, your order %s has been confirmed. Total: ₹%.2f. We will notify you when it ships.",
		order.ShippingInfo.FullName, order.ID, order.TotalAmount,
	)

	var result Result
	var wg sync.WaitGroup

	dispatch := func(sender Sender, to, channel string, ok *bool) {
		defer wg.Done()
		if to == "" {
			d.logger.Debug().Str("channel", channel).Msg("no recipient for channel, skipping")
			return
		}
		err := sender.Send(ctx, Message{To: to, Subject: subject, Body: body})
		if err != nil {
			d.logger.Warn().
				Err(err).
				Str("channel", channel).
				Str("order_id", order.ID.String()).
				Msg("notification delivery failed")
			return
		}
		*ok = true
	}

	wg.Add(3)
	go dispatch(d.email, order.ShippingInfo.Email, "email", &result.Email)
	go dispatch(d.sms, order.ShippingInfo.Phone, "sms", &result.SMS)
	go dispatch(d.whatsapp, order.ShippingInfo.Phone, "whatsapp", &result.WhatsApp)
	wg.Wait()

	d.logger.Info().
		Str("order_id", order.ID.String()).
		Bool("email", result.Email).
		Bool("sms", result.SMS).
		Bool("whatsapp", result.WhatsApp).
		Msg("order confirmation notifications dispatched")

	return result
}
