// Package sms sends one-time codes to customers. The eskiz sender talks to
// the Eskiz.uz gateway; the log sender prints codes and backs development
// and tests.
package sms

import (
	"context"

	"github.com/komolbek/raadarenda-sub001/internal/logger"
)

// Sender delivers an SMS message to a normalized +998 phone number.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

type logSender struct{}

// NewLogSender returns a Sender that only logs the message.
func NewLogSender() Sender {
	return &logSender{}
}

func (s *logSender) Send(ctx context.Context, phone, message string) error {
	logger.InfoContext(ctx, "sms (log provider)", "phone", phone, "message", message)
	return nil
}
