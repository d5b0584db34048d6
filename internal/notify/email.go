// Package notify delivers back-office alerts. Email is optional: with no
// sendgrid key configured the notifier is a no-op.
package notify

import (
	"context"
	"fmt"

	"github.com/komolbek/raadarenda-sub001/internal/domain"
	"github.com/komolbek/raadarenda-sub001/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Notifier announces storefront events to the back office.
type Notifier interface {
	OrderCreated(ctx context.Context, order *domain.Order) error
}

type emailNotifier struct {
	client *sendgrid.Client
	from   string
	to     string
}

type nopNotifier struct{}

func (nopNotifier) OrderCreated(context.Context, *domain.Order) error { return nil }

// NewEmailNotifier returns a sendgrid-backed notifier, or a no-op one when
// the API key or recipient is missing.
func NewEmailNotifier(apiKey, from, to string) Notifier {
	if apiKey == "" || to == "" {
		return nopNotifier{}
	}
	return &emailNotifier{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
		to:     to,
	}
}

func (n *emailNotifier) OrderCreated(ctx context.Context, order *domain.Order) error {
	subject := fmt.Sprintf("Новый заказ %s", order.OrderNumber)
	body := fmt.Sprintf(
		"Заказ %s на сумму %d сум.\nАренда: %s — %s\nПозиций: %d\nТелефон: %s\nАдрес: %s, %s",
		order.OrderNumber, order.Total,
		order.RentalStartDate.Format("2006-01-02"), order.RentalEndDate.Format("2006-01-02"),
		len(order.Items), order.ContactPhone, order.AddressCity, order.AddressLine)

	message := mail.NewSingleEmail(
		mail.NewEmail("Raad Arenda", n.from), subject,
		mail.NewEmail("", n.to), body, body)

	resp, err := n.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
	}
	logger.InfoContext(ctx, "order alert sent", "order", order.OrderNumber, "to", n.to)
	return nil
}
