package mail

import (
	"context"
	"fmt"
	"strings"

	orderdom "straightenup/internal/domain/order"
)

// OrderConfirmationMailer builds and sends the order confirmation email
// through an EmailClient. It implements usecase.OrderMailer.
type OrderConfirmationMailer struct {
	client      EmailClient
	fromAddress string
}

func NewOrderConfirmationMailer(client EmailClient, fromAddress string) *OrderConfirmationMailer {
	return &OrderConfirmationMailer{
		client:      client,
		fromAddress: fromAddress,
	}
}

func (m *OrderConfirmationMailer) SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order) error {
	subject := fmt.Sprintf("Your StraightenUp order %s", o.ID)

	var lines strings.Builder
	for _, it := range o.Items {
		fmt.Fprintf(&lines, "  %s x%d  %s\n", it.Name, it.Qty, formatCents(int64(it.Qty)*it.UnitPriceCents))
	}

	body := fmt.Sprintf(
		`Thank you for your order.

Order ID: %s

%s
  Subtotal: %s
  Shipping: %s
  Total:    %s

Shipping to:
  %s

We will email you again once your order ships.

--
StraightenUp`,
		o.ID,
		lines.String(),
		formatCents(o.SubtotalCents),
		formatCents(o.ShippingCents),
		formatCents(o.TotalCents),
		formatAddress(o.ShippingAddress),
	)

	return m.client.Send(ctx, m.fromAddress, strings.TrimSpace(toEmail), subject, body)
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func formatAddress(a orderdom.Address) string {
	parts := []string{a.Line1}
	if a.Line2 != "" {
		parts = append(parts, a.Line2)
	}
	locality := a.City
	if a.State != "" {
		locality += ", " + a.State
	}
	parts = append(parts, locality+" "+a.PostalCode, a.Country)
	return strings.Join(parts, "\n  ")
}
