package email

import (
	"context"
	"fmt"

	"github.com/skylift/skybook/config"
	"github.com/skylift/skybook/internal/kafka"
	"github.com/wneessen/go-mail"
)

type Sender struct {
	client *mail.Client
	from   string
}

func NewSender(cfg config.SMTPConfig) (*Sender, error) {
	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
	)
	if err != nil {
		return nil, fmt.Errorf("init smtp client: %w", err)
	}
	return &Sender{client: c, from: cfg.From}, nil
}

// Send mails the booking confirmation. Attempted once; the worker logs
// failures and moves on.
func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	m := mail.NewMsg()
	if err := m.From(s.from); err != nil {
		return err
	}
	if err := m.To(event.ContactEmail); err != nil {
		return err
	}
	m.Subject(fmt.Sprintf("Your booking %s is %s", event.Reference, event.Status))
	m.SetBodyString(mail.TypeTextPlain, body(event))

	return s.client.DialAndSendWithContext(ctx, m)
}

func body(event kafka.BookingEvent) string {
	text := fmt.Sprintf("Hello %s,\n\nYour booking %s is %s.\n\nFlight: %d\n",
		event.ContactName, event.Reference, event.Status, event.FlightID)
	if event.ReturnFlightID != nil {
		text += fmt.Sprintf("Return flight: %d\n", *event.ReturnFlightID)
	}
	text += fmt.Sprintf("Passengers: %d\nTotal: %.2f\n\nThank you for flying with us.\n",
		event.PassengerCount, float64(event.TotalPriceCents)/100)
	return text
}
