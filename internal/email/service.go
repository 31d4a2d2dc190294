package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/barberbook/barber-api/internal/model"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to string, booking *model.Booking) error
	SendBookingCancellation(ctx context.Context, to string, booking *model.Booking) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendBookingConfirmation(_ context.Context, to string, booking *model.Booking) error {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf(
		"Your appointment on %s at %s (%d minutes) is confirmed.",
		booking.Date, booking.Time, booking.DurationMinutes,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) SendBookingCancellation(_ context.Context, to string, booking *model.Booking) error {
	subject := "Your booking was cancelled"
	body := fmt.Sprintf(
		"Your appointment on %s at %s has been cancelled.",
		booking.Date, booking.Time,
	)
	return s.send(to, subject, body)
}

func (s *smtpService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopService struct{}

// NewNoop returns a sender that drops all mail; used when SMTP is not
// configured and in tests.
func NewNoop() Service {
	return noopService{}
}

func (noopService) SendBookingConfirmation(context.Context, string, *model.Booking) error {
	return nil
}

func (noopService) SendBookingCancellation(context.Context, string, *model.Booking) error {
	return nil
}
