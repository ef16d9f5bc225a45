// Package notify delivers booking inquiries to staff by e-mail.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/dmitrijs2005/toursite/internal/locale"
	"github.com/dmitrijs2005/toursite/internal/logging"
	"github.com/dmitrijs2005/toursite/internal/models"
	"github.com/dmitrijs2005/toursite/internal/server/config"
	"github.com/dmitrijs2005/toursite/internal/server/services"
)

const sendTimeout = 15 * time.Second

// New returns an SMTP notifier when cfg has SMTP settings and a recipient,
// otherwise a notifier that only logs.
func New(cfg *config.Config, l logging.Logger) services.BookingNotifier {
	if !cfg.NotificationsEnabled() {
		return Nop{logger: l}
	}
	return NewMailer(cfg, l)
}

// Nop drops notifications.
type Nop struct {
	logger logging.Logger
}

func (n Nop) NotifyBooking(ctx context.Context, b *models.BookingInquiry, _ *models.Tour) error {
	if n.logger != nil {
		n.logger.Debug(ctx, "booking notification skipped, SMTP not configured", "id", b.ID)
	}
	return nil
}

type Mailer struct {
	host     string
	port     int
	user     string
	password string
	from     string
	to       string
	logger   logging.Logger
	send     func(ctx context.Context, m *mail.Msg) error
}

func NewMailer(cfg *config.Config, l logging.Logger) *Mailer {
	m := &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		to:       cfg.BookingNotifyTo,
		logger:   l.With("module", "notify"),
	}
	m.send = m.dialAndSend
	return m
}

// NotifyBooking e-mails the inquiry to the configured recipient. Replies go
// to the visitor.
func (m *Mailer) NotifyBooking(ctx context.Context, b *models.BookingInquiry, tour *models.Tour) error {
	msg, err := m.message(b, tour)
	if err != nil {
		return err
	}
	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("send booking notification (host=%s port=%d): %w", m.host, m.port, err)
	}
	m.logger.Info(ctx, "booking notification sent", "id", b.ID, "to", m.to)
	return nil
}

func (m *Mailer) message(b *models.BookingInquiry, tour *models.Tour) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.from, err)
	}
	if err := msg.To(m.to); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", m.to, err)
	}
	if err := msg.ReplyTo(b.Email); err != nil {
		return nil, fmt.Errorf("invalid reply-to %q: %w", b.Email, err)
	}

	tourName := tour.Name.In(locale.Primary)
	msg.Subject("New booking inquiry: " + tourName)
	msg.SetDate()
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, bookingBody(b, tourName))
	return msg, nil
}

func bookingBody(b *models.BookingInquiry, tourName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tour:      %s\n", tourName)
	fmt.Fprintf(&sb, "Name:      %s\n", b.Name)
	fmt.Fprintf(&sb, "E-mail:    %s\n", b.Email)
	if b.Phone != "" {
		fmt.Fprintf(&sb, "Phone:     %s\n", b.Phone)
	}
	fmt.Fprintf(&sb, "Travelers: %d\n", b.Travelers)
	if b.TravelDate != nil {
		fmt.Fprintf(&sb, "Date:      %s\n", b.TravelDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&sb, "Language:  %s\n", b.Language)
	if b.Message != "" {
		fmt.Fprintf(&sb, "\n%s\n", b.Message)
	}
	fmt.Fprintf(&sb, "\nInquiry %s received %s\n", b.ID, b.CreatedAt.Format(time.RFC3339))
	return sb.String()
}

func (m *Mailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(m.port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	}
	if m.user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(m.user),
			mail.WithPassword(m.password),
		)
	}
	client, err := mail.NewClient(m.host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}
