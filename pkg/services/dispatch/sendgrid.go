package dispatch

import (
	"context"
	"fmt"

	"github.com/clocksynk/dashboard/pkg/models/domain"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
}

type mailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridDispatcher struct {
	client mailSender
	from   *mail.Email
}

func NewSendGridDispatcher(cfg SendGridConfig) (Dispatcher, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("sendgrid api key is empty")
	}
	return newSendGridDispatcher(sendgrid.NewSendClient(cfg.APIKey), cfg), nil
}

func newSendGridDispatcher(client mailSender, cfg SendGridConfig) *sendGridDispatcher {
	name := cfg.FromName
	if name == "" {
		name = "ClockSynk"
	}
	return &sendGridDispatcher{
		client: client,
		from:   mail.NewEmail(name, cfg.FromEmail),
	}
}

func (d *sendGridDispatcher) Dispatch(ctx context.Context, msg domain.ReportMessage) (Result, error) {
	if len(msg.Recipients) == 0 {
		return Result{}, fmt.Errorf("no recipients for %q", msg.Subject)
	}

	response, err := d.client.SendWithContext(ctx, buildMail(d.from, msg))
	if err != nil {
		return Result{}, fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if response.StatusCode >= 400 {
		return Result{}, fmt.Errorf("SendGrid API error: status %d, body: %s", response.StatusCode, response.Body)
	}

	return Result{Delivered: true}, nil
}

func buildMail(from *mail.Email, msg domain.ReportMessage) *mail.SGMailV3 {
	p := mail.NewPersonalization()
	for _, addr := range msg.Recipients {
		p.AddTos(mail.NewEmail("", addr))
	}

	m := mail.NewV3Mail()
	m.SetFrom(from)
	m.Subject = msg.Subject
	m.AddPersonalizations(p)
	if msg.Text != "" {
		m.AddContent(mail.NewContent("text/plain", msg.Text))
	}
	m.AddContent(mail.NewContent("text/html", msg.HTML))
	return m
}
