package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

const defaultSendGridHost = "https://api.sendgrid.com"

// SendGridMailer sends through the SendGrid v3 mail API
type SendGridMailer struct {
	APIKey   string
	Host     string
	FromName string
	FromMail string
}

func NewSendGridMailer(apiKey, fromName, fromMail string) *SendGridMailer {
	return &SendGridMailer{
		APIKey:   apiKey,
		Host:     defaultSendGridHost,
		FromName: fromName,
		FromMail: fromMail,
	}
}

// Send delivers email. An empty From falls back to the mailer's sender.
func (s *SendGridMailer) Send(ctx context.Context, e Email) (err error) {
	start := time.Now()
	defer func() { observe("sendgrid", start, err) }()

	fromMail := e.From
	if fromMail == "" {
		fromMail = s.FromMail
	}

	message := mail.NewV3Mail()
	message.SetFrom(mail.NewEmail(s.FromName, fromMail))
	message.Subject = e.Subject

	p := mail.NewPersonalization()
	for _, to := range e.To {
		p.AddTos(mail.NewEmail("", to))
	}
	message.AddPersonalizations(p)

	if e.Text != "" {
		message.AddContent(mail.NewContent("text/plain", e.Text))
	}
	if e.HTML != "" {
		message.AddContent(mail.NewContent("text/html", e.HTML))
	}
	for k, v := range e.Headers {
		message.SetHeader(k, v)
	}

	host := s.Host
	if host == "" {
		host = defaultSendGridHost
	}
	request := sendgrid.GetRequest(s.APIKey, "/v3/mail/send", host)
	request.Method = rest.Post
	request.Body = mail.GetRequestBody(message)

	resp, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid API error: %d %s", resp.StatusCode, resp.Body)
	}
	return nil
}
