package mailer

import (
	"context"
	"time"

	"github.com/Sumit-Kumar-0/whatsapp-backend/internal/metrics"
)

// Mailer delivers one email
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// Email is a single outgoing message
type Email struct {
	From    string
	To      []string
	Subject string
	Text    string
	HTML    string
	Headers map[string]string
}

type EmailOption func(*Email)

func NewEmail(from string, to []string, opts ...EmailOption) Email {
	e := Email{
		From: from,
		To:   to,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

func WithSubject(sub string) EmailOption {
	return func(e *Email) {
		e.Subject = sub
	}
}

func WithText(text string) EmailOption {
	return func(e *Email) {
		e.Text = text
	}
}

func WithHTML(html string) EmailOption {
	return func(e *Email) {
		e.HTML = html
	}
}

func Header(key, value string) EmailOption {
	return func(e *Email) {
		if e.Headers == nil {
			e.Headers = make(map[string]string)
		}
		e.Headers[key] = value
	}
}

func observe(provider string, start time.Time, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	metrics.EmailsSentTotal.WithLabelValues(provider, status).Inc()
	metrics.ObserveExternalCall(provider, "send_mail", failureReason(err), time.Since(start))
}

func failureReason(err error) string {
	if err == nil {
		return ""
	}
	return "send"
}
