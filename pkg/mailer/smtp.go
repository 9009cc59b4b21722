package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"sort"
	"strings"
	"time"
)

// SMTPMailer sends through an SMTP relay. Port 465 uses implicit TLS, other
// ports go through net/smtp.SendMail which upgrades with STARTTLS when offered.
type SMTPMailer struct {
	Host      string
	Port      int
	Username  string
	Password  string
	UseAuth   bool
	TLSConfig *tls.Config
	Timeout   time.Duration
}

func (m *SMTPMailer) tlsConfig() *tls.Config {
	if m.TLSConfig != nil {
		return m.TLSConfig
	}
	return &tls.Config{ServerName: m.Host}
}

func buildMessage(email Email) []byte {
	headers := map[string]string{
		"From":         email.From,
		"To":           strings.Join(email.To, ","),
		"Subject":      email.Subject,
		"MIME-Version": "1.0",
	}
	body := email.Text
	if email.HTML != "" {
		headers["Content-Type"] = "text/html; charset=\"UTF-8\""
		body = email.HTML
	} else {
		headers["Content-Type"] = "text/plain; charset=\"UTF-8\""
	}
	for k, v := range email.Headers {
		headers[k] = v
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, headers[k]))
	}
	msg.WriteString("\r\n" + body)
	return []byte(msg.String())
}

// Send delivers email
func (m *SMTPMailer) Send(ctx context.Context, email Email) (err error) {
	start := time.Now()
	defer func() { observe("smtp", start, err) }()

	addr := fmt.Sprintf("%s:%d", m.Host, m.Port)
	msg := buildMessage(email)

	var auth smtp.Auth
	if m.UseAuth {
		auth = smtp.PlainAuth("", m.Username, m.Password, m.Host)
	}

	if m.Port != 465 {
		return smtp.SendMail(addr, auth, email.From, email.To, msg)
	}

	timeout := m.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	dialer := &tls.Dialer{NetDialer: &net.Dialer{Timeout: timeout}, Config: m.tlsConfig()}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}

	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if auth != nil {
		if err = c.Auth(auth); err != nil {
			return err
		}
	}
	if err = c.Mail(email.From); err != nil {
		return err
	}
	for _, recipient := range email.To {
		if err = c.Rcpt(recipient); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err = w.Write(msg); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
