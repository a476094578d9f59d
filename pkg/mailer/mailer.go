package mailer

import (
	"context"

	"gopkg.in/gomail.v2"
)

type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string, ssl bool) *SMTPMailer {
	dialer := gomail.NewDialer(host, port, username, password)
	dialer.SSL = ssl

	return &SMTPMailer{
		dialer: dialer,
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	// gomail dials synchronously; honor cancellation before the attempt since
	// the dialer itself has no context support.
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	return m.dialer.DialAndSend(msg)
}
