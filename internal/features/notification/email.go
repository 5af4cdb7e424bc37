package notification

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTPSender delivers HTML email through an authenticated SMTP relay
type SMTPSender struct {
	cfg  SMTPConfig
	from string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPSender(cfg SMTPConfig, from string) *SMTPSender {
	return &SMTPSender{cfg: cfg, from: from, send: smtp.SendMail}
}

func (s *SMTPSender) Channel() Channel {
	return ChannelEmail
}

func (s *SMTPSender) Deliver(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	auth := smtp.PlainAuth(
		"",
		s.cfg.Username,
		s.cfg.Password,
		s.cfg.Host,
	)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	return s.send(addr, auth, s.from, []string{recipient}, buildMIME(s.from, recipient, subject, body))
}

func buildMIME(from, to, subject, body string) []byte {
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=\"UTF-8\""},
	}

	var msg strings.Builder
	for _, h := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", h[0], h[1]))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return []byte(msg.String())
}
