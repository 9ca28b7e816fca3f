// Package mailer sends transactional email over SMTP. Delivery is
// best-effort; callers decide whether a send failure is fatal.
package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"mosaic/internal/config"
)

// Mailer sends transactional messages to a single recipient.
type Mailer interface {
	SendVerificationCode(ctx context.Context, to, code string) error
}

// SMTPMailer implements Mailer over a plain SMTP connection with either
// implicit SSL (port 465) or STARTTLS (port 587).
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	subject  string
	useSSL   bool
	timeout  time.Duration
}

// NewSMTP builds an SMTPMailer from configuration. Returns nil when SMTP_HOST
// is not configured so callers can skip email dispatch entirely.
func NewSMTP(cfg *config.Config) *SMTPMailer {
	if cfg == nil || cfg.SMTPHost == "" {
		return nil
	}

	timeout := time.Duration(cfg.SMTPTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUsername
	}

	return &SMTPMailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     from,
		subject:  cfg.VerifyEmailSubject,
		useSSL:   cfg.SMTPUseSSL,
		timeout:  timeout,
	}
}

// SendVerificationCode emails the verification code to the given address.
func (m *SMTPMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	body := fmt.Sprintf("Your verification code: %s\r\n", code)
	return m.send(ctx, to, m.subject, body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	message := buildMessage(m.from, to, subject, body)

	if m.useSSL {
		return m.sendWithSSL(ctx, to, message)
	}
	return m.sendWithStartTLS(ctx, to, message)
}

// buildMessage assembles the RFC 5322 message with headers.
func buildMessage(from, to, subject, body string) string {
	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s\r\n", from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)
	return msg.String()
}

func (m *SMTPMailer) addr() string {
	return net.JoinHostPort(m.host, fmt.Sprintf("%d", m.port))
}

func (m *SMTPMailer) deadline(ctx context.Context) time.Time {
	if dl, ok := ctx.Deadline(); ok {
		return dl
	}
	return time.Now().Add(m.timeout)
}

// sendWithSSL delivers over an implicit-TLS connection (port 465).
func (m *SMTPMailer) sendWithSSL(ctx context.Context, to, message string) error {
	dialer := &net.Dialer{Timeout: m.timeout, Deadline: m.deadline(ctx)}

	tlsConfig := &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}
	netConn, err := tls.DialWithDialer(dialer, "tcp", m.addr(), tlsConfig)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server (SSL) %s: %w", m.addr(), err)
	}
	defer func() { _ = netConn.Close() }()

	_ = netConn.SetDeadline(m.deadline(ctx))
	return m.deliver(netConn, to, message, false)
}

// sendWithStartTLS delivers over a plain connection upgraded via STARTTLS
// (port 587).
func (m *SMTPMailer) sendWithStartTLS(ctx context.Context, to, message string) error {
	dialer := &net.Dialer{Timeout: m.timeout}

	netConn, err := dialer.DialContext(ctx, "tcp", m.addr())
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server %s: %w", m.addr(), err)
	}
	defer func() { _ = netConn.Close() }()

	_ = netConn.SetDeadline(m.deadline(ctx))
	return m.deliver(netConn, to, message, true)
}

func (m *SMTPMailer) deliver(netConn net.Conn, to, message string, startTLS bool) error {
	conn, err := smtp.NewClient(netConn, m.host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := conn.Hello("localhost"); err != nil {
		return fmt.Errorf("failed to send HELO: %w", err)
	}

	if startTLS {
		tlsConfig := &tls.Config{ServerName: m.host, MinVersion: tls.VersionTLS12}
		if err := conn.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("failed to start TLS: %w", err)
		}
	}

	if m.username != "" && m.password != "" {
		auth := smtp.PlainAuth("", m.username, m.password, m.host)
		if err := conn.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate (user: %s): %w", m.username, err)
		}
	}

	if err := conn.Mail(m.from); err != nil {
		return fmt.Errorf("failed to set sender (%s): %w", m.from, err)
	}
	if err := conn.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient (%s): %w", to, err)
	}

	w, err := conn.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err := w.Write([]byte(message)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return conn.Quit()
}
