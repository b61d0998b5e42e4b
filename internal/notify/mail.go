// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notify sends the short run summary mail that points the reader
// at the published report.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

// RetryDelay is the first wait between send attempts; it doubles each
// attempt. Tests override this to avoid real sleeps.
var RetryDelay = 2 * time.Second

// implicitTLSPort is the SMTPS port; any other port uses STARTTLS.
const implicitTLSPort = 465

// Summary is what the mail reports about one run.
type Summary struct {
	Title string
	Date  time.Time
	Count int

	// URL is where the report can be read online; empty when unpublished.
	URL string

	// Path is the local report file.
	Path string
}

// sendFunc matches smtp.SendMail.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer delivers summaries over SMTP.
type Mailer struct {
	cfg  types.MailConfig
	send sendFunc
	out  io.Writer
}

// NewMailer returns a mailer for cfg. Progress goes to w.
func NewMailer(cfg types.MailConfig, w io.Writer) *Mailer {
	if w == nil {
		w = io.Discard
	}
	m := &Mailer{cfg: cfg, out: w, send: smtp.SendMail}
	if cfg.Port == implicitTLSPort {
		m.send = sendImplicitTLS
	}
	return m
}

// Notify sends s. It returns false without error when credentials are
// missing. Send failures are retried up to MaxAttempts times.
func (m *Mailer) Notify(ctx context.Context, s Summary) (bool, error) {
	if !m.cfg.Configured() {
		fmt.Fprintln(m.out, "skipped: mail (GMAIL_SENDER, GMAIL_RECEIVER, GMAIL_APP_PASSWORD not all set)")
		return false, nil
	}

	msg := BuildMessage(m.cfg.Sender, m.cfg.Receiver, s)
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	auth := smtp.PlainAuth("", m.cfg.Sender, m.cfg.Password, m.cfg.Host)

	attempts := m.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			wait := RetryDelay << (i - 1)
			fmt.Fprintf(m.out, "  retrying mail in %v...\n", wait)
			select {
			case <-ctx.Done():
				return false, ctx.Err()
			case <-time.After(wait):
			}
		}
		if lastErr = m.send(addr, auth, m.cfg.Sender, []string{m.cfg.Receiver}, msg); lastErr == nil {
			fmt.Fprintf(m.out, "mail sent to %s\n", m.cfg.Receiver)
			return true, nil
		}
		fmt.Fprintf(m.out, "warning: mail attempt %d/%d failed: %v\n", i+1, attempts, lastErr)
	}
	return false, fmt.Errorf("sending mail after %d attempts: %w", attempts, lastErr)
}

// Subject returns the mail subject for s.
func Subject(s Summary) string {
	title := s.Title
	if title == "" {
		title = "arXiv daily report"
	}
	return fmt.Sprintf("%s (%s)", title, s.Date.Format("2006-01-02"))
}

// Body returns the plain-text mail body for s.
func Body(s Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", Subject(s))
	fmt.Fprintf(&b, "Relevant papers today: %d\n\n", s.Count)
	if s.URL != "" {
		fmt.Fprintf(&b, "View report: %s\n\n", s.URL)
		fmt.Fprintf(&b, "Local file: %s\n", s.Path)
	} else {
		fmt.Fprintf(&b, "Report file: %s\n", s.Path)
	}
	return b.String()
}

// BuildMessage assembles an RFC 5322 message with a UTF-8 plain-text body.
func BuildMessage(from, to string, s Summary) []byte {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", Subject(s)))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(Body(s), "\n", "\r\n"))
	return []byte(msg.String())
}

// sendImplicitTLS is smtp.SendMail over a TLS connection from the first
// byte, as SMTPS on port 465 requires.
func sendImplicitTLS(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	conn, err := tls.DialWithDialer(&net.Dialer{Timeout: 30 * time.Second}, "tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("dialing %s: %w", addr, err)
	}
	c, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("starting SMTP session: %w", err)
	}
	defer c.Close()

	if a != nil {
		if err := c.Auth(a); err != nil {
			return fmt.Errorf("SMTP auth failed: %w (check GMAIL_APP_PASSWORD is an app password)", err)
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
