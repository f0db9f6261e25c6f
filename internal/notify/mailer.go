// Package notify sends contact form notifications by email.
package notify

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"html/template"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"portfolio-api/internal/models"

	"go.uber.org/zap"
)

// Mailer delivers a notification for a new contact message.
type Mailer interface {
	NotifyContact(ctx context.Context, msg *models.ContactMessage) error
}

// SMTPConfig holds the outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	To       string
}

// Enabled reports whether enough settings are present to send mail.
func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.To != ""
}

// DefaultSendTimeout bounds one SMTP delivery, dial included.
const DefaultSendTimeout = 15 * time.Second

type sendFunc func(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer sends notifications through an SMTP relay.
type SMTPMailer struct {
	cfg     SMTPConfig
	send    sendFunc
	timeout time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

// New returns an SMTPMailer, or a no-op mailer when cfg is not enabled.
func New(cfg SMTPConfig, logger *zap.Logger) Mailer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		logger.Info("mail-disabled")
		return NopMailer{}
	}
	return &SMTPMailer{cfg: cfg, send: sendMail, timeout: DefaultSendTimeout, now: time.Now, logger: logger}
}

// NopMailer drops every notification.
type NopMailer struct{}

// NotifyContact implements Mailer.
func (NopMailer) NotifyContact(context.Context, *models.ContactMessage) error { return nil }

var contactTemplate = template.Must(template.New("contact").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h1>New Contact Message</h1>
  <p><strong>From:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
  <p><strong>Subject:</strong> {{.Subject}}</p>
  <p style="white-space: pre-wrap;">{{.Message}}</p>
  <p><a href="mailto:{{.Email}}?subject={{.ReplySubject}}">Reply to {{.Name}}</a></p>
  <p style="color: #9ca3af; font-size: 13px;">Received: {{.Received}}</p>
</div>
`))

// Subject returns the notification subject for a message.
func Subject(msg *models.ContactMessage) string {
	subject := msg.Subject
	if subject == "" {
		subject = models.DefaultSubject
	}
	return "Portfolio Contact: " + subject
}

// NotifyContact emails the site owner with Reply-To set to the sender.
func (m *SMTPMailer) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := m.render(msg)
	if err != nil {
		return err
	}

	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	var a smtp.Auth
	if m.cfg.User != "" {
		a = smtp.PlainAuth("", m.cfg.User, m.cfg.Password, m.cfg.Host)
	}
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}
	if err := m.send(ctx, addr, a, m.from(), []string{m.cfg.To}, body); err != nil {
		return fmt.Errorf("send contact notification: %w", err)
	}
	m.logger.Info("mail-sent", zap.String("message-id", msg.ID))
	return nil
}

func (m *SMTPMailer) render(msg *models.ContactMessage) ([]byte, error) {
	subject := msg.Subject
	if subject == "" {
		subject = models.DefaultSubject
	}
	var html bytes.Buffer
	err := contactTemplate.Execute(&html, map[string]string{
		"Name":         msg.Name,
		"Email":        msg.Email,
		"Subject":      subject,
		"Message":      msg.Message,
		"ReplySubject": "Re: " + subject,
		"Received":     m.now().Format("Monday, January 2, 2006 at 3:04 PM"),
	})
	if err != nil {
		return nil, fmt.Errorf("render contact notification: %w", err)
	}

	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, headerValue(v)) }
	header("From", m.from())
	header("To", m.cfg.To)
	header("Reply-To", msg.Email)
	header("Subject", mime.QEncoding.Encode("utf-8", headerValue(Subject(msg))))
	header("Date", m.now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="UTF-8"`)
	b.WriteString("\r\n")
	b.Write(html.Bytes())
	return b.Bytes(), nil
}

func (m *SMTPMailer) from() string {
	if m.cfg.User != "" {
		return m.cfg.User
	}
	return m.cfg.To
}

// headerValue strips line breaks so user input cannot add headers.
func headerValue(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// sendMail delivers msg like smtp.SendMail, but the dial and every exchange
// with the relay are bounded by ctx.
func sendMail(ctx context.Context, addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	c, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer c.Close()
	if ok, _ := c.Extension("STARTTLS"); ok {
		if err := c.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}
	if a != nil {
		if err := c.Auth(a); err != nil {
			return err
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
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}
