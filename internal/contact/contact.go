// Package contact handles the contact form: validation and delivery by mail.
package contact

import (
	"errors"
	"fmt"
	"net/smtp"
	"strings"
)

var ErrNotConfigured = errors.New("SMTP credentials or recipient not configured")

// Form is the contact form payload, bound and validated by gin.
type Form struct {
	Name    string `form:"fullName" json:"fullName" binding:"required,max=100"`
	Email   string `form:"email" json:"email" binding:"required,email,max=254"`
	Phone   string `form:"phone" json:"phone" binding:"omitempty,max=32"`
	Message string `form:"message" json:"message" binding:"required,min=2,max=5000"`
}

// Mailer delivers a submitted form.
type Mailer interface {
	Send(f Form) error
}

type SMTPConfig struct {
	Host string
	Port string
	User string
	Pass string
	To   string
}

// SMTPMailer sends forms through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg      SMTPConfig
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(cfg SMTPConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, sendMail: smtp.SendMail}
}

func (m *SMTPMailer) Send(f Form) error {
	if m.cfg.User == "" || m.cfg.Pass == "" || m.cfg.To == "" {
		return ErrNotConfigured
	}

	auth := smtp.PlainAuth("", m.cfg.User, m.cfg.Pass, m.cfg.Host)
	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := m.sendMail(addr, auth, m.cfg.User, []string{m.cfg.To}, Compose(m.cfg.User, m.cfg.To, f)); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// Compose builds the raw message for f. Header values are stripped of line
// breaks so form input cannot inject headers.
func Compose(from, to string, f Form) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine(f.Name))

	var body strings.Builder
	body.WriteString("\nNew contact form submission from your portfolio:\n\n")
	fmt.Fprintf(&body, "Name: %s\n", oneLine(f.Name))
	fmt.Fprintf(&body, "Email: %s\n", f.Email)
	if f.Phone != "" {
		fmt.Fprintf(&body, "Phone: %s\n", f.Phone)
	}
	fmt.Fprintf(&body, "Message:\n%s\n\n---\nSent from your portfolio contact form\n", f.Message)

	msg := "To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"Reply-To: " + oneLine(f.Email) + "\r\n" +
		"\r\n" +
		body.String() + "\r\n"
	return []byte(msg)
}

func oneLine(s string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
}
