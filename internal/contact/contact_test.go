package contact

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	msg := string(Compose("me@example.com", "inbox@example.com", Form{
		Name:    "Ada\r\nBcc: evil@example.com",
		Email:   "ada@example.com",
		Message: "Hello there",
	}))

	assert.True(t, strings.HasPrefix(msg, "To: inbox@example.com\r\n"))
	assert.Contains(t, msg, "Subject: Portfolio Contact: Ada  Bcc: evil@example.com\r\n")
	assert.Contains(t, msg, "Reply-To: ada@example.com\r\n")
	assert.Contains(t, msg, "Message:\nHello there\n")
	assert.NotContains(t, msg, "Phone:")
	assert.NotContains(t, msg, "\r\nBcc:")
}

func TestSMTPMailerRequiresCredentials(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: "587"})
	assert.ErrorIs(t, m.Send(Form{Name: "a"}), ErrNotConfigured)

	m = NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "u@example.com", Pass: "p"})
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("sent without a recipient")
		return nil
	}
	assert.ErrorIs(t, m.Send(Form{Name: "a"}), ErrNotConfigured)
}

func TestSMTPMailerSend(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "smtp.example.com", Port: "587", User: "u@example.com", Pass: "p", To: "to@example.com"})

	var gotAddr, gotFrom string
	var gotTo []string
	m.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo = addr, from, to
		return nil
	}
	require.NoError(t, m.Send(Form{Name: "Ada", Email: "ada@example.com", Message: "hi"}))
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "u@example.com", gotFrom)
	assert.Equal(t, []string{"to@example.com"}, gotTo)

	boom := errors.New("connection refused")
	m.sendMail = func(string, smtp.Auth, string, []string, []byte) error { return boom }
	assert.ErrorIs(t, m.Send(Form{Name: "Ada"}), boom)
}
