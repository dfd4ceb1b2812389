package mail

import (
	"bytes"
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/unihub/portal/internal/core/ports"
)

func TestSMTPMailer_Send(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "mail.uni.test", Port: 2525, Username: "portal", Password: "pw", From: "portal@uni.test"})

	var (
		gotAddr string
		gotAuth smtp.Auth
		gotTo   []string
		gotMsg  []byte
	)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotTo, gotMsg = addr, a, to, msg
		return nil
	}

	err := m.Send(context.Background(), ports.Message{To: "anna@uni.test", Subject: "Course enrollment", Body: "line one\nline two"})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotAddr != "mail.uni.test:2525" {
		t.Fatalf("unexpected addr %q", gotAddr)
	}
	if gotAuth == nil {
		t.Fatalf("expected PLAIN auth when a username is configured")
	}
	if len(gotTo) != 1 || gotTo[0] != "anna@uni.test" {
		t.Fatalf("unexpected recipients %v", gotTo)
	}
	if !bytes.Contains(gotMsg, []byte("Subject: Course enrollment\r\n")) || !bytes.Contains(gotMsg, []byte("line one\r\nline two")) {
		t.Fatalf("unexpected message:\n%s", gotMsg)
	}
}

func TestSMTPMailer_RejectsHeaderInjection(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "mail.uni.test", Port: 25, From: "portal@uni.test"})
	m.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatalf("send must not be called")
		return nil
	}

	err := m.Send(context.Background(), ports.Message{To: "anna@uni.test\r\nBcc: everyone@uni.test", Subject: "x"})
	if err == nil || !strings.Contains(err.Error(), "header injection") {
		t.Fatalf("expected header injection error, got %v", err)
	}
}

func TestSMTPMailer_WrapsTransportError(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "mail.uni.test", Port: 25, From: "portal@uni.test"})
	boom := errors.New("connection refused")
	m.send = func(string, smtp.Auth, string, []string, []byte) error { return boom }

	if err := m.Send(context.Background(), ports.Message{To: "anna@uni.test"}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped transport error, got %v", err)
	}
}

func TestLogMailer_Send(t *testing.T) {
	var buf bytes.Buffer
	m := NewLogMailer(zerolog.New(&buf))

	if err := m.Send(context.Background(), ports.Message{To: "anna@uni.test", Subject: "hi", Body: "hello"}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if !strings.Contains(buf.String(), `"to":"anna@uni.test"`) {
		t.Fatalf("expected recipient in log, got %s", buf.String())
	}
}
