package services

import (
	"bytes"
	"crypto/tls"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/config"
)

// OTPSender доставляет одноразовый код подтверждения администратору.
type OTPSender interface {
	SendOTPEmail(to, name, otp string) error
}

const otpEmailTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
	<p>Hello {{.Name}},</p>
	<p>Your CricInnings verification code is:</p>
	<h2 style="letter-spacing: 4px;">{{.OTP}}</h2>
	<p>The code expires in {{.ValidMinutes}} minutes.</p>
</body>
</html>`

var otpTemplate = template.Must(template.New("otp").Parse(otpEmailTemplate))

type EmailService struct {
	cfg    *config.Config
	logger *slog.Logger
}

func NewEmailService(cfg *config.Config, logger *slog.Logger) *EmailService {
	return &EmailService{cfg: cfg, logger: logger}
}

func (s *EmailService) SendOTPEmail(to, name, otp string) error {
	body, err := renderOTPEmail(name, otp)
	if err != nil {
		return err
	}
	if s.cfg.SMTPHost == "" {
		s.logger.Warn("smtp is not configured, otp email not sent", slog.String("to", to))
		return nil
	}
	return s.SendEmail([]string{to}, "CricInnings verification code", body)
}

func renderOTPEmail(name, otp string) (string, error) {
	data := struct {
		Name         string
		OTP          string
		ValidMinutes int
	}{
		Name:         name,
		OTP:          otp,
		ValidMinutes: int(otpValidity.Minutes()),
	}

	var body bytes.Buffer
	if err := otpTemplate.Execute(&body, data); err != nil {
		return "", fmt.Errorf("ошибка выполнения шаблона otp: %w", err)
	}
	return body.String(), nil
}

func (s *EmailService) SendEmail(to []string, subject string, body string) error {
	auth := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)

	msg := []byte("To: " + to[0] + "\r\n" +
		"From: " + s.cfg.SMTPFrom + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n" +
		"\r\n" +
		body + "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	tlsconfig := &tls.Config{ServerName: s.cfg.SMTPHost}

	var client *smtp.Client
	if s.cfg.SMTPPort == 465 {
		// Прямое TLS-соединение
		conn, err := tls.Dial("tcp", addr, tlsconfig)
		if err != nil {
			return fmt.Errorf("ошибка TLS соединения: %w", err)
		}
		client, err = smtp.NewClient(conn, s.cfg.SMTPHost)
		if err != nil {
			conn.Close()
			return fmt.Errorf("ошибка создания SMTP клиента: %w", err)
		}
	} else {
		// STARTTLS
		c, err := smtp.Dial(addr)
		if err != nil {
			return fmt.Errorf("ошибка соединения SMTP: %w", err)
		}
		client = c
		if err = client.StartTLS(tlsconfig); err != nil {
			client.Close()
			return fmt.Errorf("ошибка команды STARTTLS: %w", err)
		}
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("ошибка аутентификации SMTP: %w", err)
	}
	if err := client.Mail(s.cfg.SMTPFrom); err != nil {
		return fmt.Errorf("ошибка MAIL FROM: %w", err)
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("ошибка RCPT TO: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("ошибка команды DATA: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("ошибка записи сообщения: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия DATA: %w", err)
	}
	return nil
}
