package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"quicknotes/internal/config"
)

type EmailService interface {
	SendOTPEmail(email, code string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
	dryRun bool
}

func NewEmailService(cfg config.EmailConfig) EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	return &emailService{
		dialer: dialer,
		from:   cfg.FromEmail,
		dryRun: cfg.DryRun || cfg.SMTPHost == "",
	}
}

func otpMessage(from, to, code string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Your OTP for Notes App")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Your Verification Code</h2>
			<p>Use the following OTP to complete your sign in:</p>
			<div style="background: #f4f4f4; padding: 20px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px;">
				%s
			</div>
			<p>This OTP will expire in 10 minutes.</p>
			<p>If you didn't request this, please ignore this email.</p>
		</div>
	`, code)

	m.SetBody("text/html", body)
	return m
}

func (s *emailService) SendOTPEmail(email, code string) error {
	if s.dryRun {
		// DRY-RUN: SMTP не настроен, код виден только в логе разработчика
		log.Printf("[email][dry-run] to=%s otp=%s", email, code)
		return nil
	}

	if err := s.dialer.DialAndSend(otpMessage(s.from, email, code)); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}
	return nil
}
