package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPProvider реализует Provider поверх gomail.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	p := &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SMTPProvider) Send(msg *Email) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.config.FromEmail, p.config.FromName))
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.Body)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (p *SMTPProvider) SendVerification(to string, token string) error {
	body := fmt.Sprintf(
		"<p>Welcome to PromoLink!</p><p>Your verification code: <b>%s</b></p>",
		token,
	)
	return p.Send(&Email{
		To:      []string{to},
		Subject: "Verify your PromoLink account",
		Body:    body,
	})
}

func (p *SMTPProvider) Validate() error {
	if p.config.SMTPHost == "" || p.config.SMTPPort == 0 {
		return errors.New("smtp host and port are required")
	}
	if p.config.FromEmail == "" {
		return errors.New("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Close() error {
	// gomail открывает соединение на каждую отправку
	return nil
}
