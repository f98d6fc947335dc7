package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig - параметры SMTP провайдера
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// Configured сообщает, достаточно ли параметров для реальной отправки.
// Без них сервис работает в dev-режиме: токен сброса возвращается в ответе
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// SMTPProvider реализует Provider поверх gomail
type SMTPProvider struct {
	config SMTPConfig
	dialer *gomail.Dialer
}

// NewSMTPProvider создает новый SMTP провайдер
func NewSMTPProvider(config SMTPConfig) *SMTPProvider {
	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// Send отправляет сообщение
func (p *SMTPProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTMLBody)

	if err := p.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendPasswordReset отправляет письмо со ссылкой сброса пароля
func (p *SMTPProvider) SendPasswordReset(to, resetURL string) error {
	body := fmt.Sprintf(`
		<h2>Reimposta la tua password</h2>
		<p>Hai richiesto di reimpostare la password del tuo account Talento.</p>
		<p><a href="%s">Clicca qui per impostare una nuova password</a></p>
		<p>Il link scade tra un'ora. Se non hai richiesto tu il reset, ignora questa email.</p>
	`, resetURL)

	return p.Send(&Message{
		To:       to,
		Subject:  "Talento - Reimposta la password",
		HTMLBody: body,
	})
}
