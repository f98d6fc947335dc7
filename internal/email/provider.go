package email

// Message - простое email сообщение
type Message struct {
	To       string
	Subject  string
	HTMLBody string
}

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет сообщение
	Send(msg *Message) error

	// SendPasswordReset отправляет письмо со ссылкой сброса пароля
	SendPasswordReset(to, resetURL string) error
}
