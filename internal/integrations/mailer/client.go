package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Client SMTP клиент для отправки уведомлений
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewClient создает новый экземпляр SMTP клиента
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// Send отправляет письмо
// Блокирующий вызов: соединение с SMTP сервером устанавливается на каждую отправку
func (c *Client) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, to, err)
	}

	c.log.Info("Mailer: sent message to=%s subject=%q", to, subject)
	return nil
}

// NoopClient заглушка уведомителя, используется когда SMTP выключен в конфиге
// Пишет уведомления в лог вместо отправки
type NoopClient struct {
	log Logger
}

// NewNoopClient создает заглушку уведомителя
func NewNoopClient(log Logger) *NoopClient {
	return &NoopClient{log: log}
}

// Send логирует уведомление вместо отправки
func (c *NoopClient) Send(to, subject, body string) error {
	c.log.Info("Mailer (noop): to=%s subject=%q", to, subject)
	return nil
}
