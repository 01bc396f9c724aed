// Package notifier реализует поверхность уведомлений: исходы
// аутентификации, регистрации и оформления подписки сообщаются
// пользователю транзиентным сообщением (текст + важность).
// Сообщения публикуются в RabbitMQ; без брокера сервис
// ограничивается записью в лог.
package notifier

import (
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/sl"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/rabbitmq"
)

// Важность транзиентного сообщения.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// Message — транзиентное сообщение для пользователя.
type Message struct {
	AccountID string `json:"account_id"`
	Text      string `json:"text"`
	Severity  string `json:"severity"`
}

// NotifierService публикует транзиентные сообщения.
type NotifierService struct {
	ch  *amqp.Channel
	log *slog.Logger
}

// New создает NotifierService. Канал может быть nil — тогда сообщения
// только логируются.
func New(ch *amqp.Channel, log *slog.Logger) *NotifierService {
	return &NotifierService{
		ch:  ch,
		log: log,
	}
}

// Notify отправляет сообщение пользователю. Сбой публикации не
// считается фатальным: сообщение теряется, операция-источник уже
// завершилась.
func (s *NotifierService) Notify(msg Message) {
	if s.ch == nil {
		s.log.Info("user notification",
			slog.String("account_id", msg.AccountID),
			slog.String("severity", msg.Severity),
			slog.String("text", msg.Text))
		return
	}
	if err := rabbitmq.PublishMessage(s.ch, rabbitmq.NotificationsExchange, rabbitmq.UserRoutingKey, msg); err != nil {
		s.log.Error("failed to publish notification", sl.Err(err))
	}
}
