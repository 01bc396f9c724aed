// Package models содержит доменную модель учётной записи пользователя
// голосовой платформы: роль, статус активности и вложенную запись подписки.
// Структуры используются в бизнес‑логике, хранилище и сериализуются
// в слот текущей сессии.
package models

import "time"

// Роли учётных записей. Роль назначается при создании и не меняется.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Статусы подписки учётной записи.
const (
	SubscriptionActive    = "active"
	SubscriptionInactive  = "inactive"
	SubscriptionCancelled = "cancelled"
)

// Account представляет зарегистрированного пользователя платформы.
// Поле Subscription равно nil, если подписка ни разу не оформлялась.
type Account struct {
	ID           string        `json:"id"`            // Уникальный идентификатор (uuid)
	Email        string        `json:"email"`         // Электронная почта, уникальная
	Name         string        `json:"name"`          // Отображаемое имя, опционально
	Role         string        `json:"role"`          // Роль: admin или user
	PasswordHash string        `json:"-"`             // Хэш пароля, наружу не сериализуется
	Subscription *Subscription `json:"subscription"`  // Текущая подписка или nil
	CreatedAt    time.Time     `json:"created_at"`    // Дата регистрации
	LastLogin    time.Time     `json:"last_login"`    // Дата последнего входа
	IsActive     bool          `json:"is_active"`     // Информационный флаг, вход не блокирует
}

// Subscription описывает оформленную подписку учётной записи.
type Subscription struct {
	Plan      string    `json:"plan"`       // Название тарифа (Basic, Pro, Enterprise)
	Status    string    `json:"status"`     // active, inactive или cancelled
	StartDate time.Time `json:"start_date"` // Дата начала
	EndDate   time.Time `json:"end_date"`   // Дата окончания
}

// HasActiveSubscription сообщает, есть ли у учётной записи действующая подписка.
func (a *Account) HasActiveSubscription() bool {
	return a.Subscription != nil && a.Subscription.Status == SubscriptionActive
}

// ProfilePatch описывает закрытый набор полей, доступных для обновления
// профиля. Поля со значением nil не изменяются; других полей патч
// не допускает по построению.
type ProfilePatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
