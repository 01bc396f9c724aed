// Package gate реализует шлюз доступа — чистую функцию принятия
// решения о маршрутизации. На каждый защищённый маршрут подаётся
// текущий снимок сессии (или его отсутствие), требуемая роль и
// признак обязательной активной подписки; шлюз возвращает решение:
// пропустить или перенаправить. Шлюз никогда не изменяет сессию.
//
// Множество состояний посетителя: аноним, пользователь без подписки,
// пользователь с активной подпиской, администратор. Начальное и
// терминальное состояние — аноним; выход из системы возвращает в него
// из любого другого.
package gate

import (
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// Маршруты, на которые шлюз перенаправляет посетителя.
// Приложение-хост сопоставляет их реальным переходам.
const (
	TargetLogin         = "/login"
	TargetSubscriptions = "/subscriptions"
	TargetAdmin         = "/admin"
	TargetDashboard     = "/dashboard"
)

// Decision — результат проверки доступа. Если Allow равен false,
// Redirect содержит целевой маршрут.
type Decision struct {
	Allow    bool
	Redirect string
}

// Allow — решение пропустить посетителя на маршрут.
var Allow = Decision{Allow: true}

// RedirectTo возвращает решение о перенаправлении на target.
func RedirectTo(target string) Decision {
	return Decision{Redirect: target}
}

// Evaluate принимает решение о допуске на маршрут. Правила, в порядке
// проверки:
//   - пустая сессия — на страницу входа;
//   - несовпадение роли с требуемой — на страницу входа;
//   - требуется активная подписка, а её нет — на выбор тарифа;
//   - иначе — доступ разрешен.
//
// Неизвестная требуемая роль трактуется как отказ по умолчанию.
func Evaluate(session *models.Account, requiredRole string, requiresActiveSubscription bool) Decision {
	if session == nil {
		return RedirectTo(TargetLogin)
	}
	switch requiredRole {
	case models.RoleAdmin, models.RoleUser:
		if session.Role != requiredRole {
			return RedirectTo(TargetLogin)
		}
	default:
		return RedirectTo(TargetLogin)
	}
	if requiresActiveSubscription && !session.HasActiveSubscription() {
		return RedirectTo(TargetSubscriptions)
	}
	return Allow
}

// LandingTarget возвращает маршрут, куда попадает посетитель сразу
// после входа: администратор — в админ-панель, пользователь с активной
// подпиской — в личный кабинет, остальные — на выбор тарифа.
func LandingTarget(session *models.Account) string {
	if session == nil {
		return TargetLogin
	}
	if session.Role == models.RoleAdmin {
		return TargetAdmin
	}
	if session.HasActiveSubscription() {
		return TargetDashboard
	}
	return TargetSubscriptions
}
