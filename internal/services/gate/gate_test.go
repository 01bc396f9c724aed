package gate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

func userSession(sub *models.Subscription) *models.Account {
	return &models.Account{
		ID:           "acc-user",
		Email:        "user@example.com",
		Role:         models.RoleUser,
		Subscription: sub,
		IsActive:     true,
	}
}

func adminSession() *models.Account {
	return &models.Account{
		ID:       "acc-admin",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
		IsActive: true,
	}
}

func activeSub() *models.Subscription {
	now := time.Now().UTC()
	return &models.Subscription{
		Plan:      "Pro",
		Status:    models.SubscriptionActive,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		session      *models.Account
		requiredRole string
		requiresSub  bool
		want         Decision
	}{
		{
			name:         "empty session redirects to login",
			session:      nil,
			requiredRole: models.RoleUser,
			requiresSub:  false,
			want:         RedirectTo(TargetLogin),
		},
		{
			name:         "user without subscription on subscription route",
			session:      userSession(nil),
			requiredRole: models.RoleUser,
			requiresSub:  true,
			want:         RedirectTo(TargetSubscriptions),
		},
		{
			name:         "user with cancelled subscription on subscription route",
			session:      userSession(&models.Subscription{Plan: "Enterprise", Status: models.SubscriptionCancelled}),
			requiredRole: models.RoleUser,
			requiresSub:  true,
			want:         RedirectTo(TargetSubscriptions),
		},
		{
			name:         "user with active subscription is allowed",
			session:      userSession(activeSub()),
			requiredRole: models.RoleUser,
			requiresSub:  true,
			want:         Allow,
		},
		{
			name:         "user without subscription on free route",
			session:      userSession(nil),
			requiredRole: models.RoleUser,
			requiresSub:  false,
			want:         Allow,
		},
		{
			name:         "admin on user route is a role mismatch",
			session:      adminSession(),
			requiredRole: models.RoleUser,
			requiresSub:  false,
			want:         RedirectTo(TargetLogin),
		},
		{
			name:         "user on admin route is a role mismatch",
			session:      userSession(activeSub()),
			requiredRole: models.RoleAdmin,
			requiresSub:  false,
			want:         RedirectTo(TargetLogin),
		},
		{
			name:         "admin on admin route is allowed",
			session:      adminSession(),
			requiredRole: models.RoleAdmin,
			requiresSub:  false,
			want:         Allow,
		},
		{
			name:         "unknown required role is denied by default",
			session:      adminSession(),
			requiredRole: "superuser",
			requiresSub:  false,
			want:         RedirectTo(TargetLogin),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.session, tt.requiredRole, tt.requiresSub)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLandingTarget(t *testing.T) {
	tests := []struct {
		name    string
		session *models.Account
		want    string
	}{
		{
			name:    "anonymous lands on login",
			session: nil,
			want:    TargetLogin,
		},
		{
			name:    "admin lands on admin panel",
			session: adminSession(),
			want:    TargetAdmin,
		},
		{
			name:    "subscriber lands on dashboard",
			session: userSession(activeSub()),
			want:    TargetDashboard,
		},
		{
			name:    "user without subscription lands on plans",
			session: userSession(nil),
			want:    TargetSubscriptions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LandingTarget(tt.session))
		})
	}
}

// Проверяет переходы состояний посетителя: аноним входит и становится
// пользователем без подписки либо администратором, оформление подписки
// переводит в состояние с активной подпиской, выход возвращает в аноним.
func TestStateTransitions(t *testing.T) {
	// Аноним.
	assert.Equal(t, RedirectTo(TargetLogin), Evaluate(nil, models.RoleUser, true))

	// Вход как пользователь без подписки.
	visitor := userSession(nil)
	assert.Equal(t, TargetSubscriptions, LandingTarget(visitor))
	assert.Equal(t, RedirectTo(TargetSubscriptions), Evaluate(visitor, models.RoleUser, true))

	// Оформление подписки.
	visitor.Subscription = activeSub()
	assert.Equal(t, Allow, Evaluate(visitor, models.RoleUser, true))
	assert.Equal(t, TargetDashboard, LandingTarget(visitor))

	// Выход.
	assert.Equal(t, RedirectTo(TargetLogin), Evaluate(nil, models.RoleUser, true))
}
