// Package auth содержит логику бизнес-уровня для работы с учётными
// записями и сессиями: аутентификацию, регистрацию, сброс пароля,
// обновление профиля и управление слотом текущей сессии.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/lib/password"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/storage"
)

// ErrInvalidCredentials возвращается при неизвестном email или неверном
// пароле. Обе причины дают одну и ту же ошибку, чтобы по ответу нельзя
// было перечислять зарегистрированные адреса.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при регистрации на занятый email.
var ErrEmailTaken = errors.New("email already exists")

// ErrNoSession возвращается операциями, которым нужна текущая сессия,
// когда слот пуст.
var ErrNoSession = errors.New("no current session")

// AccountRepository описывает контракт хранилища учётных записей.
type AccountRepository interface {
	// FindByEmail возвращает учётную запись по email (без учёта регистра).
	FindByEmail(ctx context.Context, email string) (*models.Account, error)
	// Exists сообщает, занят ли email.
	Exists(ctx context.Context, email string) (bool, error)
	// CreateAccount сохраняет новую учётную запись и возвращает её ID.
	CreateAccount(ctx context.Context, account models.Account) (string, error)
	// UpdateLastLogin обновляет время последнего входа.
	UpdateLastLogin(ctx context.Context, accountID string, at time.Time) error
}

// SessionStore описывает слот текущей сессии. Реализация пишет снимок
// насквозь в долговременный слот и в канал навигационных проверок.
type SessionStore interface {
	Set(ctx context.Context, account *models.Account) error
	Get(ctx context.Context, accountID string) (*models.Account, error)
	Clear(ctx context.Context, accountID string) error
}

// AuthService отвечает за аутентификацию, регистрацию и текущую сессию.
type AuthService struct {
	accounts AccountRepository
	sessions SessionStore
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(accounts AccountRepository, sessions SessionStore, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		accounts: accounts,
		sessions: sessions,
		jwtMaker: jwtMaker,
	}
}

// Authenticate проверяет учётные данные, обновляет время последнего
// входа, записывает снимок сессии в оба слота и возвращает учётную
// запись вместе с токеном сессии.
//
// Флаг IsActive на вход не влияет: выключенная запись аутентифицируется
// наравне с остальными.
func (s *AuthService) Authenticate(ctx context.Context, email, rawPassword string) (*models.Account, string, error) {
	const op = "auth.Authenticate"

	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrAccountNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(account.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now().UTC()
	account.LastLogin = now
	if err := s.accounts.UpdateLastLogin(ctx, account.ID, now); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sessions.Set(ctx, account); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(account.Email, account.Role, account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return account, token, nil
}

// Register создает новую учётную запись с ролью "user", без подписки,
// с хэшированным паролем, открывает для неё сессию и возвращает токен.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, name string) (*models.Account, string, error) {
	const op = "auth.Register"

	exists, err := s.accounts.Exists(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	now := time.Now().UTC()
	account := models.Account{
		Email:        email,
		Name:         name,
		Role:         models.RoleUser, // дефолтная роль при регистрации
		PasswordHash: hashed,
		CreatedAt:    now,
		LastLogin:    now,
		IsActive:     true,
	}
	id, err := s.accounts.CreateAccount(ctx, account)
	if err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	account.ID = id

	if err := s.sessions.Set(ctx, &account); err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(account.Email, account.Role, account.ID)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", op, err)
	}
	return &account, token, nil
}

// CurrentSession читает снимок текущей сессии. Возвращает nil без
// ошибки, если слот пуст или содержимое не читается.
func (s *AuthService) CurrentSession(ctx context.Context, accountID string) (*models.Account, error) {
	return s.sessions.Get(ctx, accountID)
}

// Logout очищает оба слота сессии.
func (s *AuthService) Logout(ctx context.Context, accountID string) error {
	const op = "auth.Logout"
	if err := s.sessions.Clear(ctx, accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ResetPassword возвращает, известен ли email. Никакого письма
// демонстрационный стенд не отправляет.
func (s *AuthService) ResetPassword(ctx context.Context, email string) (bool, error) {
	const op = "auth.ResetPassword"
	exists, err := s.accounts.Exists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UpdateProfile применяет закрытый патч {name, email} к снимку текущей
// сессии и перезаписывает слот. Каноничная запись хранилища при этом
// не меняется: снимок сессии расходится с ней до следующего входа.
func (s *AuthService) UpdateProfile(ctx context.Context, accountID string, patch models.ProfilePatch) (*models.Account, error) {
	const op = "auth.UpdateProfile"

	account, err := s.sessions.Get(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if account == nil {
		return nil, ErrNoSession
	}

	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Email != nil {
		account.Email = *patch.Email
	}

	if err := s.sessions.Set(ctx, account); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return account, nil
}
