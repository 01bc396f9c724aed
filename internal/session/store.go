// Package session реализует хранение снимка текущей сессии.
//
// Снимок пишется насквозь в два слота Redis: долговременный слот —
// аналог localStorage браузера — и короткоживущий страховочный канал,
// который читают навигационные проверки маршрутов. Писать в слоты
// имеет право только менеджер сессий; шлюз доступа и остальные
// потребители читают их как неизменяемые.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/magabrotheeeer/voice-assistant-platform/internal/cache"
	"github.com/magabrotheeeer/voice-assistant-platform/internal/models"
)

// Ключи слотов. Идентификатор учётной записи дописывается в конец.
const (
	durableKeyPrefix = "session:current:"
	guardKeyPrefix   = "session:guard:"
)

// Store управляет двумя слотами снимка сессии.
type Store struct {
	cache      *cache.Cache
	durableTTL time.Duration
	guardTTL   time.Duration
}

// New создает Store с временем жизни долговременного и страховочного слотов.
func New(c *cache.Cache, durableTTL, guardTTL time.Duration) *Store {
	return &Store{
		cache:      c,
		durableTTL: durableTTL,
		guardTTL:   guardTTL,
	}
}

// Set сериализует полный снимок учётной записи (включая вложенную
// подписку) и записывает его в оба слота.
func (s *Store) Set(ctx context.Context, account *models.Account) error {
	const op = "session.Set"
	if err := s.cache.Set(ctx, durableKeyPrefix+account.ID, account, s.durableTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(ctx, guardKeyPrefix+account.ID, account, s.guardTTL); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Get читает снимок из долговременного слота. Отсутствующее или
// нечитаемое значение трактуется как отсутствие сессии, не как ошибка.
func (s *Store) Get(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "session.Get"
	raw, found, err := s.cache.GetRaw(ctx, durableKeyPrefix+accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	var account models.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		// Испорченный снимок равносилен отсутствию сессии.
		return nil, nil
	}
	return &account, nil
}

// GetGuard читает снимок из страховочного канала навигационных проверок.
// Семантика отсутствия и порчи та же, что у Get.
func (s *Store) GetGuard(ctx context.Context, accountID string) (*models.Account, error) {
	const op = "session.GetGuard"
	raw, found, err := s.cache.GetRaw(ctx, guardKeyPrefix+accountID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, nil
	}
	var account models.Account
	if err := json.Unmarshal([]byte(raw), &account); err != nil {
		return nil, nil
	}
	return &account, nil
}

// Clear удаляет оба слота. Вызывается при выходе из системы.
func (s *Store) Clear(ctx context.Context, accountID string) error {
	const op = "session.Clear"
	if err := s.cache.Invalidate(ctx, durableKeyPrefix+accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, guardKeyPrefix+accountID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
