// Package paymentprovider имитирует платёжного провайдера
// демонстрационного стенда: списание всегда успешно после
// фиксированной искусственной задержки. Отклонённые карты и сетевые
// сбои не моделируются; повторов и частичных состояний нет.
package paymentprovider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Client — клиент демонстрационного провайдера.
type Client struct {
	delay time.Duration
}

// NewClient создаёт клиента с заданной искусственной задержкой списания.
func NewClient(delay time.Duration) *Client {
	return &Client{delay: delay}
}

// Charge выполняет списание. Ожидание прерывается отменой контекста;
// успешный ответ приходит всегда, когда ожидание дожито до конца.
func (c *Client) Charge(ctx context.Context, req ChargeRequest) (*ChargeResponse, error) {
	const op = "paymentprovider.Charge"

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	case <-time.After(c.delay):
	}

	return &ChargeResponse{
		PaymentID: uuid.New().String(),
		Status:    StatusSucceeded,
		Paid:      true,
	}, nil
}
