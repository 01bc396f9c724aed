package paymentprovider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCharge_AlwaysSucceeds(t *testing.T) {
	client := NewClient(10 * time.Millisecond)

	resp, err := client.Charge(context.Background(), ChargeRequest{
		AccountID:   "acc-1",
		Amount:      19.99,
		Description: "Pro plan",
	})
	require.NoError(t, err)
	assert.True(t, resp.Paid)
	assert.Equal(t, StatusSucceeded, resp.Status)
	assert.NotEmpty(t, resp.PaymentID)
}

func TestCharge_ContextCancelled(t *testing.T) {
	client := NewClient(time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.Charge(ctx, ChargeRequest{AccountID: "acc-1", Amount: 9.99})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
