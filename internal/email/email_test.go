package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_DisabledIsNoOp(t *testing.T) {
	service := NewService("sg-key", "noreply@example.com", "Assistant", false)

	assert.False(t, service.Enabled())

	err := service.Send(context.Background(), "dana@example.com", "subject", "body")
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestService_MissingAPIKey(t *testing.T) {
	service := NewService("", "noreply@example.com", "Assistant", true)

	err := service.Send(context.Background(), "dana@example.com", "subject", "body")
	assert.ErrorIs(t, err, ErrSend)
	assert.Contains(t, err.Error(), "API key not configured")
}

func TestNewService_DefaultFromName(t *testing.T) {
	service := NewService("sg-key", "noreply@example.com", "", true)
	assert.Equal(t, "Real Estate Assistant", service.fromName)
}
