package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SagarikaVandana/janu-collections-sub000/internal/model"
)

func TestNewsletterService_Subscribe_NormalisesEmail(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockNewsletterRepository)
	service := NewNewsletterService(mockRepo, zerolog.Nop())

	mockRepo.On("Subscribe", ctx, "ananya@example.com").
		Return(&model.NewsletterSubscriber{Email: "ananya@example.com", IsActive: true}, nil)

	sub, err := service.Subscribe(ctx, "  ANANYA@Example.COM ")

	require.NoError(t, err)
	assert.True(t, sub.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestNewsletterService_Subscribe_InvalidEmail(t *testing.T) {
	service := NewNewsletterService(new(MockNewsletterRepository), zerolog.Nop())

	tests := []string{"", "   ", "not-an-email", "missing@"}
	for _, email := range tests {
		_, err := service.Subscribe(context.Background(), email)
		assert.Error(t, err, "email %q should be rejected", email)
	}
}

func TestNewsletterService_Unsubscribe_UnknownEmail(t *testing.T) {
	ctx := context.Background()

	mockRepo := new(MockNewsletterRepository)
	service := NewNewsletterService(mockRepo, zerolog.Nop())

	mockRepo.On("Unsubscribe", ctx, "ghost@example.com").Return(nil, nil)

	_, err := service.Unsubscribe(ctx, "ghost@example.com")

	require.Error(t, err)
	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeNotFound, domainErr.Code)
}
