package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/papertrail/storefront/internal/domain"
)

func TestFeedbackSubmit(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewFeedbackService(store, nil)

	userID := int64(7)
	got, err := svc.Submit(ctx, &userID, domain.FeedbackParams{
		Name:    "Amara Mensah",
		Email:   "  amara@example.com ",
		Message: "The notebooks arrived in great shape.",
	})
	require.NoError(t, err)
	assert.Equal(t, "amara@example.com", got.Email)
	require.NotNil(t, got.UserID)
	assert.Equal(t, userID, *got.UserID)

	// Anonymous submissions carry no user.
	anon, err := svc.Submit(ctx, nil, domain.FeedbackParams{
		Name:    "Guest",
		Email:   "guest@example.com",
		Message: "Nice store.",
	})
	require.NoError(t, err)
	assert.Nil(t, anon.UserID)

	list, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Guest", list[0].Name, "newest first")
}

func TestFeedbackSubmitValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewFeedbackService(newFakeStore(), nil)

	_, err := svc.Submit(ctx, nil, domain.FeedbackParams{Name: "Amara", Email: "not-an-email"})
	require.Error(t, err)
	assert.Equal(t, domain.EINVALID, domain.ErrorCode(err))
}
