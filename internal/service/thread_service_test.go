package service

import (
	"context"
	"testing"

	"threaded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createThread(t *testing.T, env *testEnv, ownerID uint, visibility models.ThreadVisibility, lifecycle models.ThreadLifecycle) *models.Thread {
	t.Helper()
	thread, err := env.threads.CreateThread(context.Background(), CreateThreadInput{
		OwnerID:    ownerID,
		Title:      "A thread",
		Text:       "Opening text",
		Visibility: visibility,
		Lifecycle:  lifecycle,
	})
	require.NoError(t, err)
	return thread
}

func TestCreateThread_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := registerUser(t, env, "Alice", "alice@example.com")

	valid := CreateThreadInput{
		OwnerID:    alice.ID,
		Title:      "Valid title",
		Text:       "Valid text",
		Visibility: models.ThreadVisibilityPublic,
		Lifecycle:  models.ThreadLifecycleLive,
	}

	tests := []struct {
		name   string
		mutate func(*CreateThreadInput)
	}{
		{"empty title", func(in *CreateThreadInput) { in.Title = "  " }},
		{"empty text", func(in *CreateThreadInput) { in.Text = "" }},
		{"bad visibility", func(in *CreateThreadInput) { in.Visibility = "friends-only" }},
		{"bad lifecycle", func(in *CreateThreadInput) { in.Lifecycle = "archived" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := valid
			tt.mutate(&input)

			_, err := env.threads.CreateThread(ctx, input)
			require.Error(t, err)
			assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
		})
	}

	t.Run("unknown owner", func(t *testing.T) {
		input := valid
		input.OwnerID = 9999
		_, err := env.threads.CreateThread(ctx, input)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestAddContribution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "Alice", "alice@example.com")
	bob := registerUser(t, env, "Bob", "bob@example.com")

	t.Run("live thread accepts and counts", func(t *testing.T) {
		thread := createThread(t, env, alice.ID, models.ThreadVisibilityPublic, models.ThreadLifecycleLive)

		contribution, err := env.threads.AddContribution(ctx, thread.ID, bob.ID, "Great point")
		require.NoError(t, err)
		assert.Equal(t, thread.ID, contribution.ThreadID)
		assert.Equal(t, bob.ID, contribution.UserID)

		got, err := env.threads.GetThread(ctx, thread.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ContributorCount)
		require.Len(t, got.Contributions, 1)
		assert.Equal(t, "Great point", got.Contributions[0].Text)
	})

	t.Run("closed thread rejects and count stays", func(t *testing.T) {
		thread := createThread(t, env, alice.ID, models.ThreadVisibilityPublic, models.ThreadLifecycleClosed)

		_, err := env.threads.AddContribution(ctx, thread.ID, bob.ID, "Too late")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))

		got, err := env.threads.GetThread(ctx, thread.ID, bob.ID)
		require.NoError(t, err)
		assert.Zero(t, got.ContributorCount)
		assert.Empty(t, got.Contributions)
	})

	t.Run("empty text rejected", func(t *testing.T) {
		thread := createThread(t, env, alice.ID, models.ThreadVisibilityPublic, models.ThreadLifecycleLive)

		_, err := env.threads.AddContribution(ctx, thread.ID, bob.ID, "   ")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	})

	t.Run("unknown thread", func(t *testing.T) {
		_, err := env.threads.AddContribution(ctx, 9999, bob.ID, "Hello")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestGetThread_PrivateVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "Alice", "alice@example.com")
	bob := registerUser(t, env, "Bob", "bob@example.com")

	thread := createThread(t, env, alice.ID, models.ThreadVisibilityPrivate, models.ThreadLifecycleLive)

	t.Run("owner can view", func(t *testing.T) {
		got, err := env.threads.GetThread(ctx, thread.ID, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, thread.ID, got.ID)
	})

	t.Run("others see not found", func(t *testing.T) {
		_, err := env.threads.GetThread(ctx, thread.ID, bob.ID)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})

	t.Run("anonymous viewers see not found", func(t *testing.T) {
		_, err := env.threads.GetThread(ctx, thread.ID, 0)
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "NOT_FOUND"))
	})
}

func TestListPublic(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "Alice", "alice@example.com")

	createThread(t, env, alice.ID, models.ThreadVisibilityPublic, models.ThreadLifecycleLive)
	createThread(t, env, alice.ID, models.ThreadVisibilityPrivate, models.ThreadLifecycleLive)
	createThread(t, env, alice.ID, models.ThreadVisibilityPublic, models.ThreadLifecycleClosed)

	listed, err := env.threads.ListPublic(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, models.ThreadVisibilityPublic, listed[0].Visibility)
	assert.Equal(t, models.ThreadLifecycleLive, listed[0].Lifecycle)

	owned, err := env.threads.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, owned, 3)
}

// Scenario: a registered user opens a public live thread and a second user
// joins the conversation.
func TestThreadCollaborationScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice, err := env.auth.Register(ctx, RegisterInput{
		FirstName: "Alice",
		LastName:  "Owner",
		Email:     "alice@example.com",
		Age:       34,
		Password:  "password1",
	})
	require.NoError(t, err)

	thread, err := env.threads.CreateThread(ctx, CreateThreadInput{
		OwnerID:    alice.ID,
		Title:      "First Post",
		Text:       "Welcome to the thread",
		Visibility: models.ThreadVisibilityPublic,
		Lifecycle:  models.ThreadLifecycleLive,
	})
	require.NoError(t, err)
	assert.Zero(t, thread.ContributorCount)

	bob, err := env.auth.Register(ctx, RegisterInput{
		FirstName: "Bob",
		LastName:  "Guest",
		Email:     "bob@example.com",
		Age:       29,
		Password:  "password2",
	})
	require.NoError(t, err)

	_, err = env.threads.AddContribution(ctx, thread.ID, bob.ID, "Glad to be here")
	require.NoError(t, err)

	got, err := env.threads.GetThread(ctx, thread.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ContributorCount)
	require.Len(t, got.Contributions, 1)
	assert.Equal(t, bob.ID, got.Contributions[0].UserID)
	assert.Equal(t, thread.ID, got.Contributions[0].ThreadID)
}
