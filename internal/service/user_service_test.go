package service

import (
	"context"
	"fmt"
	"testing"

	"threaded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerUser(t *testing.T, env *testEnv, first, email string) *models.User {
	t.Helper()
	user, err := env.auth.Register(context.Background(), RegisterInput{
		FirstName: first,
		LastName:  "Tester",
		Email:     email,
		Age:       28,
		Password:  "password1",
	})
	require.NoError(t, err)
	return user
}

func TestAssignUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	alice := registerUser(t, env, "Alice", "alice@example.com")
	bob := registerUser(t, env, "Bob", "bob@example.com")

	t.Run("free name is assigned", func(t *testing.T) {
		require.NoError(t, env.users.AssignUsername(ctx, alice.ID, "alice_01"))

		got, err := env.users.Get(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Username)
		assert.Equal(t, "alice_01", *got.Username)
	})

	t.Run("taken name is rejected, repeatedly", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			err := env.users.AssignUsername(ctx, bob.ID, "alice_01")
			require.Error(t, err, "attempt %d", i+1)
			assert.True(t, models.IsCode(err, "CONFLICT"))
		}

		// Bob's username must still be unset after the failed attempts.
		got, err := env.users.Get(ctx, bob.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Username)
	})

	t.Run("resubmitting one's own name is a no-op", func(t *testing.T) {
		require.NoError(t, env.users.AssignUsername(ctx, alice.ID, "alice_01"))

		got, err := env.users.Get(ctx, alice.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Username)
		assert.Equal(t, "alice_01", *got.Username)
	})

	t.Run("invalid name is rejected", func(t *testing.T) {
		err := env.users.AssignUsername(ctx, bob.ID, "x")
		require.Error(t, err)
		assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
	})
}

func TestSearchUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		registerUser(t, env, "Charlie", fmt.Sprintf("charlie%d@example.com", i))
	}
	registerUser(t, env, "Dana", "dana@example.com")

	t.Run("matches by first name", func(t *testing.T) {
		results, err := env.users.Search(ctx, "Charlie", 10)
		require.NoError(t, err)
		assert.Len(t, results, 3)
	})

	t.Run("matches by last name", func(t *testing.T) {
		results, err := env.users.Search(ctx, "Tester", 10)
		require.NoError(t, err)
		assert.Len(t, results, 4)
	})

	t.Run("no match", func(t *testing.T) {
		results, err := env.users.Search(ctx, "Zebediah", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		results, err := env.users.Search(ctx, "", 10)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("limit caps the result set", func(t *testing.T) {
		results, err := env.users.Search(ctx, "Charlie", 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}
