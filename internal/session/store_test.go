package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/tests/testutil"
)

func TestSaveThenReadBack(t *testing.T) {
	s := testutil.NewSessionStore(t)

	user := model.User{
		ID:       "u-1",
		Email:    model.DemoEmail,
		FullName: "Demo Dispatcher",
		Role:     "dispatcher",
	}
	require.NoError(t, s.Save("tok-abc", user))

	assert.Equal(t, "tok-abc", s.Token())
	assert.True(t, s.IsAuthenticated())

	got := s.CurrentUser()
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
}

func TestFreshStoreIsUnauthenticated(t *testing.T) {
	s := testutil.NewSessionStore(t)

	assert.Empty(t, s.Token())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
}

func TestClearRemovesTokenAndUser(t *testing.T) {
	s := testutil.NewSessionStore(t)

	require.NoError(t, s.Save("tok", model.User{ID: "u-1"}))
	require.NoError(t, s.Clear())

	assert.Empty(t, s.Token())
	assert.False(t, s.IsAuthenticated())
	assert.Nil(t, s.CurrentUser())
}

func TestClearOnEmptySessionSucceeds(t *testing.T) {
	s := testutil.NewSessionStore(t)

	// Logging out without ever logging in must not fail.
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
}

func TestSaveOverwritesPreviousSession(t *testing.T) {
	s := testutil.NewSessionStore(t)

	require.NoError(t, s.Save("tok-1", model.User{ID: "u-1", Email: "a@x.org"}))
	require.NoError(t, s.Save("tok-2", model.User{ID: "u-2", Email: "b@x.org"}))

	assert.Equal(t, "tok-2", s.Token())
	got := s.CurrentUser()
	require.NotNil(t, got)
	assert.Equal(t, "u-2", got.ID)
}
