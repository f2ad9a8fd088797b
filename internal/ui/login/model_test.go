package login

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/tests/testutil"
)

type fakeAuthService struct {
	data *api.LoginData
	err  error

	gotEmail    string
	gotPassword string
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*api.LoginData, error) {
	f.gotEmail = email
	f.gotPassword = password
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

func (f *fakeAuthService) Register(ctx context.Context, req api.RegisterRequest) (*api.LoginData, error) {
	return f.data, f.err
}

func TestSubmitPersistsSessionOnSuccess(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	auth := &fakeAuthService{data: &api.LoginData{
		Token: "tok-1",
		User:  model.User{ID: "u-1", Email: model.DemoEmail, Role: "dispatcher"},
	}}

	m := New(auth, sess, 80, 24)
	m.fb.email = model.DemoEmail
	m.fb.password = model.DemoPassword

	msg := m.submit()()
	result, ok := msg.(loginResultMsg)
	require.True(t, ok)
	require.NoError(t, result.err)

	assert.Equal(t, model.DemoEmail, auth.gotEmail)
	assert.Equal(t, model.DemoPassword, auth.gotPassword)
	assert.True(t, sess.IsAuthenticated())
	assert.Equal(t, "tok-1", sess.Token())
}

func TestFailedLoginLeavesPriorSessionUntouched(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	require.NoError(t, sess.Save("old-token", model.User{ID: "u-0"}))

	auth := &fakeAuthService{err: &api.APIError{StatusCode: 401, Message: "Invalid credentials"}}
	m := New(auth, sess, 80, 24)
	m.fb.email = "x@y.org"
	m.fb.password = "wrong"

	msg := m.submit()()
	result := msg.(loginResultMsg)
	require.Error(t, result.err)

	m, _ = m.Update(result)
	assert.False(t, m.authenticating)
	assert.Contains(t, m.View(), "Invalid credentials")
	assert.Equal(t, "old-token", sess.Token())
}

func TestSuccessMessageReachesParent(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	auth := &fakeAuthService{data: &api.LoginData{
		Token: "tok",
		User:  model.User{ID: "u-1", FullName: "Demo Dispatcher"},
	}}
	m := New(auth, sess, 80, 24)

	m, cmd := m.Update(loginResultMsg{data: auth.data})
	require.NotNil(t, cmd)

	success, ok := cmd().(LoginSuccessMsg)
	require.True(t, ok)
	assert.Equal(t, "Demo Dispatcher", success.User.FullName)
}

func TestDemoShortcutPrefillsCredentials(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	m := New(&fakeAuthService{}, sess, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, model.DemoEmail, m.fb.email)
	assert.Equal(t, model.DemoPassword, m.fb.password)
}

func TestSessionSaveFailureSurfacesError(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	require.NoError(t, sess.Close())

	auth := &fakeAuthService{data: &api.LoginData{Token: "tok", User: model.User{ID: "u"}}}
	m := New(auth, sess, 80, 24)
	m.fb.email = "a"
	m.fb.password = "b"

	msg := m.submit()()
	result := msg.(loginResultMsg)
	require.Error(t, result.err)
	assert.Contains(t, result.err.Error(), "saving session")
}
