package app

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/model"
	"github.com/crisis-matcher/dispatch/internal/ui/dashboard"
	"github.com/crisis-matcher/dispatch/tests/testutil"
)

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, email, password string) (*api.LoginData, error) {
	return &api.LoginData{Token: "tok", User: model.User{ID: "u-1"}}, nil
}

func (stubAuthService) Register(ctx context.Context, req api.RegisterRequest) (*api.LoginData, error) {
	return &api.LoginData{Token: "tok", User: model.User{ID: "u-1"}}, nil
}

type stubCrisisService struct{}

func (stubCrisisService) Create(ctx context.Context, req api.CreateCrisisRequest) (*api.CreateCrisisResult, error) {
	return &api.CreateCrisisResult{}, nil
}

func (stubCrisisService) List(ctx context.Context, filter api.CrisisFilter) ([]model.CrisisRequest, error) {
	return nil, nil
}

func (stubCrisisService) Get(ctx context.Context, id string) (*api.CrisisDetail, error) {
	return &api.CrisisDetail{}, nil
}

func (stubCrisisService) UpdateStatus(ctx context.Context, id, status string) (*model.CrisisRequest, error) {
	return &model.CrisisRequest{}, nil
}

type stubNGOService struct{}

func (stubNGOService) List(ctx context.Context) ([]model.NGO, error) { return nil, nil }
func (stubNGOService) Get(ctx context.Context, id string) (*model.NGO, error) {
	return nil, nil
}

type stubResourceService struct{}

func (stubResourceService) List(ctx context.Context) ([]model.Resource, error) { return nil, nil }
func (stubResourceService) Get(ctx context.Context, id string) (*model.Resource, error) {
	return nil, nil
}

func stubServices() Services {
	return Services{
		Auth:      stubAuthService{},
		Crises:    stubCrisisService{},
		NGOs:      stubNGOService{},
		Resources: stubResourceService{},
	}
}

func newTestApp(t *testing.T, authenticated bool) Model {
	t.Helper()
	sess := testutil.NewSessionStore(t)
	if authenticated {
		require.NoError(t, sess.Save("tok", model.User{ID: "u-1", FullName: "Demo"}))
	}
	m := New(sess, stubServices())

	// Deliver the initial window size the terminal would send.
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(Model)
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestStartsOnLoginWithoutSession(t *testing.T) {
	m := newTestApp(t, false)
	assert.Equal(t, ViewLogin, m.currentView)
}

func TestStartsOnDashboardWithSession(t *testing.T) {
	m := newTestApp(t, true)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestUnauthorizedLandsOnLogin(t *testing.T) {
	m := newTestApp(t, true)

	updated, _ := m.Update(UnauthorizedMsg{Message: "Token expired"})
	m = updated.(Model)

	assert.Equal(t, ViewLogin, m.currentView)
	assert.Contains(t, m.loginView.View(), "Token expired")
}

func TestLogoutClearsSessionAndShowsLogin(t *testing.T) {
	sess := testutil.NewSessionStore(t)
	require.NoError(t, sess.Save("tok", model.User{ID: "u-1"}))
	m := New(sess, stubServices())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	updated, _ = m.Update(keyMsg("L"))
	m = updated.(Model)

	assert.Equal(t, ViewLogin, m.currentView)
	assert.False(t, sess.IsAuthenticated())
}

func TestGuardBlocksProtectedViewsWithoutSession(t *testing.T) {
	m := newTestApp(t, false)

	// A cleared session mid-use leaves the old view on screen until the
	// next navigation, which must land on login instead.
	m.currentView = ViewDashboard

	updated, _ := m.Update(keyMsg("2"))
	m = updated.(Model)

	assert.Equal(t, ViewLogin, m.currentView)
}

func TestNavigationBetweenProtectedViews(t *testing.T) {
	m := newTestApp(t, true)

	updated, cmd := m.Update(keyMsg("2"))
	m = updated.(Model)
	assert.Equal(t, ViewNGOs, m.currentView)
	assert.NotNil(t, cmd)

	updated, _ = m.Update(keyMsg("3"))
	m = updated.(Model)
	assert.Equal(t, ViewResources, m.currentView)

	updated, _ = m.Update(keyMsg("1"))
	m = updated.(Model)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestHelpOverlayToggles(t *testing.T) {
	m := newTestApp(t, true)

	updated, _ := m.Update(keyMsg("?"))
	m = updated.(Model)
	assert.Equal(t, ViewHelp, m.currentView)

	updated, _ = m.Update(keyMsg("?"))
	m = updated.(Model)
	assert.Equal(t, ViewDashboard, m.currentView)
}

func TestSelectingCrisisOpensDetail(t *testing.T) {
	m := newTestApp(t, true)

	updated, cmd := m.Update(dashboard.SelectedCrisisMsg{CrisisID: "c-1"})
	m = updated.(Model)

	assert.Equal(t, ViewDetail, m.currentView)
	assert.NotNil(t, cmd)
}
