package dashboard

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/keys"
	"github.com/crisis-matcher/dispatch/internal/model"
)

// fakeCrisisService records List calls for filter assertions.
type fakeCrisisService struct {
	listCalls []api.CrisisFilter
	crises    []model.CrisisRequest
	err       error
}

func (f *fakeCrisisService) Create(ctx context.Context, req api.CreateCrisisRequest) (*api.CreateCrisisResult, error) {
	return nil, nil
}

func (f *fakeCrisisService) List(ctx context.Context, filter api.CrisisFilter) ([]model.CrisisRequest, error) {
	f.listCalls = append(f.listCalls, filter)
	return f.crises, f.err
}

func (f *fakeCrisisService) Get(ctx context.Context, id string) (*api.CrisisDetail, error) {
	return nil, nil
}

func (f *fakeCrisisService) UpdateStatus(ctx context.Context, id, status string) (*model.CrisisRequest, error) {
	return nil, nil
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// newLoadedDashboard runs the initial fetch so the model is idle.
func newLoadedDashboard(t *testing.T, svc *fakeCrisisService) Model {
	t.Helper()
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	cmd := m.Init()
	require.NotNil(t, cmd)
	m, _ = m.Update(cmd())
	return m
}

// pressFilter sends a filter key and delivers the resulting fetch.
func pressFilter(t *testing.T, m Model, k string) Model {
	t.Helper()
	m, cmd := m.Update(keyMsg(k))
	require.NotNil(t, cmd, "filter key %q must trigger a refetch", k)
	m, _ = m.Update(cmd())
	return m
}

func TestFilterKeyTriggersExactlyOneRefetch(t *testing.T) {
	svc := &fakeCrisisService{}
	m := newLoadedDashboard(t, svc)

	m = pressFilter(t, m, "s")

	// One initial fetch plus exactly one for the filter change.
	require.Len(t, svc.listCalls, 2)
	assert.Equal(t, api.CrisisFilter{Status: "pending"}, svc.listCalls[1])
	assert.Equal(t, api.CrisisFilter{Status: "pending"}, m.Filter())
}

func TestFilterKeysInertWhileLoading(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	// No CrisesLoadedMsg delivered yet, so the view is still loading.
	_, cmd := m.Update(keyMsg("s"))
	assert.Nil(t, cmd)
	assert.Empty(t, svc.listCalls)
}

func TestFilterCyclesBackToAll(t *testing.T) {
	svc := &fakeCrisisService{}
	m := newLoadedDashboard(t, svc)

	// Cycle through every status value and back to the unfiltered state.
	for range model.StatusValues {
		m = pressFilter(t, m, "s")
	}

	assert.Empty(t, m.Filter().Status)
	assert.Len(t, svc.listCalls, 1+len(model.StatusValues))
}

func TestFiltersCombine(t *testing.T) {
	svc := &fakeCrisisService{}
	m := newLoadedDashboard(t, svc)

	m = pressFilter(t, m, "s")
	m = pressFilter(t, m, "u")

	require.Len(t, svc.listCalls, 3)
	// The latest fetch carries the combination of both filters.
	assert.Equal(t, api.CrisisFilter{
		Status:       "pending",
		UrgencyLevel: "critical",
	}, svc.listCalls[2])
}

func TestClearFiltersResetsAndRefetches(t *testing.T) {
	svc := &fakeCrisisService{}
	m := newLoadedDashboard(t, svc)

	m = pressFilter(t, m, "s")
	m = pressFilter(t, m, "c")

	require.Len(t, svc.listCalls, 3)
	assert.Equal(t, api.CrisisFilter{}, svc.listCalls[2])
	assert.Empty(t, m.FilterSummary())
}

func TestLoadedCrisesPopulateList(t *testing.T) {
	svc := &fakeCrisisService{crises: []model.CrisisRequest{
		{ID: "c-1", OriginalMessage: "Flood in low-lying area", UrgencyLevel: "high"},
		{ID: "c-2", OriginalMessage: "Medical supplies needed", UrgencyLevel: "critical"},
	}}
	m := newLoadedDashboard(t, svc)

	require.Len(t, m.list.Items(), 2)
	item, ok := m.list.Items()[0].(CrisisItem)
	require.True(t, ok)
	assert.Equal(t, "c-1", item.Crisis.ID)
}

func TestSelectionEmitsSelectedCrisisMsg(t *testing.T) {
	svc := &fakeCrisisService{crises: []model.CrisisRequest{
		{ID: "c-7", OriginalMessage: "Rescue needed"},
	}}
	m := newLoadedDashboard(t, svc)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg := cmd()
	selected, ok := msg.(SelectedCrisisMsg)
	require.True(t, ok)
	assert.Equal(t, "c-7", selected.CrisisID)
}

func TestLoadErrorShowsBackendMessage(t *testing.T) {
	svc := &fakeCrisisService{err: &api.APIError{StatusCode: 500, Message: "db down"}}
	m := newLoadedDashboard(t, svc)

	assert.Contains(t, m.View(), "db down")
}
