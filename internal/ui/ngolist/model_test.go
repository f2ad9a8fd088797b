package ngolist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/keys"
	"github.com/crisis-matcher/dispatch/internal/model"
)

type fakeNGOService struct {
	ngos  []model.NGO
	err   error
	calls int
}

func (f *fakeNGOService) List(ctx context.Context) ([]model.NGO, error) {
	f.calls++
	return f.ngos, f.err
}

func (f *fakeNGOService) Get(ctx context.Context, id string) (*model.NGO, error) {
	return nil, nil
}

func TestLoadPopulatesDirectory(t *testing.T) {
	svc := &fakeNGOService{ngos: []model.NGO{
		{ID: "n-1", NGOName: "Relief Works", City: "Bengaluru", State: "Karnataka", Sectors: []string{"medical", "shelter"}},
		{ID: "n-2", NGOName: "Shelter Aid", DarpanID: "KA/2019/0012345"},
	}}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	cmd := m.LoadNGOs()
	msg := cmd()
	loaded, ok := msg.(NGOsLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)

	m, _ = m.Update(loaded)
	require.Len(t, m.list.Items(), 2)

	out := m.View()
	assert.Contains(t, out, "Relief Works")
	assert.Contains(t, out, "Bengaluru, Karnataka")
}

func TestLoadErrorShowsMessage(t *testing.T) {
	svc := &fakeNGOService{err: &api.APIError{StatusCode: 503, Message: "directory offline"}}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	cmd := m.LoadNGOs()
	m, _ = m.Update(cmd())

	assert.Contains(t, m.View(), "directory offline")
	assert.Equal(t, 1, svc.calls)
}

func TestEmptyDirectoryState(t *testing.T) {
	svc := &fakeNGOService{}
	m := New(svc, keys.DefaultKeyMap(), 80, 24)

	cmd := m.LoadNGOs()
	m, _ = m.Update(cmd())

	assert.Contains(t, m.View(), "No NGOs registered yet")
}
