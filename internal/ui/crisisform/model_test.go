package crisisform

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisis-matcher/dispatch/internal/api"
	"github.com/crisis-matcher/dispatch/internal/model"
)

type fakeCrisisService struct {
	created []api.CreateCrisisRequest
	result  *api.CreateCrisisResult
	err     error
}

func (f *fakeCrisisService) Create(ctx context.Context, req api.CreateCrisisRequest) (*api.CreateCrisisResult, error) {
	f.created = append(f.created, req)
	return f.result, f.err
}

func (f *fakeCrisisService) List(ctx context.Context, filter api.CrisisFilter) ([]model.CrisisRequest, error) {
	return nil, nil
}

func (f *fakeCrisisService) Get(ctx context.Context, id string) (*api.CrisisDetail, error) {
	return nil, nil
}

func (f *fakeCrisisService) UpdateStatus(ctx context.Context, id, status string) (*model.CrisisRequest, error) {
	return nil, nil
}

func sampleResult() *api.CreateCrisisResult {
	return &api.CreateCrisisResult{
		CrisisRequest: model.CrisisRequest{
			ID:              "cr-1",
			OriginalMessage: "Need 50 blankets urgently",
			UrgencyScore:    7.5,
			UrgencyLevel:    "high",
			Status:          "matched",
		},
		ExtractedEntities: model.UrgencyData{
			UrgencyScore: 7.5,
			UrgencyLevel: "high",
			NeedType:     "blankets",
			LocationText: "Jayanagar",
		},
		Matches: []model.Match{
			{NGOName: "Relief Works", ResourceName: "Wool blankets", MatchScore: 92, QuantityAvailable: 200, Unit: "pieces"},
			{NGOName: "Shelter Aid", ResourceName: "Thermal blankets", MatchScore: 81, QuantityAvailable: 60, Unit: "pieces"},
		},
		ProcessingTimeMs: 1500,
		DatabaseStats:    &api.DatabaseStats{TotalMatchesFound: 2},
	}
}

func TestSubmitSendsMessageAndSource(t *testing.T) {
	svc := &fakeCrisisService{result: sampleResult()}
	m := New(svc, 80, 24)
	m.fb.message = "Need 50 blankets urgently"
	m.fb.source = model.SourceManual

	cmd := m.submit()
	msg := cmd()

	created, ok := msg.(crisisCreatedMsg)
	require.True(t, ok)
	require.NoError(t, created.err)
	require.Len(t, svc.created, 1)
	assert.Equal(t, "Need 50 blankets urgently", svc.created[0].OriginalMessage)
	assert.Equal(t, model.SourceManual, svc.created[0].MessageSource)
}

func TestSuccessfulSubmissionShowsResultPanel(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, 80, 24)
	m.state = stateProcessing

	m, _ = m.Update(crisisCreatedMsg{result: sampleResult()})

	require.True(t, m.ShowingResult())
	out := m.renderResult()
	assert.Contains(t, out, "Crisis request created")
	assert.Contains(t, out, "Relief Works")
	assert.Contains(t, out, "92% match")
	assert.Contains(t, out, "blankets")
	assert.Contains(t, out, "1500ms")
}

func TestFailedSubmissionReenablesFormWithMessage(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, 80, 24)
	m.state = stateProcessing
	m.fb.message = "some message"

	m, _ = m.Update(crisisCreatedMsg{
		err: &api.APIError{StatusCode: 500, Message: "AI scoring unavailable"},
	})

	assert.Equal(t, stateForm, m.state)
	assert.Contains(t, m.View(), "AI scoring unavailable")
	// The typed message survives the round trip.
	assert.Equal(t, "some message", m.fb.message)
}

func TestEmptyMessageFailsValidation(t *testing.T) {
	assert.Error(t, validateMessage(""))
	assert.Error(t, validateMessage("   \n\t"))
	assert.NoError(t, validateMessage("Need water in Yelahanka"))
}

func TestExampleShortcutPrefillsMessage(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, 80, 24)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, model.ExampleMessages[0], m.fb.message)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, model.ExampleMessages[1], m.fb.message)
}

func TestResultActionsEmitParentMessages(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, 80, 24)
	m.state = stateProcessing
	m, _ = m.Update(crisisCreatedMsg{result: sampleResult()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	require.NotNil(t, cmd)
	details, ok := cmd().(ViewDetailsMsg)
	require.True(t, ok)
	assert.Equal(t, "cr-1", details.CrisisID)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	_, ok = cmd().(ReturnToDashboardMsg)
	assert.True(t, ok)
}

func TestNewRequestResetsForm(t *testing.T) {
	svc := &fakeCrisisService{}
	m := New(svc, 80, 24)
	m.state = stateProcessing
	m, _ = m.Update(crisisCreatedMsg{result: sampleResult()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Equal(t, stateForm, m.state)
	assert.Empty(t, m.fb.message)
	assert.Nil(t, m.result)
}
