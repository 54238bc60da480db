package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxagent/internal/agent"
	"voxagent/internal/speech"
)

type scriptedClient struct {
	resp  *agent.SearchResponse
	err   error
	calls int
}

func (c *scriptedClient) Search(ctx context.Context, query string) (*agent.SearchResponse, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.resp, nil
}

func newTestModel(client agent.SearchClient) Model {
	a := agent.New(client, speech.Capabilities{}, agent.Options{})
	return NewModel(a)
}

func pressEnter(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model), cmd
}

func TestSubmitEntersSearching(t *testing.T) {
	client := &scriptedClient{resp: &agent.SearchResponse{
		Results: []agent.SearchResult{{Title: "Forecast", Link: "https://example.com", Snippet: "Sunny."}},
		Summary: "Here is what I found for weather. Forecast. Sunny.",
	}}
	m := newTestModel(client)
	m.input.SetValue("weather")

	m, cmd := pressEnter(t, m)
	require.NotNil(t, cmd)
	assert.Equal(t, agent.StatusSearching, m.agent.Status())
}

func TestSearchDoneRendersAndReturnsToIdle(t *testing.T) {
	client := &scriptedClient{resp: &agent.SearchResponse{
		Results: []agent.SearchResult{{Title: "Forecast", Link: "https://example.com", Snippet: "Sunny.", DisplayLink: "example.com"}},
		Summary: "Here is what I found for weather. Forecast. Sunny.",
	}}
	m := newTestModel(client)
	m.input.SetValue("weather")
	m, _ = pressEnter(t, m)

	resp, err := client.Search(context.Background(), "weather")
	require.NoError(t, err)
	next, cmd := m.Update(searchDoneMsg{resp: resp})
	m = next.(Model)

	assert.Equal(t, agent.StatusResponding, m.agent.Status())
	require.NotNil(t, cmd, "responding schedules the return to idle")

	view := m.View()
	assert.Contains(t, view, "Forecast")
	assert.Contains(t, view, "example.com")
	assert.Contains(t, view, "Sunny.")

	next, _ = m.Update(respondingDoneMsg{})
	m = next.(Model)
	assert.Equal(t, agent.StatusIdle, m.agent.Status())
}

func TestSearchFailureShowsMessage(t *testing.T) {
	client := &scriptedClient{err: &agent.GatewayError{StatusCode: 403, Message: "quota exceeded"}}
	m := newTestModel(client)
	m.input.SetValue("news")
	m, _ = pressEnter(t, m)

	_, err := client.Search(context.Background(), "news")
	next, cmd := m.Update(searchDoneMsg{err: err})
	m = next.(Model)

	assert.Nil(t, cmd, "failure skips the responding delay")
	assert.Equal(t, agent.StatusIdle, m.agent.Status())
	assert.Contains(t, m.View(), "quota exceeded")
}

func TestBlankSubmitShowsErrorWithoutRequest(t *testing.T) {
	client := &scriptedClient{}
	m := newTestModel(client)

	m, cmd := pressEnter(t, m)
	assert.Nil(t, cmd)
	assert.Zero(t, client.calls)
	assert.Contains(t, m.View(), "Please enter or speak a query.")
}

func TestLateRecognitionAfterSubmitIsDropped(t *testing.T) {
	client := &scriptedClient{resp: &agent.SearchResponse{Summary: "I could not find any results for weather."}}
	m := newTestModel(client)
	m.input.SetValue("weather")
	m, _ = pressEnter(t, m)
	require.Nil(t, m.events, "submit releases the capture channel")

	// A capture event still in flight when submit cleared the channel must
	// not re-arm the wait: there is no channel left to receive on.
	next, cmd := m.Update(recognitionMsg{ev: speech.RecognitionEvent{Results: []speech.RecognitionResult{
		{Alternatives: []speech.RecognitionAlternative{{Transcript: "stale"}}},
	}}})
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.NotEqual(t, "stale", m.agent.Query())
}

func TestEmptyResultsShowPlaceholder(t *testing.T) {
	m := newTestModel(&scriptedClient{})
	assert.Contains(t, m.View(), "Ask me anything")
}

func TestVoiceUnavailableReported(t *testing.T) {
	m := newTestModel(&scriptedClient{})
	assert.Contains(t, m.View(), "voice input unavailable")
}
