package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxagent/internal/speech"
)

// callLog records cross-fake call ordering.
type callLog struct {
	calls []string
}

func (l *callLog) add(name string) { l.calls = append(l.calls, name) }

type fakeRecognizer struct {
	log      *callLog
	startErr error
	ch       chan speech.RecognitionEvent
	lastOpts speech.RecognitionOptions
}

func (f *fakeRecognizer) Start(ctx context.Context, opts speech.RecognitionOptions) (<-chan speech.RecognitionEvent, error) {
	f.log.add("start")
	f.lastOpts = opts
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.ch = make(chan speech.RecognitionEvent, 8)
	return f.ch, nil
}

func (f *fakeRecognizer) Stop()  { f.log.add("stop") }
func (f *fakeRecognizer) Abort() { f.log.add("abort") }

type fakeSynthesizer struct {
	log    *callLog
	spoken []speech.Utterance
}

func (f *fakeSynthesizer) Speak(u speech.Utterance) {
	f.log.add("speak")
	f.spoken = append(f.spoken, u)
}

func (f *fakeSynthesizer) Cancel() { f.log.add("cancel") }

type fakeClient struct {
	log   *callLog
	resp  *SearchResponse
	err   error
	calls int
}

func (f *fakeClient) Search(ctx context.Context, query string) (*SearchResponse, error) {
	f.log.add("search")
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type fixture struct {
	log    *callLog
	rec    *fakeRecognizer
	syn    *fakeSynthesizer
	client *fakeClient
	agent  *Agent
}

func newFixture() *fixture {
	l := &callLog{}
	rec := &fakeRecognizer{log: l}
	syn := &fakeSynthesizer{log: l}
	client := &fakeClient{log: l, resp: &SearchResponse{
		Results: []SearchResult{{Title: "Forecast", Link: "https://example.com", Snippet: "Sunny."}},
		Summary: "Here is what I found for weather. Forecast. Sunny.",
	}}
	return &fixture{
		log:    l,
		rec:    rec,
		syn:    syn,
		client: client,
		agent: New(client, speech.Capabilities{Recognizer: rec, Synthesizer: syn}, Options{
			Rate: 1.0, Pitch: 1.0, Language: "en-US",
		}),
	}
}

// submit mimics the UI loop: validate, then run the request and fold the
// outcome back in.
func (f *fixture) submit(query string) {
	if !f.agent.BeginSearch(query) {
		return
	}
	resp, err := f.client.Search(context.Background(), f.agent.Query())
	f.agent.CompleteSearch(resp, err)
}

func TestBlankSubmit(t *testing.T) {
	f := newFixture()
	for _, q := range []string{"", "   "} {
		f.submit(q)
		assert.Equal(t, StatusIdle, f.agent.Status())
		assert.Equal(t, "Please enter or speak a query.", f.agent.Err())
	}
	assert.Zero(t, f.client.calls, "blank input must not produce a network call")
}

func TestSuccessfulSearchNarrates(t *testing.T) {
	f := newFixture()
	f.submit("weather")

	assert.Equal(t, StatusResponding, f.agent.Status())
	assert.Len(t, f.agent.Results(), 1)
	assert.Equal(t, f.client.resp.Summary, f.agent.Summary())

	require.Len(t, f.syn.spoken, 1)
	assert.Equal(t, f.client.resp.Summary, f.syn.spoken[0].Text)
	assert.Equal(t, "en-US", f.syn.spoken[0].Language)

	// Any prior narration is cancelled before the new one starts.
	require.GreaterOrEqual(t, len(f.log.calls), 2)
	assert.Equal(t, []string{"search", "cancel", "speak"}, f.log.calls)

	f.agent.FinishResponding()
	assert.Equal(t, StatusIdle, f.agent.Status())
}

func TestFailedSearchKeepsPriorResults(t *testing.T) {
	f := newFixture()
	f.submit("weather")
	f.agent.FinishResponding()

	f.client.err = &GatewayError{StatusCode: 403, Message: "quota exceeded"}
	f.submit("news")

	assert.Equal(t, StatusIdle, f.agent.Status(), "failure skips responding")
	assert.Equal(t, "quota exceeded", f.agent.Err())
	assert.Len(t, f.agent.Results(), 1, "prior results stay visible")
}

func TestFailedSearchGenericMessage(t *testing.T) {
	f := newFixture()
	f.client.err = errors.New("connection refused")
	f.submit("news")

	assert.Equal(t, "Something went wrong. Please try again.", f.agent.Err())
	assert.Equal(t, StatusIdle, f.agent.Status())
}

func TestSubmitWhileListeningAbortsCapture(t *testing.T) {
	f := newFixture()
	_, err := f.agent.StartListening(context.Background())
	require.NoError(t, err)
	require.Equal(t, StatusListening, f.agent.Status())

	f.submit("weather")

	// The capture abort must precede the search request.
	abortIdx, searchIdx := -1, -1
	for i, c := range f.log.calls {
		switch c {
		case "abort":
			abortIdx = i
		case "search":
			searchIdx = i
		}
	}
	require.NotEqual(t, -1, abortIdx)
	require.NotEqual(t, -1, searchIdx)
	assert.Less(t, abortIdx, searchIdx)
	assert.Equal(t, StatusResponding, f.agent.Status())
}

func TestListeningLifecycle(t *testing.T) {
	f := newFixture()
	_, err := f.agent.StartListening(context.Background())
	require.NoError(t, err)

	assert.True(t, f.rec.lastOpts.InterimResults)
	assert.False(t, f.rec.lastOpts.Continuous)

	f.agent.HandleRecognition(speech.RecognitionEvent{Results: []speech.RecognitionResult{
		{Alternatives: []speech.RecognitionAlternative{{Transcript: "what is"}}},
	}})
	assert.Equal(t, "what is", f.agent.Transcript())
	assert.Equal(t, "what is", f.agent.Query())

	f.agent.HandleRecognition(speech.RecognitionEvent{Results: []speech.RecognitionResult{
		{Alternatives: []speech.RecognitionAlternative{{Transcript: "what is"}}},
		{Alternatives: []speech.RecognitionAlternative{{Transcript: "the weather"}}},
	}})
	assert.Equal(t, "what is the weather", f.agent.Transcript())

	f.agent.CaptureEnded()
	assert.Equal(t, StatusIdle, f.agent.Status())
	assert.Equal(t, "what is the weather", f.agent.Query(), "transcript survives capture end")
}

func TestStartListeningClearsPriorState(t *testing.T) {
	f := newFixture()
	f.submit("")
	require.NotEmpty(t, f.agent.Err())

	_, err := f.agent.StartListening(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.agent.Err())
	assert.Empty(t, f.agent.Transcript())
}

func TestStartListeningFailure(t *testing.T) {
	f := newFixture()
	f.rec.startErr = errors.New("mic busy")

	_, err := f.agent.StartListening(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusIdle, f.agent.Status(), "start failure never enters listening")
	assert.Equal(t, "Could not start voice capture.", f.agent.Err())
}

func TestStartListeningWithoutRecognizer(t *testing.T) {
	l := &callLog{}
	a := New(&fakeClient{log: l}, speech.Capabilities{}, Options{})

	assert.False(t, a.VoiceAvailable())
	_, err := a.StartListening(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusIdle, a.Status())
	assert.NotEmpty(t, a.Err())
}

func TestStaleCompletionIgnored(t *testing.T) {
	f := newFixture()
	// A completion arriving while idle (eg. after an abort) must not move
	// the state machine.
	f.agent.CompleteSearch(f.client.resp, nil)
	assert.Equal(t, StatusIdle, f.agent.Status())
	assert.Empty(t, f.agent.Results())
}
