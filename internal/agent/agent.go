package agent

import (
	"context"
	"errors"
	"strings"
	"time"

	"voxagent/internal/speech"
)

// Status is the agent's single active state. Transitions are driven by user
// actions and by completion callbacks from the speech and network
// subsystems; no two states are ever active at once.
type Status int

const (
	StatusIdle Status = iota
	StatusListening
	StatusSearching
	StatusResponding
)

func (s Status) String() string {
	switch s {
	case StatusListening:
		return "listening"
	case StatusSearching:
		return "searching"
	case StatusResponding:
		return "responding"
	default:
		return "idle"
	}
}

// genericErrMessage is shown when a failure carries no gateway message.
const genericErrMessage = "Something went wrong. Please try again."

// DefaultRespondDelay is how long the agent stays in responding before
// returning to idle.
const DefaultRespondDelay = 1500 * time.Millisecond

// SearchClient issues one gateway search per call.
type SearchClient interface {
	Search(ctx context.Context, query string) (*SearchResponse, error)
}

// Options tune narration and the responding delay.
type Options struct {
	Rate         float64
	Pitch        float64
	Language     string
	RespondDelay time.Duration
}

// Agent is the client-side state machine over idle, listening, searching and
// responding. It performs no I/O itself: the caller runs the network and
// capture channels and feeds completions back in. All methods must be called
// from a single goroutine (the UI event loop).
type Agent struct {
	client SearchClient
	rec    speech.Recognizer
	syn    speech.Synthesizer
	opts   Options

	status     Status
	query      string
	transcript string
	results    []SearchResult
	summary    string
	errMsg     string
}

// New wires an agent with the detected speech capabilities. Either capability
// may be absent (nil); its absence is reported rather than failed on.
func New(client SearchClient, caps speech.Capabilities, opts Options) *Agent {
	if opts.RespondDelay <= 0 {
		opts.RespondDelay = DefaultRespondDelay
	}
	return &Agent{
		client: client,
		rec:    caps.Recognizer,
		syn:    caps.Synthesizer,
		opts:   opts,
	}
}

func (a *Agent) Status() Status           { return a.status }
func (a *Agent) Query() string            { return a.query }
func (a *Agent) Transcript() string       { return a.transcript }
func (a *Agent) Results() []SearchResult  { return a.results }
func (a *Agent) Summary() string          { return a.summary }
func (a *Agent) Err() string              { return a.errMsg }
func (a *Agent) RespondDelay() time.Duration { return a.opts.RespondDelay }

// VoiceAvailable reports whether a speech-to-text capability is present.
func (a *Agent) VoiceAvailable() bool { return a.rec != nil }

// SpeechAvailable reports whether a text-to-speech capability is present.
func (a *Agent) SpeechAvailable() bool { return a.syn != nil }

// Client returns the gateway client for callers that run the actual request.
func (a *Agent) Client() SearchClient { return a.client }

// SetQuery updates the pending query from typed input.
func (a *Agent) SetQuery(q string) { a.query = q }

// StartListening begins voice capture: prior transcript and error are
// cleared, any narration is cancelled, and capture starts in
// non-continuous, interim-results mode. On start failure the agent stays
// idle with a visible error. The returned channel delivers incremental
// events and closes when capture ends.
func (a *Agent) StartListening(ctx context.Context) (<-chan speech.RecognitionEvent, error) {
	if a.rec == nil {
		err := errors.New("voice input is not available on this system")
		a.errMsg = "Voice input is not available on this system."
		return nil, err
	}
	if a.status != StatusIdle {
		return nil, errors.New("agent is busy")
	}

	if a.syn != nil {
		a.syn.Cancel()
	}
	a.transcript = ""
	a.errMsg = ""

	ch, err := a.rec.Start(ctx, speech.RecognitionOptions{
		Language:       a.opts.Language,
		Continuous:     false,
		InterimResults: true,
	})
	if err != nil {
		a.errMsg = "Could not start voice capture."
		return nil, err
	}

	a.status = StatusListening
	return ch, nil
}

// HandleRecognition folds an incremental capture event into the transcript
// and the pending query.
func (a *Agent) HandleRecognition(ev speech.RecognitionEvent) {
	if a.status != StatusListening {
		return
	}
	t := speech.Transcript(ev)
	a.transcript = t
	a.query = t
}

// StopListening requests a graceful end of capture. The transition back to
// idle happens when the capture channel closes (CaptureEnded).
func (a *Agent) StopListening() {
	if a.status == StatusListening && a.rec != nil {
		a.rec.Stop()
	}
}

// CaptureEnded records that capture finished, explicitly or naturally.
func (a *Agent) CaptureEnded() {
	if a.status == StatusListening {
		a.status = StatusIdle
	}
}

// BeginSearch validates the query and enters searching. Active voice capture
// is aborted first, best-effort. The caller issues the actual gateway
// request and reports back via CompleteSearch. Returns false when the query
// is blank; no request must be made then.
func (a *Agent) BeginSearch(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		a.errMsg = "Please enter or speak a query."
		return false
	}

	if a.status == StatusListening && a.rec != nil {
		a.rec.Abort()
	}

	a.query = q
	a.errMsg = ""
	a.status = StatusSearching
	return true
}

// CompleteSearch folds the outcome of the gateway request back in. Success
// stores the results, enters responding and starts narration (cancelling any
// in-progress one). Failure surfaces the gateway message when available and
// returns straight to idle, keeping prior results visible.
func (a *Agent) CompleteSearch(resp *SearchResponse, err error) {
	if a.status != StatusSearching {
		return
	}

	if err != nil {
		var ge *GatewayError
		if errors.As(err, &ge) {
			a.errMsg = ge.Message
		} else {
			a.errMsg = genericErrMessage
		}
		a.status = StatusIdle
		return
	}

	a.results = resp.Results
	a.summary = resp.Summary
	a.status = StatusResponding

	if a.syn != nil {
		a.syn.Cancel()
		a.syn.Speak(speech.Utterance{
			Text:     resp.Summary,
			Rate:     a.opts.Rate,
			Pitch:    a.opts.Pitch,
			Language: a.opts.Language,
		})
	}
}

// FinishResponding returns to idle after the responding delay has elapsed.
func (a *Agent) FinishResponding() {
	if a.status == StatusResponding {
		a.status = StatusIdle
	}
}
