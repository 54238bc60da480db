package speech

import (
	"context"
	"strings"
)

// RecognitionOptions configure a capture session.
type RecognitionOptions struct {
	Language       string
	Continuous     bool
	InterimResults bool
}

// RecognitionAlternative is one transcription hypothesis.
type RecognitionAlternative struct {
	Transcript string
	Confidence float64
}

// RecognitionResult is one recognized segment. Alternatives are ordered by
// confidence, best first.
type RecognitionResult struct {
	Alternatives []RecognitionAlternative
	Final        bool
}

// RecognitionEvent carries the full cumulative result list of the session,
// so every event is sufficient to rebuild the current transcript.
type RecognitionEvent struct {
	Results []RecognitionResult
}

// Recognizer is a speech-to-text capture facility. Start returns a channel of
// incremental events; the channel closes when capture ends, explicitly or
// naturally. Stop ends capture gracefully, Abort discards it. Both are
// best-effort and never block.
type Recognizer interface {
	Start(ctx context.Context, opts RecognitionOptions) (<-chan RecognitionEvent, error)
	Stop()
	Abort()
}

// Utterance is a narration request.
type Utterance struct {
	Text     string
	Rate     float64
	Pitch    float64
	Language string
}

// Synthesizer is a text-to-speech facility. Speak is fire-and-forget; Cancel
// discards any in-progress narration.
type Synthesizer interface {
	Speak(u Utterance)
	Cancel()
}

// Capabilities reports which speech facilities are present on this host.
// A nil field means the capability is absent; the UI surfaces that instead
// of failing.
type Capabilities struct {
	Recognizer  Recognizer
	Synthesizer Synthesizer
}

// Detect probes the host for speech facilities. No local speech-to-text
// implementation ships, so Recognizer stays nil and voice capture is
// reported unavailable.
func Detect() Capabilities {
	caps := Capabilities{}
	if syn, ok := NewCommandSynthesizer(); ok {
		caps.Synthesizer = syn
	}
	return caps
}

// Transcript flattens an event into display text: the best alternative of
// every segment, in event order, joined by single spaces and trimmed.
func Transcript(ev RecognitionEvent) string {
	parts := make([]string, 0, len(ev.Results))
	for _, r := range ev.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		parts = append(parts, r.Alternatives[0].Transcript)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
