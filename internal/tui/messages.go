package tui

import (
	"voxagent/internal/agent"
	"voxagent/internal/speech"
)

// searchDoneMsg carries the outcome of a gateway request.
type searchDoneMsg struct {
	resp *agent.SearchResponse
	err  error
}

// recognitionMsg carries one incremental capture event.
type recognitionMsg struct {
	ev speech.RecognitionEvent
}

// captureEndedMsg signals that voice capture ended, explicitly or naturally.
type captureEndedMsg struct{}

// respondingDoneMsg signals the end of the responding delay.
type respondingDoneMsg struct{}

// readDoneMsg carries the outcome of reading an article aloud.
type readDoneMsg struct {
	err error
}
