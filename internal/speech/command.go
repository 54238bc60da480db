package speech

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// espeak words-per-minute at rate 1.0; matches the default speaking rate of
// the say command.
const baseWordsPerMinute = 175.0

// CommandSynthesizer narrates through a local text-to-speech binary
// (macOS say, or espeak/espeak-ng elsewhere). Starting a new utterance kills
// any in-progress one.
type CommandSynthesizer struct {
	mu     sync.Mutex
	binary string
	cmd    *exec.Cmd
}

// NewCommandSynthesizer probes for a known TTS binary. The second return
// value reports presence.
func NewCommandSynthesizer() (*CommandSynthesizer, bool) {
	for _, bin := range []string{"say", "espeak-ng", "espeak"} {
		if path, err := exec.LookPath(bin); err == nil {
			return &CommandSynthesizer{binary: path}, true
		}
	}
	return nil, false
}

var _ Synthesizer = (*CommandSynthesizer)(nil)

// Speak starts narrating u, cancelling any narration still playing.
func (s *CommandSynthesizer) Speak(u Utterance) {
	if strings.TrimSpace(u.Text) == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.killLocked()

	cmd := exec.Command(s.binary, s.args(u)...)
	if err := cmd.Start(); err != nil {
		return
	}
	s.cmd = cmd

	// Reap the process; narration completion is not observed further.
	go cmd.Wait()
}

// Cancel kills any in-progress narration.
func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.killLocked()
}

func (s *CommandSynthesizer) killLocked() {
	if s.cmd != nil && s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd = nil
}

func (s *CommandSynthesizer) args(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1.0
	}
	wpm := fmt.Sprintf("%.0f", baseWordsPerMinute*rate)

	switch filepath.Base(s.binary) {
	case "say":
		return []string{"-r", wpm, u.Text}
	default:
		// espeak / espeak-ng
		pitch := u.Pitch
		if pitch <= 0 {
			pitch = 1.0
		}
		args := []string{"-s", wpm, "-p", fmt.Sprintf("%.0f", 50*pitch)}
		if u.Language != "" {
			args = append(args, "-v", strings.ToLower(u.Language))
		}
		return append(args, u.Text)
	}
}
