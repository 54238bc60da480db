package agent

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"voxagent/internal/speech"
)

// maxNarratedRunes caps how much of an article gets read out.
const maxNarratedRunes = 800

// ReadAloud fetches the linked article, extracts its readable text and
// narrates the beginning of it, cancelling any in-progress narration. Safe
// to call from a background task: it only touches the synthesizer.
func (a *Agent) ReadAloud(link string) error {
	if a.syn == nil {
		return errors.New("speech synthesis is not available on this system")
	}

	article, err := readability.FromURL(link, 30*time.Second)
	if err != nil {
		return fmt.Errorf("fetch article: %w", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" {
		return errors.New("article has no readable text")
	}

	if runes := []rune(text); len(runes) > maxNarratedRunes {
		text = string(runes[:maxNarratedRunes])
	}

	a.syn.Cancel()
	a.syn.Speak(speech.Utterance{
		Text:     text,
		Rate:     a.opts.Rate,
		Pitch:    a.opts.Pitch,
		Language: a.opts.Language,
	})
	return nil
}
