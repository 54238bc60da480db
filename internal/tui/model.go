package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"voxagent/internal/agent"
	"voxagent/internal/speech"
)

// Model is the root Bubble Tea model. It owns the agent state machine and
// runs its I/O (gateway requests, capture events, narration delays) as
// commands, feeding completions back in as messages.
type Model struct {
	agent *agent.Agent

	input textinput.Model
	spin  spinner.Model

	events   <-chan speech.RecognitionEvent
	selected int
	notice   string
	width    int
	quitting bool
}

// NewModel creates the root model around a wired agent.
func NewModel(a *agent.Agent) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask me anything..."
	ti.CharLimit = 256
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		agent: a,
		input: ti,
		spin:  sp,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// searchCmd issues the gateway request for query.
func (m Model) searchCmd(query string) tea.Cmd {
	client := m.agent.Client()
	return func() tea.Msg {
		resp, err := client.Search(context.Background(), query)
		return searchDoneMsg{resp: resp, err: err}
	}
}

// waitForEvent blocks on the capture channel until the next event or its
// close.
func waitForEvent(ch <-chan speech.RecognitionEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return captureEndedMsg{}
		}
		return recognitionMsg{ev: ev}
	}
}

func respondingDoneCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return respondingDoneMsg{}
	})
}

func (m Model) readCmd(link string) tea.Cmd {
	a := m.agent
	return func() tea.Msg {
		return readDoneMsg{err: a.ReadAloud(link)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case recognitionMsg:
		// Capture may already be gone (submit aborts it); never re-arm the
		// wait on a nil channel.
		if m.events == nil {
			return m, nil
		}
		m.agent.HandleRecognition(msg.ev)
		m.input.SetValue(m.agent.Query())
		m.input.CursorEnd()
		return m, waitForEvent(m.events)

	case captureEndedMsg:
		m.agent.CaptureEnded()
		m.events = nil
		return m, nil

	case searchDoneMsg:
		m.agent.CompleteSearch(msg.resp, msg.err)
		m.selected = 0
		if m.agent.Status() == agent.StatusResponding {
			return m, respondingDoneCmd(m.agent.RespondDelay())
		}
		return m, nil

	case respondingDoneMsg:
		m.agent.FinishResponding()
		return m, nil

	case readDoneMsg:
		if msg.err != nil {
			m.notice = "Could not read the article aloud."
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		return m.submit()

	case "ctrl+t":
		return m.toggleListening()

	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down":
		if m.selected < len(m.agent.Results())-1 {
			m.selected++
		}
		return m, nil

	case "ctrl+r":
		m.notice = ""
		results := m.agent.Results()
		if m.selected >= 0 && m.selected < len(results) {
			return m, m.readCmd(results[m.selected].Link)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the query submission transition: blank guard, capture abort,
// then the gateway request.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.agent.Status() == agent.StatusSearching {
		return m, nil
	}
	m.notice = ""
	query := m.input.Value()
	if !m.agent.BeginSearch(query) {
		return m, nil
	}
	m.events = nil
	return m, tea.Batch(m.searchCmd(m.agent.Query()), m.spin.Tick)
}

// toggleListening starts capture from idle and stops it while listening.
func (m Model) toggleListening() (tea.Model, tea.Cmd) {
	switch m.agent.Status() {
	case agent.StatusListening:
		m.agent.StopListening()
		return m, nil
	case agent.StatusIdle:
		m.notice = ""
		ch, err := m.agent.StartListening(context.Background())
		if err != nil {
			return m, nil
		}
		m.events = ch
		m.input.SetValue("")
		return m, waitForEvent(ch)
	default:
		return m, nil
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("voxagent"))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if errMsg := m.agent.Err(); errMsg != "" {
		b.WriteString(errorStyle.Render(errMsg))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.resultsView())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))

	return b.String()
}

func (m Model) statusLine() string {
	switch m.agent.Status() {
	case agent.StatusListening:
		return listeningStyle.Render("● listening · " + m.agent.Transcript())
	case agent.StatusSearching:
		return statusStyle.Render(m.spin.View() + "searching")
	case agent.StatusResponding:
		return statusStyle.Render("responding")
	default:
		return statusStyle.Render("idle")
	}
}

func (m Model) resultsView() string {
	results := m.agent.Results()
	if len(results) == 0 {
		return placeholderStyle.Render("Ask me anything - type a query" + m.voiceHint() + ".")
	}

	var b strings.Builder
	for i, r := range results {
		title := resultTitleStyle
		cursor := "  "
		if i == m.selected {
			title = selectedResultStyle
			cursor = "> "
		}
		b.WriteString(cursor)
		b.WriteString(title.Render(r.Title))
		if r.DisplayLink != "" {
			b.WriteString("  ")
			b.WriteString(resultHostStyle.Render(r.DisplayLink))
		}
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(snippetStyle.Render(r.Snippet))
		b.WriteString("\n")
		b.WriteString("  ")
		b.WriteString(resultHostStyle.Render(r.Link))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func (m Model) voiceHint() string {
	if m.agent.VoiceAvailable() {
		return " or press ctrl+t to speak"
	}
	return ""
}

func (m Model) helpLine() string {
	parts := []string{"enter: search"}
	if m.agent.VoiceAvailable() {
		parts = append(parts, "ctrl+t: voice")
	} else {
		parts = append(parts, "voice input unavailable")
	}
	if m.agent.SpeechAvailable() {
		parts = append(parts, "ctrl+r: read result aloud")
	}
	parts = append(parts, "↑/↓: select", "esc: quit")
	return strings.Join(parts, " · ")
}
