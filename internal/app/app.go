package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/router"
	"github.com/abhisek/recall/internal/screen"
	"github.com/abhisek/recall/internal/screens/ask"
	quizscreen "github.com/abhisek/recall/internal/screens/quiz"
	"github.com/abhisek/recall/internal/store"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/voice"
)

// Start screens.
const (
	StartQuiz = "quiz"
	StartAsk  = "ask"
)

// Options holds everything the screens need.
type Options struct {
	// Start selects the first screen: StartQuiz (default) or StartAsk.
	Start string

	Controller *quiz.Controller
	Source     quizscreen.QuestionSource
	Backend    ask.QueryService
	Answerer   ask.Answerer
	Events     store.EventRepo

	Recognizer    voice.Recognizer
	RecognizerErr error

	VideoID    string
	IndexID    string
	AskVideoID string
	MediaBase  string
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel with the start screen from opts.
func newAppModel(opts Options) AppModel {
	newAsk := func() screen.Screen {
		return ask.New(ask.Options{
			Backend:       opts.Backend,
			Answerer:      opts.Answerer,
			Events:        opts.Events,
			Recognizer:    opts.Recognizer,
			RecognizerErr: opts.RecognizerErr,
			VideoID:       opts.AskVideoID,
			MediaBase:     opts.MediaBase,
		})
	}

	var initial screen.Screen
	if opts.Start == StartAsk {
		initial = newAsk()
	} else {
		initial = quizscreen.New(quizscreen.Options{
			Controller: opts.Controller,
			Source:     opts.Source,
			Hints:      opts.Backend,
			Events:     opts.Events,
			VideoID:    opts.VideoID,
			IndexID:    opts.IndexID,
			MediaBase:  opts.MediaBase,
			NewAsk:     newAsk,
		})
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.HeaderStatus()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// footerHints returns the active screen's hints followed by Quit. Back is
// dropped when there is nothing to go back to.
func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	khp, ok := active.(screen.KeyHintProvider)
	if !ok {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	var hints []layout.KeyHint
	for _, h := range khp.KeyHints() {
		if h.Key == "Ctrl+C" || (h.Key == "Esc" && m.router.Depth() <= 1) {
			continue
		}
		hints = append(hints, h)
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
