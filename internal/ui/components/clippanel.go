package components

import (
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/recall/internal/clip"
	"github.com/abhisek/recall/internal/quiz"
	"github.com/abhisek/recall/internal/ui/layout"
	"github.com/abhisek/recall/internal/ui/theme"
)

const (
	clipTickInterval = 250 * time.Millisecond
	clipSeekStep     = 5.0
)

type clipTickMsg struct {
	seq int
	at  time.Time
}

// ClipExitMsg is sent when the external player launched with "o" exits.
type ClipExitMsg struct {
	Err error
}

// ClipPanel shows a hint clip with a clamped playback head. Space toggles
// playback, ←→ seek while Focused, and "o" opens the video window in an
// external player.
type ClipPanel struct {
	hint     quiz.TimingHint
	player   *clip.Player
	mediaURL string
	seq      int
	last     time.Time
	status   string

	Focused bool
}

// NewClipPanel returns a paused panel for hint. The window must be valid.
func NewClipPanel(hint quiz.TimingHint, mediaBase string) (ClipPanel, error) {
	w := clip.FromHint(hint)
	if err := w.Validate(); err != nil {
		return ClipPanel{}, err
	}
	return ClipPanel{
		hint:     hint,
		player:   clip.NewPlayer(w),
		mediaURL: clip.MediaURL(mediaBase, hint.VideoID),
	}, nil
}

// Player returns the underlying player.
func (c ClipPanel) Player() *clip.Player { return c.player }

// MediaURL returns the URL of the full recording.
func (c ClipPanel) MediaURL() string { return c.mediaURL }

// Update handles playback keys and tick messages.
func (c ClipPanel) Update(msg tea.Msg) (ClipPanel, tea.Cmd) {
	if c.player == nil {
		return c, nil
	}
	switch msg := msg.(type) {
	case clipTickMsg:
		if msg.seq != c.seq || !c.player.Playing() {
			return c, nil
		}
		dt := msg.at.Sub(c.last).Seconds()
		c.last = msg.at
		if c.player.Tick(dt) {
			return c, nil
		}
		return c, c.tick()

	case ClipExitMsg:
		if msg.Err != nil {
			slog.Warn("external player failed", "err", msg.Err)
			c.status = "Player exited with an error"
		} else {
			c.status = ""
		}
		return c, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "space":
			c.player.Toggle()
			if c.player.Playing() {
				return c, c.start()
			}
		case "left":
			if c.Focused {
				c.player.SeekBy(-clipSeekStep)
			}
		case "right":
			if c.Focused {
				c.player.SeekBy(clipSeekStep)
			}
		case "o":
			return c, c.openExternal()
		}
	}
	return c, nil
}

func (c *ClipPanel) start() tea.Cmd {
	c.seq++
	c.last = time.Now()
	return c.tick()
}

func (c ClipPanel) tick() tea.Cmd {
	seq := c.seq
	return tea.Tick(clipTickInterval, func(t time.Time) tea.Msg {
		return clipTickMsg{seq: seq, at: t}
	})
}

func (c *ClipPanel) openExternal() tea.Cmd {
	cmd, err := clip.ExternalCommand(c.mediaURL, c.player.Window())
	if err != nil {
		c.status = err.Error()
		return nil
	}
	c.player.Pause()
	c.status = "Playing in external player…"
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return ClipExitMsg{Err: err}
	})
}

// View renders the panel inside a card of content width cw.
func (c ClipPanel) View(cw int) string {
	if c.player == nil {
		return ""
	}
	w := c.player.Window()
	title := theme.Selected.Render("Hint clip") + "  " +
		theme.Dimmed.Render(fmt.Sprintf("%s – %s of your visit", clip.FormatTime(w.Start), clip.FormatTime(w.End)))

	body := title + "\n\n" + ClipBar(c.player, cw-6)
	if c.status != "" {
		body += "\n" + theme.Hint.Render(c.status)
	}
	return Card(body, cw, c.Focused)
}

// KeyHints returns the footer hints for the panel's controls.
func (c ClipPanel) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Space", Description: "Play/Pause"}}
	if c.Focused {
		hints = append(hints, layout.KeyHint{Key: "←→", Description: "Seek"})
	}
	return append(hints, layout.KeyHint{Key: "O", Description: "Open video"})
}
