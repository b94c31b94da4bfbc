// Package clip models playback of a video segment bounded by a hint window.
package clip

import (
	"fmt"
	"math"

	"github.com/abhisek/recall/internal/quiz"
)

// Window is the playable range of a clip, in seconds from the start of the video.
type Window struct {
	Start float64
	End   float64
}

// FromHint returns the window described by a timing hint.
func FromHint(h quiz.TimingHint) Window {
	return Window{Start: h.Start, End: h.End}
}

// Duration returns the window length in seconds.
func (w Window) Duration() float64 { return w.End - w.Start }

// Contains reports whether t lies within the window.
func (w Window) Contains(t float64) bool { return t >= w.Start && t <= w.End }

// Validate checks the window is non-empty and starts at or after zero.
func (w Window) Validate() error {
	if w.Start < 0 || math.IsNaN(w.Start) || math.IsNaN(w.End) {
		return fmt.Errorf("clip start %v is invalid", w.Start)
	}
	if w.End <= w.Start {
		return fmt.Errorf("clip end %v is not after start %v", w.End, w.Start)
	}
	return nil
}

// Player tracks a playback head that never leaves its window. Seeking
// outside the window snaps back to the start, and reaching the end pauses
// and rewinds.
type Player struct {
	win     Window
	pos     float64
	playing bool
}

// NewPlayer returns a paused player positioned at the window start.
func NewPlayer(w Window) *Player {
	return &Player{win: w, pos: w.Start}
}

// Window returns the player's window.
func (p *Player) Window() Window { return p.win }

// Position returns the playback head in seconds.
func (p *Player) Position() float64 { return p.pos }

// Playing reports whether the player is running.
func (p *Player) Playing() bool { return p.playing }

// Play starts playback from the current position.
func (p *Player) Play() { p.playing = true }

// Pause stops playback, keeping the position.
func (p *Player) Pause() { p.playing = false }

// Toggle flips between playing and paused.
func (p *Player) Toggle() { p.playing = !p.playing }

// Seek moves the head to t. A target outside the window snaps to the
// start; the return value reports whether that happened.
func (p *Player) Seek(t float64) bool {
	if !p.win.Contains(t) {
		p.pos = p.win.Start
		return true
	}
	p.pos = t
	return false
}

// SeekBy moves the head by delta seconds, clamped to the window edges.
func (p *Player) SeekBy(delta float64) {
	t := p.pos + delta
	switch {
	case t < p.win.Start:
		t = p.win.Start
	case t > p.win.End:
		t = p.win.End
	}
	p.pos = t
}

// Tick advances the head by dt seconds while playing. It returns true when
// the end of the window was reached, in which case the player is paused and
// rewound to the start. A head found outside the window is snapped back.
func (p *Player) Tick(dt float64) bool {
	if !p.win.Contains(p.pos) {
		p.pos = p.win.Start
	}
	if !p.playing {
		return false
	}
	p.pos += dt
	if p.pos >= p.win.End {
		p.pos = p.win.Start
		p.playing = false
		return true
	}
	return false
}

// Progress returns how far through the window the head is, in [0, 1].
func (p *Player) Progress() float64 {
	d := p.win.Duration()
	if d <= 0 {
		return 0
	}
	f := (p.pos - p.win.Start) / d
	return math.Max(0, math.Min(1, f))
}

// Elapsed returns the seconds played since the window start.
func (p *Player) Elapsed() float64 { return p.pos - p.win.Start }
