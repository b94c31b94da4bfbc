package clip

import (
	"errors"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abhisek/recall/internal/quiz"
)

func TestFromHint(t *testing.T) {
	w := FromHint(quiz.TimingHint{Start: 12.5, End: 30, VideoID: "v"})
	if w.Start != 12.5 || w.End != 30 {
		t.Errorf("FromHint = %+v", w)
	}
	if w.Duration() != 17.5 {
		t.Errorf("Duration = %v, want 17.5", w.Duration())
	}
}

func TestWindow_Validate(t *testing.T) {
	tests := []struct {
		name    string
		w       Window
		wantErr bool
	}{
		{"valid", Window{Start: 0, End: 5}, false},
		{"empty", Window{Start: 5, End: 5}, true},
		{"reversed", Window{Start: 6, End: 5}, true},
		{"negative start", Window{Start: -1, End: 5}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.w.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlayer_StartsPausedAtStart(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 20})
	if p.Position() != 10 {
		t.Errorf("Position = %v, want 10", p.Position())
	}
	if p.Playing() {
		t.Error("new player should be paused")
	}
}

func TestPlayer_SeekOutsideSnapsToStart(t *testing.T) {
	tests := []struct {
		name     string
		target   float64
		wantPos  float64
		wantSnap bool
	}{
		{"inside", 15, 15, false},
		{"at start", 10, 10, false},
		{"at end", 20, 20, false},
		{"before", 3, 10, true},
		{"after", 25, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPlayer(Window{Start: 10, End: 20})
			snapped := p.Seek(tt.target)
			if snapped != tt.wantSnap {
				t.Errorf("snapped = %v, want %v", snapped, tt.wantSnap)
			}
			if p.Position() != tt.wantPos {
				t.Errorf("Position = %v, want %v", p.Position(), tt.wantPos)
			}
		})
	}
}

func TestPlayer_SeekBy_Clamps(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 20})
	p.SeekBy(-5)
	if p.Position() != 10 {
		t.Errorf("Position = %v, want 10", p.Position())
	}
	p.SeekBy(50)
	if p.Position() != 20 {
		t.Errorf("Position = %v, want 20", p.Position())
	}
}

func TestPlayer_TickPausedDoesNotMove(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 20})
	if p.Tick(1) {
		t.Error("paused tick should not reach end")
	}
	if p.Position() != 10 {
		t.Errorf("Position = %v, want 10", p.Position())
	}
}

func TestPlayer_ReachingEndPausesAndRewinds(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 12})
	p.Play()

	if p.Tick(1) {
		t.Fatal("should not reach end after 1s")
	}
	if p.Position() != 11 {
		t.Errorf("Position = %v, want 11", p.Position())
	}
	if !p.Tick(1) {
		t.Fatal("expected end reached")
	}
	if p.Playing() {
		t.Error("player should pause at end")
	}
	if p.Position() != 10 {
		t.Errorf("Position = %v, want 10", p.Position())
	}
}

func TestPlayer_TickSnapsStrayHead(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 20})
	p.pos = 42
	p.Tick(0)
	if p.Position() != 10 {
		t.Errorf("Position = %v, want 10", p.Position())
	}
}

func TestPlayer_Toggle(t *testing.T) {
	p := NewPlayer(Window{Start: 0, End: 1})
	p.Toggle()
	if !p.Playing() {
		t.Error("expected playing after toggle")
	}
	p.Toggle()
	if p.Playing() {
		t.Error("expected paused after second toggle")
	}
}

func TestPlayer_Progress(t *testing.T) {
	p := NewPlayer(Window{Start: 10, End: 20})
	p.Seek(15)
	if p.Progress() != 0.5 {
		t.Errorf("Progress = %v, want 0.5", p.Progress())
	}
	if p.Elapsed() != 5 {
		t.Errorf("Elapsed = %v, want 5", p.Elapsed())
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		sec  float64
		want string
	}{
		{0, "0:00"},
		{5.9, "0:05"},
		{65, "1:05"},
		{600, "10:00"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.sec); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.sec, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(12.4); got != "12s" {
		t.Errorf("FormatDuration(12.4) = %q, want 12s", got)
	}
	if got := FormatDuration(12.6); got != "13s" {
		t.Errorf("FormatDuration(12.6) = %q, want 13s", got)
	}
}

func TestMediaURL(t *testing.T) {
	tests := []struct {
		base, id, want string
	}{
		{"", "Linda", DefaultMediaBase + "/Linda.mp4"},
		{"http://localhost:9000/", "visit 1", "http://localhost:9000/visit%201.mp4"},
	}
	for _, tt := range tests {
		if got := MediaURL(tt.base, tt.id); got != tt.want {
			t.Errorf("MediaURL(%q, %q) = %q, want %q", tt.base, tt.id, got, tt.want)
		}
	}
}

func stubLookPath(t *testing.T, found ...string) {
	t.Helper()
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(name string) (string, error) {
		for _, f := range found {
			if f == name {
				return filepath.Join("/usr/bin", name), nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func TestExternalCommand_PrefersMPV(t *testing.T) {
	stubLookPath(t, "mpv", "ffplay")
	cmd, err := ExternalCommand("http://x/v.mp4", Window{Start: 1.5, End: 4})
	if err != nil {
		t.Fatalf("ExternalCommand: %v", err)
	}
	want := []string{"/usr/bin/mpv", "--start=1.5", "--end=4", "--force-window=yes", "http://x/v.mp4"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("Args = %v, want %v", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("Args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
}

func TestExternalCommand_FallsBackToFFPlay(t *testing.T) {
	stubLookPath(t, "ffplay")
	cmd, err := ExternalCommand("http://x/v.mp4", Window{Start: 2, End: 5})
	if err != nil {
		t.Fatalf("ExternalCommand: %v", err)
	}
	if cmd.Args[0] != "/usr/bin/ffplay" {
		t.Errorf("Args[0] = %q, want ffplay", cmd.Args[0])
	}
	if cmd.Args[1] != "-ss" || cmd.Args[2] != "2" || cmd.Args[4] != "3" {
		t.Errorf("Args = %v", cmd.Args)
	}
}

func TestExternalCommand_NoPlayer(t *testing.T) {
	stubLookPath(t)
	_, err := ExternalCommand("http://x/v.mp4", Window{Start: 0, End: 1})
	if !errors.Is(err, ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer", err)
	}
}
