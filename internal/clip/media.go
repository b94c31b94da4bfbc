package clip

import (
	"errors"
	"net/url"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultMediaBase is where recorded visits are served from.
const DefaultMediaBase = "https://storage.googleapis.com/hackrice-2025"

// ErrNoPlayer is returned when neither mpv nor ffplay is installed.
var ErrNoPlayer = errors.New("no media player found (install mpv or ffplay)")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// MediaURL returns the video URL for videoID under base.
func MediaURL(base, videoID string) string {
	if base == "" {
		base = DefaultMediaBase
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(videoID) + ".mp4"
}

// ExternalCommand builds a player invocation that plays only the window of
// the video at mediaURL. mpv is preferred over ffplay.
func ExternalCommand(mediaURL string, w Window) (*exec.Cmd, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if path, err := lookPath("mpv"); err == nil {
		return exec.Command(path,
			"--start="+seconds(w.Start),
			"--end="+seconds(w.End),
			"--force-window=yes",
			mediaURL,
		), nil
	}
	if path, err := lookPath("ffplay"); err == nil {
		return exec.Command(path,
			"-ss", seconds(w.Start),
			"-t", seconds(w.Duration()),
			"-autoexit",
			"-loglevel", "error",
			mediaURL,
		), nil
	}
	return nil, ErrNoPlayer
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
