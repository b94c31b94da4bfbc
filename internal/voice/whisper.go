package voice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// recorderBinary is the sox front end used to read the microphone.
const recorderBinary = "rec"

var lookPath = exec.LookPath

// recordCommand builds the recorder invocation. sox stops on its own after
// two seconds of silence, and never records past maxLen.
var recordCommand = func(ctx context.Context, path string, maxLen time.Duration) *exec.Cmd {
	return exec.CommandContext(ctx, recorderBinary,
		"-q", "-c", "1", "-r", "16000", path,
		"silence", "1", "0.1", "1%", "1", "2.0", "1%",
		"trim", "0", fmt.Sprintf("%d", int(maxLen.Seconds())),
	)
}

// transcriber is the go-openai call the recognizer needs.
type transcriber interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// WhisperRecognizer records the microphone to a temporary WAV file and
// transcribes it with the OpenAI transcription API. Interim results report
// elapsed recording time because Whisper has no streaming output.
type WhisperRecognizer struct {
	client   transcriber
	model    string
	maxLen   time.Duration
	interval time.Duration

	mu  sync.Mutex
	cmd *exec.Cmd
}

// NewWhisperRecognizer creates a recognizer using client and model.
func NewWhisperRecognizer(client *openai.Client, model string) *WhisperRecognizer {
	return newWhisperRecognizer(client, model)
}

func newWhisperRecognizer(client transcriber, model string) *WhisperRecognizer {
	if model == "" {
		model = openai.Whisper1
	}
	return &WhisperRecognizer{
		client:   client,
		model:    model,
		maxLen:   DefaultTimeout,
		interval: time.Second,
	}
}

func (w *WhisperRecognizer) Start(ctx context.Context) (<-chan Result, error) {
	dir, err := os.MkdirTemp("", "recall-voice-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	path := filepath.Join(dir, "query.wav")

	var stderr bytes.Buffer
	cmd := recordCommand(ctx, path, w.maxLen)
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("start recorder: %w", err)
	}

	w.mu.Lock()
	w.cmd = cmd
	w.mu.Unlock()

	out := make(chan Result, 1)
	go func() {
		defer close(out)
		defer os.RemoveAll(dir)

		// Final results give up once the caller's context is gone.
		deliver := func(r Result) {
			select {
			case out <- r:
			case <-ctx.Done():
			}
		}

		done := make(chan error, 1)
		go func() { done <- cmd.Wait() }()

		start := time.Now()
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		var waitErr error
	recording:
		for {
			select {
			case waitErr = <-done:
				break recording
			case <-ticker.C:
				elapsed := time.Since(start).Round(time.Second)
				select {
				case out <- Result{Text: fmt.Sprintf("Listening… %s", elapsed)}:
				default:
				}
			}
		}

		w.mu.Lock()
		w.cmd = nil
		w.mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		// An interrupted recorder exits non-zero but leaves a usable file.
		if _, statErr := os.Stat(path); statErr != nil {
			if waitErr == nil {
				waitErr = statErr
			}
			deliver(Result{Err: fmt.Errorf("record audio: %w (%s)", waitErr, bytes.TrimSpace(stderr.Bytes()))})
			return
		}

		resp, err := w.client.CreateTranscription(ctx, openai.AudioRequest{
			Model:    w.model,
			FilePath: path,
			Language: "en",
		})
		if err != nil {
			slog.Warn("transcription failed", "err", err)
			deliver(Result{Err: fmt.Errorf("transcribe audio: %w", err)})
			return
		}
		deliver(Result{Text: resp.Text, Final: true})
	}()

	return out, nil
}

// Stop interrupts the recorder so it finalizes the WAV file.
func (w *WhisperRecognizer) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cmd == nil || w.cmd.Process == nil {
		return
	}
	if err := w.cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		slog.Debug("interrupt recorder", "err", err)
	}
}
