package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Editor runs ffmpeg/ffprobe. One Editor is safe for sequential reuse.
type Editor struct {
	ffmpeg  string
	ffprobe string
}

// NewEditor creates an editor using the given binary paths, defaulting to
// ffmpeg/ffprobe on PATH.
func NewEditor(ffmpegPath, ffprobePath string) *Editor {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Editor{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// Duration returns a clip's duration in seconds.
func (e *Editor) Duration(ctx context.Context, path string) (float64, error) {
	args := probeArgs(e.ffprobe, path)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w: %s", path, err, tail(stderr.String()))
	}

	dur, err := strconv.ParseFloat(strings.TrimSpace(stdout.String()), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration for %s: %w", path, err)
	}
	return dur, nil
}

// Trim writes the span [start, start+dur] of in to out. dur <= 0 means "to
// the end".
func (e *Editor) Trim(ctx context.Context, in, out string, start, dur float64) error {
	return e.run(ctx, trimArgs(e.ffmpeg, in, out, start, dur))
}

// Overlay writes in to out with text burned in bottom-left for the full
// duration.
func (e *Editor) Overlay(ctx context.Context, in, out, text string) error {
	return e.run(ctx, overlayArgs(e.ffmpeg, in, out, text))
}

// Concat joins parts, in order, into out. The demuxer list file lives in
// the system temp directory, never beside the output.
func (e *Editor) Concat(ctx context.Context, parts []string, out string) error {
	if len(parts) == 0 {
		return fmt.Errorf("nothing to concatenate")
	}

	list, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return fmt.Errorf("creating concat list: %w", err)
	}
	defer os.Remove(list.Name())

	_, err = list.WriteString(concatList(parts))
	if cerr := list.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("writing concat list: %w", err)
	}

	return e.run(ctx, concatArgs(e.ffmpeg, list.Name(), out))
}

// run executes an ffmpeg command, capturing stderr for diagnostics.
func (e *Editor) run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w: %s", args[0], err, tail(stderr.String()))
	}
	return nil
}

// tail returns the last few lines of ffmpeg stderr, which carry the actual
// failure reason.
func tail(s string) string {
	s = strings.TrimSpace(s)
	lines := strings.Split(s, "\n")
	if len(lines) > 3 {
		lines = lines[len(lines)-3:]
	}
	return strings.Join(lines, " | ")
}
