// Package pipeline turns a leaderboard into one compiled highlight video.
//
// Clips are processed strictly sequentially: the browser session behind the
// locator is a single shared resource, and sequencing is what keeps it safe.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ddoberne/statcast-highlight-tool/internal/leaderboard"
	"github.com/ddoberne/statcast-highlight-tool/internal/savant"
)

// ErrEmptySelection is returned when no clip reaches DONE; no output file is
// produced.
var ErrEmptySelection = errors.New("no clips could be compiled")

// State of one clip in the compilation.
type State string

const (
	StateQueued      State = "queued"
	StateLocating    State = "locating"
	StateDownloading State = "downloading"
	StateTrimmed     State = "trimmed"
	StateCaptioned   State = "captioned"
	StateDone        State = "done"
	StateSkipped     State = "skipped"
)

// Locator resolves a pitch to a playable source URL.
type Locator interface {
	Locate(ctx context.Context, q savant.Search) (string, error)
}

// Downloader streams a source URL into destDir and returns the file path.
type Downloader interface {
	Clip(ctx context.Context, srcURL, destDir string) (string, error)
}

// Editor performs the video operations.
type Editor interface {
	Duration(ctx context.Context, path string) (float64, error)
	Trim(ctx context.Context, in, out string, start, dur float64) error
	Overlay(ctx context.Context, in, out, text string) error
	Concat(ctx context.Context, parts []string, out string) error
}

// Options configures one compilation run.
type Options struct {
	OutputPath     string
	MaxClipSeconds float64
	TruncateLead   bool
	LeadSeconds    float64 // broadcast lead-in to drop; 0 keeps it all
	Countdown      bool    // reverse final order: top-ranked clip plays last
	Captions       bool
	AwayFeed       bool
}

// ClipResult is the per-clip outcome. Skips carry the reason; they are
// reported, never silently swallowed.
type ClipResult struct {
	Rank    int
	Caption string
	State   State
	Reason  string

	path string
}

// Result summarizes a compilation run.
type Result struct {
	Clips      []ClipResult
	Included   int
	Skipped    int
	OutputPath string
}

// Summary returns the user-facing one-liner for the run.
func (r *Result) Summary() string {
	return fmt.Sprintf("%d of %d clips included", r.Included, len(r.Clips))
}

// Compiler acquires, trims, captions, and concatenates clips.
type Compiler struct {
	locator    Locator
	downloader Downloader
	editor     Editor
}

// New creates a compiler over the three collaborators.
func New(locator Locator, downloader Downloader, editor Editor) *Compiler {
	return &Compiler{locator: locator, downloader: downloader, editor: editor}
}

// Run compiles entries into one video at opts.OutputPath. captions[i]
// belongs to entries[i]. Per-clip failures skip that clip; Run fails only
// for empty selection or a concatenation error. The temporary working
// directory is removed on all exit paths.
func (c *Compiler) Run(ctx context.Context, entries []leaderboard.Entry, captions []string, opts Options) (*Result, error) {
	if opts.LeadSeconds < 0 {
		opts.LeadSeconds = 0
	}

	workDir, err := os.MkdirTemp("", "highlight-*")
	if err != nil {
		return nil, fmt.Errorf("creating work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	result := &Result{}
	for i, entry := range entries {
		caption := ""
		if i < len(captions) {
			caption = captions[i]
		}

		clip := c.processClip(ctx, entry, caption, workDir, opts)
		result.Clips = append(result.Clips, clip)
		if clip.State == StateDone {
			result.Included++
			log.Printf("Clip %d/%d ready", i+1, len(entries))
		} else {
			result.Skipped++
			log.Printf("Clip %d/%d skipped: %s", i+1, len(entries), clip.Reason)
		}
	}

	var parts []string
	for _, clip := range result.Clips {
		if clip.State == StateDone {
			parts = append(parts, clip.path)
		}
	}
	if len(parts) == 0 {
		return result, ErrEmptySelection
	}

	if opts.Countdown {
		for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
			parts[i], parts[j] = parts[j], parts[i]
		}
	}

	if err := c.editor.Concat(ctx, parts, opts.OutputPath); err != nil {
		return result, fmt.Errorf("concatenating %d clips: %w", len(parts), err)
	}
	result.OutputPath = opts.OutputPath

	log.Printf("Compilation complete: %s", result.Summary())
	return result, nil
}

// processClip walks one clip through the state machine. Any recoverable
// error transitions to SKIPPED.
func (c *Compiler) processClip(ctx context.Context, entry leaderboard.Entry, caption, workDir string, opts Options) ClipResult {
	clip := ClipResult{Rank: entry.Rank, Caption: caption, State: StateQueued}
	p := entry.Pitch

	clip.State = StateLocating
	srcURL, err := c.locator.Locate(ctx, savant.Search{
		PitcherID: p.PitcherID,
		BatterID:  p.BatterID,
		Date:      p.GameDate,
		Inning:    p.Inning,
		Balls:     p.Balls,
		Strikes:   p.Strikes,
		Result:    p.Result,
		Away:      opts.AwayFeed,
	})
	if err != nil {
		return skip(clip, "locate: %v", err)
	}

	clip.State = StateDownloading
	path, err := c.downloader.Clip(ctx, srcURL, workDir)
	if err != nil {
		return skip(clip, "download: %v", err)
	}

	path, err = c.trim(ctx, path, workDir, opts)
	if err != nil {
		return skip(clip, "trim: %v", err)
	}
	clip.State = StateTrimmed

	if opts.Captions && caption != "" {
		captioned := filepath.Join(workDir, filepath.Base(path)+".cap.mp4")
		if err := c.editor.Overlay(ctx, path, captioned, caption); err != nil {
			return skip(clip, "caption: %v", err)
		}
		path = captioned
		clip.State = StateCaptioned
	}

	clip.State = StateDone
	clip.path = path
	return clip
}

// trim applies lead-in truncation and the duration cap. Both are no-ops
// when the clip is already short enough.
func (c *Compiler) trim(ctx context.Context, path, workDir string, opts Options) (string, error) {
	dur, err := c.editor.Duration(ctx, path)
	if err != nil {
		return "", err
	}

	start := 0.0
	if opts.TruncateLead && dur > opts.LeadSeconds {
		start = opts.LeadSeconds
	}
	remaining := dur - start

	trimDur := remaining
	if opts.MaxClipSeconds > 0 && remaining > opts.MaxClipSeconds {
		trimDur = opts.MaxClipSeconds
	}

	if start == 0 && trimDur == remaining {
		return path, nil
	}

	trimmed := filepath.Join(workDir, filepath.Base(path)+".trim.mp4")
	if err := c.editor.Trim(ctx, path, trimmed, start, trimDur); err != nil {
		return "", err
	}
	return trimmed, nil
}

func skip(clip ClipResult, format string, args ...any) ClipResult {
	clip.State = StateSkipped
	clip.Reason = fmt.Sprintf(format, args...)
	return clip
}
