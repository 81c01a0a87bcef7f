// Package video wraps ffmpeg/ffprobe for the clip operations the
// compilation needs: probe, trim, caption overlay, concatenate.
package video

import (
	"fmt"
	"strings"
)

// trimArgs builds the ffmpeg argument slice for cutting [start, start+dur]
// out of in. Stream copy keeps trimming fast; captioning re-encodes later.
func trimArgs(ffmpeg, in, out string, start, dur float64) []string {
	args := []string{ffmpeg, "-hide_banner", "-nostdin", "-y", "-loglevel", "error"}
	if start > 0 {
		args = append(args, "-ss", fmt.Sprintf("%.2f", start))
	}
	args = append(args, "-i", in)
	if dur > 0 {
		args = append(args, "-t", fmt.Sprintf("%.2f", dur))
	}
	args = append(args, "-c", "copy", out)
	return args
}

// overlayArgs builds the ffmpeg argument slice for burning text into the
// bottom-left corner for the clip's full duration.
func overlayArgs(ffmpeg, in, out, text string) []string {
	filter := fmt.Sprintf(
		"drawtext=text='%s':x=10:y=h-th-10:fontsize=24:fontcolor=white:box=1:boxcolor=black@0.5:boxborderw=8",
		escapeDrawtext(text),
	)
	return []string{
		ffmpeg, "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-i", in,
		"-vf", filter,
		"-c:a", "copy",
		out,
	}
}

// concatArgs builds the ffmpeg argument slice for joining clips listed in
// listFile (concat demuxer format).
func concatArgs(ffmpeg, listFile, out string) []string {
	return []string{
		ffmpeg, "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", listFile,
		"-c", "copy",
		out,
	}
}

// probeArgs builds the ffprobe argument slice for reading a duration.
func probeArgs(ffprobe, in string) []string {
	return []string{
		ffprobe, "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	}
}

// escapeDrawtext escapes the characters the drawtext filter treats
// specially.
func escapeDrawtext(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`'`, `\'`,
		`:`, `\:`,
		`%`, `\%`,
	)
	return r.Replace(s)
}

// concatList renders the concat demuxer list file contents.
func concatList(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		// Single quotes in paths are closed, escaped, reopened.
		escaped := strings.ReplaceAll(p, `'`, `'\''`)
		fmt.Fprintf(&b, "file '%s'\n", escaped)
	}
	return b.String()
}
