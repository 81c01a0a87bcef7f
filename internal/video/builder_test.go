package video

import (
	"reflect"
	"strings"
	"testing"
)

func TestTrimArgs(t *testing.T) {
	args := trimArgs("ffmpeg", "in.mp4", "out.mp4", 2, 20)
	want := []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-ss", "2.00", "-i", "in.mp4", "-t", "20.00", "-c", "copy", "out.mp4",
	}
	if !reflect.DeepEqual(args, want) {
		t.Errorf("args = %v", args)
	}
}

func TestTrimArgsNoStart(t *testing.T) {
	args := trimArgs("ffmpeg", "in.mp4", "out.mp4", 0, 20)
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-ss") {
		t.Error("zero start should omit -ss")
	}
	if !strings.Contains(joined, "-t 20.00") {
		t.Error("duration cap missing")
	}
}

func TestTrimArgsToEnd(t *testing.T) {
	args := trimArgs("ffmpeg", "in.mp4", "out.mp4", 2, 0)
	joined := strings.Join(args, " ")
	if strings.Contains(joined, "-t ") {
		t.Error("non-positive duration should omit -t")
	}
}

func TestOverlayArgsEscaping(t *testing.T) {
	args := overlayArgs("ffmpeg", "in.mp4", "out.mp4", "1) 2023-06-01 Cole to Devers, 100% clutch")
	var filter string
	for i, a := range args {
		if a == "-vf" {
			filter = args[i+1]
		}
	}
	if filter == "" {
		t.Fatal("no -vf filter in args")
	}
	if !strings.Contains(filter, `1) 2023-06-01 Cole to Devers, 100\% clutch`) {
		t.Errorf("text not escaped: %s", filter)
	}
	if !strings.Contains(filter, "x=10:y=h-th-10") {
		t.Errorf("overlay not bottom-left: %s", filter)
	}
}

func TestConcatList(t *testing.T) {
	got := concatList([]string{"/tmp/a.mp4", "/tmp/b.mp4"})
	want := "file '/tmp/a.mp4'\nfile '/tmp/b.mp4'\n"
	if got != want {
		t.Errorf("concatList = %q, want %q", got, want)
	}
}

func TestConcatArgs(t *testing.T) {
	args := concatArgs("ffmpeg", "list.txt", "reel.mp4")
	joined := strings.Join(args, " ")
	for _, want := range []string{"-f concat", "-safe 0", "-i list.txt", "-c copy", "reel.mp4"} {
		if !strings.Contains(joined, want) {
			t.Errorf("concat args missing %q: %s", want, joined)
		}
	}
}

func TestProbeArgs(t *testing.T) {
	args := probeArgs("ffprobe", "clip.mp4")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "format=duration") || !strings.Contains(joined, "clip.mp4") {
		t.Errorf("probe args = %s", joined)
	}
}
