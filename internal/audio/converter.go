package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Converter normalizes uploaded audio to WAV before transcription.
type Converter interface {
	ToWAV(ctx context.Context, data []byte, format string) ([]byte, error)
}

// FFmpegConverter shells out to ffmpeg, streaming the input through stdin
// and reading WAV from stdout so nothing touches disk.
type FFmpegConverter struct{}

func NewFFmpegConverter() Converter {
	return FFmpegConverter{}
}

func (FFmpegConverter) ToWAV(ctx context.Context, data []byte, format string) ([]byte, error) {
	// ffmpeg -f <format> -i pipe:0 -f wav pipe:1
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-f", format, "-i", "pipe:0",
		"-f", "wav", "pipe:1",
	)

	var out, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg: %w: %s", err, stderr.String())
	}

	return out.Bytes(), nil
}

// FormatForContentType maps an accepted upload content type to the ffmpeg
// demuxer name. The empty string means the type is not accepted.
func FormatForContentType(contentType string) string {
	switch contentType {
	case "audio/wav":
		return "wav"
	case "audio/mpeg":
		return "mp3"
	default:
		return ""
	}
}
