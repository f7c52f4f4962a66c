package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForContentType(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		want        string
	}{
		{
			name:        "WAV",
			contentType: "audio/wav",
			want:        "wav",
		},
		{
			name:        "MP3",
			contentType: "audio/mpeg",
			want:        "mp3",
		},
		{
			name:        "Unsupported video type",
			contentType: "video/mp4",
			want:        "",
		},
		{
			name:        "Empty",
			contentType: "",
			want:        "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForContentType(tt.contentType))
		})
	}
}
