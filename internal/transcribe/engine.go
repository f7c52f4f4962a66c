package transcribe

import "context"

// Engine is the interface for speech-to-text backends. It takes raw audio
// bytes plus their mimetype and returns plain transcript text.
type Engine interface {
	Transcribe(ctx context.Context, audio []byte, mimetype string) (string, error)
}
