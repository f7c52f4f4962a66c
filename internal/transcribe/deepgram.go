package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.deepgram.com"

// DeepgramEngine transcribes pre-recorded audio through Deepgram's
// /v1/listen endpoint.
type DeepgramEngine struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewDeepgramEngine(apiKey string) *DeepgramEngine {
	return &DeepgramEngine{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 5 * time.Minute},
	}
}

// NewDeepgramEngineWithBaseURL exists for tests pointing at a local server.
func NewDeepgramEngineWithBaseURL(apiKey, baseURL string) *DeepgramEngine {
	e := NewDeepgramEngine(apiKey)
	e.baseURL = baseURL
	return e
}

type deepgramResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

func (d *DeepgramEngine) Transcribe(ctx context.Context, audio []byte, mimetype string) (string, error) {
	params := url.Values{}
	params.Set("punctuate", "true")
	params.Set("language", "en-US")

	endpoint := fmt.Sprintf("%s/v1/listen?%s", d.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(audio))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Token "+d.apiKey)
	req.Header.Set("Content-Type", mimetype)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("deepgram http %d: %s", resp.StatusCode, string(b))
	}

	var dr deepgramResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return "", fmt.Errorf("failed to decode deepgram response: %w", err)
	}

	if len(dr.Results.Channels) == 0 || len(dr.Results.Channels[0].Alternatives) == 0 {
		return "", fmt.Errorf("deepgram response contains no transcript")
	}

	return dr.Results.Channels[0].Alternatives[0].Transcript, nil
}
