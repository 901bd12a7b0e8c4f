package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Provider identifies a speech synthesis backend.
type Provider string

const (
	ProviderElevenLabs Provider = "elevenlabs"
	ProviderMock       Provider = "mock"
)

// DefaultVoiceID is a Korean-capable multilingual voice.
const DefaultVoiceID = "uyVNoMrnUku1dZyVEXwD"

// Config holds speech synthesis configuration.
type Config struct {
	Provider   Provider
	APIKey     string
	VoiceID    string
	HTTPClient *http.Client
}

// Speech converts a narration script to audio bytes.
type Speech interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// New returns the speech implementation for the configured provider.
func New(config Config) (Speech, error) {
	if err := ValidateConfig(config); err != nil {
		return nil, err
	}
	switch config.Provider {
	case ProviderElevenLabs:
		return newElevenLabs(config), nil
	case ProviderMock:
		return &MockSpeech{}, nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s", config.Provider)
	}
}

// ValidateConfig checks provider and credentials before any synthesis call.
func ValidateConfig(config Config) error {
	switch config.Provider {
	case ProviderElevenLabs:
		if config.APIKey == "" {
			return fmt.Errorf("%s requires an API key", config.Provider)
		}
	case ProviderMock:
	case "":
		return fmt.Errorf("TTS provider is required")
	default:
		return fmt.Errorf("invalid TTS provider: %s (available: %s, %s)",
			config.Provider, ProviderElevenLabs, ProviderMock)
	}
	return nil
}

// elevenLabsRequest is the text-to-speech request body.
type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// ElevenLabsSpeech synthesizes audio through the ElevenLabs API. Korean
// scripts need the multilingual model.
type ElevenLabsSpeech struct {
	apiKey  string
	voiceID string
	baseURL string
	client  *http.Client
}

func newElevenLabs(config Config) *ElevenLabsSpeech {
	voiceID := config.VoiceID
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &ElevenLabsSpeech{
		apiKey:  config.APIKey,
		voiceID: voiceID,
		baseURL: "https://api.elevenlabs.io/v1",
		client:  client,
	}
}

// Synthesize returns MP3 bytes for the given script.
func (s *ElevenLabsSpeech) Synthesize(ctx context.Context, text string) ([]byte, error) {
	requestData := elevenLabsRequest{
		Text:    text,
		ModelID: "eleven_multilingual_v2",
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
	}

	jsonData, err := json.Marshal(requestData)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.baseURL, s.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ElevenLabs API error %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	return audio, nil
}

// MockSpeech produces deterministic placeholder audio for tests and dry runs.
type MockSpeech struct {
	Err   error
	Calls int
}

// Synthesize returns the script wrapped in a mock payload, or the configured
// error.
func (m *MockSpeech) Synthesize(_ context.Context, text string) ([]byte, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return []byte("MOCK-AUDIO:" + text), nil
}

// EstimateAudioLength estimates audio minutes for a Korean script. Narrated
// Korean runs around 300 syllables per minute.
func EstimateAudioLength(text string) float64 {
	syllables := len([]rune(strings.Join(strings.Fields(text), "")))
	return float64(syllables) / 300.0
}
