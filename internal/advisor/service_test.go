package advisor

import (
	"context"
	"errors"
	"testing"

	"agrichat/internal/inference"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// asrCall records one speech recognition attempt against the fake backend
type asrCall struct {
	Model    string
	Provider string
}

type fakeBackend struct {
	asrCalls  []asrCall
	asrFn     func(model, provider string) (string, error)
	textFn    func(prompt, model string) (string, error)
	imageFn   func(model string) ([]inference.Classification, error)
	textCalls int
}

func (f *fakeBackend) AutomaticSpeechRecognition(_ context.Context, _ []byte, model, provider string) (string, error) {
	f.asrCalls = append(f.asrCalls, asrCall{Model: model, Provider: provider})
	if f.asrFn != nil {
		return f.asrFn(model, provider)
	}
	return "", errors.New("asr not configured")
}

func (f *fakeBackend) TextGeneration(_ context.Context, prompt, model string, _ inference.TextGenerationParams) (string, error) {
	f.textCalls++
	if f.textFn != nil {
		return f.textFn(prompt, model)
	}
	return "", errors.New("text generation not configured")
}

func (f *fakeBackend) ImageClassification(_ context.Context, _ []byte, model string) ([]inference.Classification, error) {
	if f.imageFn != nil {
		return f.imageFn(model)
	}
	return nil, errors.New("classification not configured")
}

func TestTranscribeAudioStopsAtFirstSuccess(t *testing.T) {
	backend := &fakeBackend{}
	backend.asrFn = func(model, provider string) (string, error) {
		if provider == "together" {
			return "my wheat crop has yellow spots", nil
		}
		return "", errors.New("provider unavailable")
	}
	svc := NewService(backend, nil)

	text := svc.TranscribeAudio(context.Background(), []byte("audio"), "english")

	assert.Equal(t, "my wheat crop has yellow spots", text)

	// fal-ai and hf-inference fail, together succeeds; nothing after it
	// may be contacted.
	require.Len(t, backend.asrCalls, 3)
	assert.Equal(t, asrCall{Model: "openai/whisper-large-v3", Provider: "fal-ai"}, backend.asrCalls[0])
	assert.Equal(t, asrCall{Model: "openai/whisper-large-v3", Provider: "hf-inference"}, backend.asrCalls[1])
	assert.Equal(t, asrCall{Model: "openai/whisper-large-v3", Provider: "together"}, backend.asrCalls[2])
}

func TestTranscribeAudioFallsThroughToAlternateModels(t *testing.T) {
	backend := &fakeBackend{}
	backend.asrFn = func(model, provider string) (string, error) {
		if model == "facebook/wav2vec2-base-960h" {
			return "alternate model text", nil
		}
		return "", errors.New("unavailable")
	}
	svc := NewService(backend, nil)

	text := svc.TranscribeAudio(context.Background(), []byte("audio"), "english")
	assert.Equal(t, "alternate model text", text)

	// 6 provider attempts, then the first failing alternate model, then
	// the winner. Alternate models are tried without provider routing.
	require.Len(t, backend.asrCalls, 8)
	assert.Equal(t, asrCall{Model: "facebook/wav2vec2-large-960h-lv60-self"}, backend.asrCalls[6])
	assert.Equal(t, asrCall{Model: "facebook/wav2vec2-base-960h"}, backend.asrCalls[7])
}

func TestTranscribeAudioExhaustsAllAttempts(t *testing.T) {
	backend := &fakeBackend{}
	svc := NewService(backend, nil)

	text := svc.TranscribeAudio(context.Background(), []byte("audio"), "english")

	assert.Equal(t, "Audio transcription in progress", text)
	// 6 providers + 4 alternate models + 1 direct call
	assert.Len(t, backend.asrCalls, 11)
	assert.Equal(t, asrCall{Model: "openai/whisper-large-v3"}, backend.asrCalls[10])
}

func TestTranscribeAudioRejectsSentinelAndEmpty(t *testing.T) {
	backend := &fakeBackend{}
	backend.asrFn = func(model, provider string) (string, error) {
		switch provider {
		case "fal-ai":
			return "Unable to transcribe audio.", nil
		case "hf-inference":
			return "   ", nil
		case "together":
			return "  real words  ", nil
		}
		return "", errors.New("unavailable")
	}
	svc := NewService(backend, nil)

	text := svc.TranscribeAudio(context.Background(), []byte("audio"), "english")
	assert.Equal(t, "real words", text)
	assert.Len(t, backend.asrCalls, 3)
}

func TestTranscribeAudioNilBackend(t *testing.T) {
	svc := NewService(nil, nil)

	assert.NotPanics(t, func() {
		text := svc.TranscribeAudio(context.Background(), []byte("audio"), "urdu")
		assert.Equal(t, "آڈیو ٹرانسکرپشن جاری ہے", text)
	})
}

func TestProcessTextQuerySuccess(t *testing.T) {
	backend := &fakeBackend{}
	backend.textFn = func(prompt, model string) (string, error) {
		assert.Equal(t, "microsoft/DialoGPT-medium", model)
		assert.Contains(t, prompt, "yellow rust on wheat")
		return "This looks like a fungal disease. Apply a fungicide spray early in the morning.", nil
	}
	svc := NewService(backend, nil)

	advice := svc.ProcessTextQuery(context.Background(), "yellow rust on wheat", "english")

	assert.True(t, advice.Success)
	assert.Contains(t, advice.Advice, "fungal disease")
	require.NotNil(t, advice.Analysis)
	assert.NotEmpty(t, advice.Analysis.DetectedIssues)
	assert.NotEmpty(t, advice.Analysis.Recommendations)
}

func TestProcessTextQueryDegradesToFallback(t *testing.T) {
	backend := &fakeBackend{} // text generation always errors
	svc := NewService(backend, nil)

	advice := svc.ProcessTextQuery(context.Background(), "anything", "urdu")

	assert.True(t, advice.Success)
	assert.Equal(t, "آپ کے سوال کا جواب تیار کر رہا ہوں۔ براہ کرم تھوڑا انتظار کریں۔", advice.Advice)
	require.NotNil(t, advice.Analysis)
	assert.Equal(t, []interface{}{"general_inquiry"}, advice.Analysis.DetectedIssues)
	assert.Equal(t, 1, backend.textCalls)
}

func TestProcessTextQueryNoBackends(t *testing.T) {
	svc := NewService(nil, nil)

	advice := svc.ProcessTextQuery(context.Background(), "anything", "english")

	assert.True(t, advice.Success)
	assert.Equal(t, "I am processing your question. Please wait a moment.", advice.Advice)
}

func TestProcessImageBufferSuccess(t *testing.T) {
	backend := &fakeBackend{}
	backend.imageFn = func(model string) ([]inference.Classification, error) {
		assert.Equal(t, "google/vit-base-patch16-224", model)
		return []inference.Classification{
			{Label: "rust", Score: 0.91},
			{Label: "blight", Score: 0.05},
		}, nil
	}
	svc := NewService(backend, nil)

	advice := svc.ProcessImageBuffer(context.Background(), []byte("image"), "english")

	assert.True(t, advice.Success)
	assert.Contains(t, advice.Advice, "rust detected in your crop with 91.0% confidence")
	require.NotNil(t, advice.Analysis)
	assert.Equal(t, "rust", advice.Analysis.PrimaryIssue)
	assert.Equal(t, 0.91, advice.Analysis.Confidence)
	assert.Contains(t, advice.Analysis.Recommendations, "Apply fungicide containing propiconazole")

	require.Len(t, advice.Analysis.DetectedIssues, 1)
	issue, ok := advice.Analysis.DetectedIssues[0].(DetectedIssue)
	require.True(t, ok)
	assert.Equal(t, "high", issue.Severity)
	assert.Contains(t, issue.Symptoms, "Orange-brown pustules")
}

func TestProcessImageBufferDegradesToFallback(t *testing.T) {
	tests := []struct {
		name    string
		backend Backend
	}{
		{"nil backend", nil},
		{"classification error", &fakeBackend{}},
		{"empty results", &fakeBackend{imageFn: func(string) ([]inference.Classification, error) {
			return nil, nil
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.backend, nil)
			var advice *Advice
			assert.NotPanics(t, func() {
				advice = svc.ProcessImageBuffer(context.Background(), []byte("image"), "english")
			})
			assert.True(t, advice.Success)
			assert.Equal(t, "Image analysis in progress.", advice.Advice)
			require.NotNil(t, advice.Analysis)
		})
	}
}

func TestProcessAudioBufferChainsTranscriptionIntoAdvice(t *testing.T) {
	backend := &fakeBackend{}
	backend.asrFn = func(model, provider string) (string, error) {
		return "how do I treat blight", nil
	}
	backend.textFn = func(prompt, model string) (string, error) {
		assert.Contains(t, prompt, "how do I treat blight")
		return "Use antibacterial spray as treatment for the infection.", nil
	}
	svc := NewService(backend, nil)

	result := svc.ProcessAudioBuffer(context.Background(), []byte("audio"), "english")

	assert.True(t, result.Success)
	assert.Equal(t, "how do I treat blight", result.Transcription)
	assert.Contains(t, result.Advice, "antibacterial spray")
	require.NotNil(t, result.Analysis)
}

func TestProcessAudioBufferNoBackends(t *testing.T) {
	svc := NewService(nil, nil)

	result := svc.ProcessAudioBuffer(context.Background(), []byte("audio"), "urdu")

	assert.True(t, result.Success)
	assert.Equal(t, "آڈیو ٹرانسکرپشن جاری ہے", result.Transcription)
	assert.Equal(t, "آپ کے وائس نوٹ کا تجزیہ کیا جا رہا ہے۔", result.Advice)
}
