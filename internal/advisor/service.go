package advisor

import (
	"context"

	"agrichat/internal/inference"

	"github.com/sashabaranov/go-openai"
)

// Models used against the hosted inference API
const (
	textModel  = "microsoft/DialoGPT-medium"
	imageModel = "google/vit-base-patch16-224"
	audioModel = "openai/whisper-large-v3"
)

// speechProviders is the fixed order in which hosted providers are tried
// for speech recognition. No scoring or quality comparison is done; the
// first provider returning usable text wins.
var speechProviders = []string{
	"fal-ai",
	"hf-inference",
	"together",
	"replicate",
	"azure",
	"aws",
}

// alternateSpeechModels are tried after every provider has failed against
// the primary audio model.
var alternateSpeechModels = []string{
	"facebook/wav2vec2-large-960h-lv60-self",
	"facebook/wav2vec2-base-960h",
	"jonatasgrosman/wav2vec2-large-xlsr-53-english",
	"NbAiLab/nb-wav2vec2-1b-bokmaal",
}

// transcriptionSentinel is a placeholder some models emit instead of
// failing; it is treated the same as an empty transcription.
const transcriptionSentinel = "Unable to transcribe audio."

// Backend is the inference adapter surface the orchestrator needs.
// *inference.Client satisfies it.
type Backend interface {
	AutomaticSpeechRecognition(ctx context.Context, audio []byte, model, provider string) (string, error)
	TextGeneration(ctx context.Context, prompt, model string, params inference.TextGenerationParams) (string, error)
	ImageClassification(ctx context.Context, image []byte, model string) ([]inference.Classification, error)
}

// Service orchestrates inference calls with provider fallback. Its
// Process* methods never return an error: when every backend attempt
// fails they degrade to a deterministic language-specific fallback
// payload so the caller always has a well-formed response.
type Service struct {
	backend Backend
	openAI  *openai.Client
}

// NewService creates the orchestrator. Either dependency may be nil;
// with no backend configured at all, requests go straight to the canned
// fallback responses.
func NewService(backend Backend, openAI *openai.Client) *Service {
	return &Service{
		backend: backend,
		openAI:  openAI,
	}
}

// Advice is the uniform response for text and image processing
type Advice struct {
	Success  bool      `json:"success"`
	Advice   string    `json:"advice"`
	Analysis *Analysis `json:"analysis"`
}

// VoiceAdvice is the uniform response for voice note processing
type VoiceAdvice struct {
	Success       bool      `json:"success"`
	Transcription string    `json:"transcription"`
	Advice        string    `json:"advice"`
	Analysis      *Analysis `json:"analysis"`
}

// Analysis summarizes what the AI found and what to do about it
type Analysis struct {
	DetectedIssues  []interface{} `json:"detected_issues"`
	PrimaryIssue    string        `json:"primary_issue,omitempty"`
	Confidence      float64       `json:"confidence,omitempty"`
	Recommendations []string      `json:"recommendations"`
}

// DetectedIssue describes one disease finding from image classification
type DetectedIssue struct {
	Disease    string   `json:"disease"`
	Confidence float64  `json:"confidence"`
	Symptoms   []string `json:"symptoms,omitempty"`
	Severity   string   `json:"severity,omitempty"`
}
