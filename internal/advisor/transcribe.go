package advisor

import (
	"context"
	"log"
	"strings"
)

// attempt records one failed provider/model try for diagnostics. The list
// lives only for the duration of the request and is logged, not persisted.
type attempt struct {
	Provider string
	Model    string
	Reason   string
}

// TranscribeAudio converts an audio buffer to text, walking the provider
// list strictly in order, then the alternate models, then one direct call.
// It never returns an error; when everything fails it returns the
// language-appropriate fallback sentence.
func (s *Service) TranscribeAudio(ctx context.Context, audio []byte, language string) string {
	log.Printf("[Transcribe] Starting audio transcription, buffer size: %d bytes, language: %s", len(audio), language)

	if s.backend == nil {
		log.Printf("[Transcribe] No inference backend configured - using fallback")
		return voiceFallback(language).Transcription
	}

	var attempts []attempt

	for _, provider := range speechProviders {
		log.Printf("[Transcribe] Trying provider: %s", provider)

		text, err := s.backend.AutomaticSpeechRecognition(ctx, audio, audioModel, provider)
		if err != nil {
			attempts = append(attempts, attempt{Provider: provider, Model: audioModel, Reason: err.Error()})
			log.Printf("[Transcribe] Provider %s failed: %v", provider, err)
			continue
		}

		if t := usableTranscription(text); t != "" {
			log.Printf("[Transcribe] Transcription succeeded using provider %s, length: %d", provider, len(t))
			return t
		}

		attempts = append(attempts, attempt{Provider: provider, Model: audioModel, Reason: "empty transcription"})
		log.Printf("[Transcribe] Empty transcription from %s, trying next provider", provider)
	}

	log.Printf("[Transcribe] All providers failed, trying alternative models...")

	for _, altModel := range alternateSpeechModels {
		log.Printf("[Transcribe] Trying alternative model: %s", altModel)

		text, err := s.backend.AutomaticSpeechRecognition(ctx, audio, altModel, "")
		if err != nil {
			attempts = append(attempts, attempt{Model: altModel, Reason: err.Error()})
			log.Printf("[Transcribe] Alternative model %s failed: %v", altModel, err)
			continue
		}

		if t := usableTranscription(text); t != "" {
			log.Printf("[Transcribe] Alternative model %s succeeded, length: %d", altModel, len(t))
			return t
		}

		attempts = append(attempts, attempt{Model: altModel, Reason: "empty transcription"})
	}

	// Last resort: one direct call against the primary model without
	// provider routing.
	log.Printf("[Transcribe] Trying direct API call as last resort...")
	text, err := s.backend.AutomaticSpeechRecognition(ctx, audio, audioModel, "")
	if err == nil {
		if t := usableTranscription(text); t != "" {
			log.Printf("[Transcribe] Direct API call succeeded, length: %d", len(t))
			return t
		}
		attempts = append(attempts, attempt{Model: audioModel, Reason: "empty transcription"})
	} else {
		attempts = append(attempts, attempt{Model: audioModel, Reason: err.Error()})
	}

	logAttempts(attempts)
	return voiceFallback(language).Transcription
}

// ProcessAudioBuffer transcribes a voice note and runs the transcript
// through the text advisor. Always returns a well-formed response.
func (s *Service) ProcessAudioBuffer(ctx context.Context, audio []byte, language string) *VoiceAdvice {
	log.Printf("[Process Audio] Starting audio buffer processing, size: %d bytes, language: %s", len(audio), language)

	if s.backend == nil && s.openAI == nil {
		log.Printf("[Process Audio] No backends configured - using fallback")
		return voiceFallback(language)
	}

	transcription := s.TranscribeAudio(ctx, audio, language)

	log.Printf("[Process Audio] Processing transcribed text with AI...")
	textResult := s.ProcessTextQuery(ctx, transcription, language)

	return &VoiceAdvice{
		Success:       true,
		Transcription: transcription,
		Advice:        textResult.Advice,
		Analysis:      textResult.Analysis,
	}
}

// usableTranscription trims the text and rejects the sentinel placeholder
func usableTranscription(text string) string {
	t := strings.TrimSpace(text)
	if t == "" || t == transcriptionSentinel {
		return ""
	}
	return t
}

func logAttempts(attempts []attempt) {
	log.Printf("[Transcribe] All transcription attempts failed (%d tries):", len(attempts))
	for i, a := range attempts {
		if a.Provider != "" {
			log.Printf("[Transcribe]   %d. provider=%s model=%s: %s", i+1, a.Provider, a.Model, a.Reason)
		} else {
			log.Printf("[Transcribe]   %d. model=%s: %s", i+1, a.Model, a.Reason)
		}
	}
}
