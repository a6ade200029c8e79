package advisor

import (
	"context"
	"log"
)

// ProcessImageBuffer classifies a crop image and turns the top result
// into advice plus a structured analysis. Never returns an error.
func (s *Service) ProcessImageBuffer(ctx context.Context, image []byte, language string) *Advice {
	log.Printf("[Image Process] Starting image buffer processing, size: %d bytes, language: %s", len(image), language)

	if s.backend == nil {
		log.Printf("[Image Process] No inference backend configured - using fallback")
		return imageFallback(language)
	}

	results, err := s.backend.ImageClassification(ctx, image, imageModel)
	if err != nil {
		log.Printf("[Image Process] Classification failed: %v", err)
		return imageFallback(language)
	}
	if len(results) == 0 {
		log.Printf("[Image Process] Classification returned no results")
		return imageFallback(language)
	}

	top := results[0]
	log.Printf("[Image Process] Detected: %s (confidence %.4f)", top.Label, top.Score)

	analysis := &Analysis{
		DetectedIssues: []interface{}{
			DetectedIssue{
				Disease:    top.Label,
				Confidence: top.Score,
				Symptoms:   diseaseSymptoms(top.Label),
				Severity:   severity(top.Score),
			},
		},
		PrimaryIssue:    top.Label,
		Confidence:      top.Score,
		Recommendations: recommendations(top.Label, language),
	}

	return &Advice{
		Success:  true,
		Advice:   imageAdvice(top.Label, top.Score, language),
		Analysis: analysis,
	}
}
