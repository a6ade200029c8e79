package advisor

import (
	"context"
	"fmt"
	"log"
	"strings"

	"agrichat/internal/inference"

	"github.com/sashabaranov/go-openai"
)

// ProcessTextQuery generates agricultural advice for a free-form question.
// It tries the hosted text model first, then the OpenAI client when
// configured, and degrades to the canned fallback. Never returns an error.
func (s *Service) ProcessTextQuery(ctx context.Context, query, language string) *Advice {
	log.Printf("[Text Process] Processing query, length: %d, language: %s", len(query), language)

	if s.backend == nil && s.openAI == nil {
		log.Printf("[Text Process] No backends configured - using fallback")
		return textFallback(language)
	}

	prompt := expertPrompt(query, language)

	if s.backend != nil {
		advice, err := s.backend.TextGeneration(ctx, prompt, textModel, inference.TextGenerationParams{
			MaxNewTokens:   300,
			Temperature:    0.7,
			ReturnFullText: false,
		})
		if err == nil {
			if a := strings.TrimSpace(advice); a != "" {
				log.Printf("[Text Process] Hosted model responded, advice length: %d", len(a))
				return &Advice{
					Success:  true,
					Advice:   a,
					Analysis: extractAnalysis(a, language),
				}
			}
			log.Printf("[Text Process] Hosted model returned empty advice")
		} else {
			log.Printf("[Text Process] Hosted model failed: %v", err)
		}
	}

	if s.openAI != nil {
		if advice, err := s.askOpenAI(ctx, query, language); err == nil {
			return &Advice{
				Success:  true,
				Advice:   advice,
				Analysis: extractAnalysis(advice, language),
			}
		} else {
			log.Printf("[Text Process] OpenAI fallback failed: %v", err)
		}
	}

	log.Printf("[Text Process] All text backends failed - using fallback")
	return textFallback(language)
}

func (s *Service) askOpenAI(ctx context.Context, query, language string) (string, error) {
	log.Printf("[Text Process] Trying OpenAI with model: %s", openai.GPT4oMini)

	system := "You are an agricultural expert. Provide detailed, practical advice for farmers."
	if language == "urdu" {
		system = "آپ ایک زرعی ماہر ہیں۔ کسانوں کے لیے تفصیلی اور عملی مشورہ دیں۔ اردو میں جواب دیں۔"
	}

	resp, err := s.openAI.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: system,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: query,
			},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	advice := strings.TrimSpace(resp.Choices[0].Message.Content)
	if advice == "" {
		return "", fmt.Errorf("OpenAI returned empty content")
	}

	log.Printf("[Text Process] OpenAI responded, advice length: %d, tokens: %d", len(advice), resp.Usage.TotalTokens)
	return advice, nil
}

func expertPrompt(query, language string) string {
	if language == "urdu" {
		return fmt.Sprintf("آپ ایک زرعی ماہر ہیں۔ اس سوال کا تفصیلی جواب دیں: %s", query)
	}
	return fmt.Sprintf("You are an agricultural expert. Provide detailed advice for: %s", query)
}
