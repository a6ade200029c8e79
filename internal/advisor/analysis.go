package advisor

import (
	"fmt"
	"strings"
)

var analysisKeywords = map[string]struct {
	disease   []string
	treatment []string
}{
	"urdu": {
		disease:   []string{"بیماری", "فنگس", "کیڑے", "انفیکشن"},
		treatment: []string{"علاج", "دوا", "سپرے", "کھاد"},
	},
	"english": {
		disease:   []string{"disease", "fungus", "pest", "infection"},
		treatment: []string{"treatment", "fungicide", "spray", "fertilizer"},
	},
}

// extractAnalysis scans generated advice sentence by sentence for disease
// and treatment keywords and builds a structured summary from the matches.
func extractAnalysis(text, language string) *Analysis {
	keywords, ok := analysisKeywords[language]
	if !ok {
		keywords = analysisKeywords["english"]
	}

	var detectedIssues []interface{}
	var recommendations []string

	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '۔'
	})
	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		if containsAny(lower, keywords.treatment) {
			recommendations = append(recommendations, strings.TrimSpace(sentence))
		}
		if containsAny(lower, keywords.disease) {
			detectedIssues = append(detectedIssues, strings.TrimSpace(sentence))
		}
	}

	if len(detectedIssues) == 0 {
		detectedIssues = []interface{}{"general_inquiry"}
	}
	if len(recommendations) == 0 {
		recommendations = []string{"Consult with agricultural expert"}
	}

	return &Analysis{
		DetectedIssues:  detectedIssues,
		Recommendations: recommendations,
	}
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func imageAdvice(disease string, confidence float64, language string) string {
	percent := fmt.Sprintf("%.1f", confidence*100)
	if language == "urdu" {
		return fmt.Sprintf("تصویر کے تجزیے کی بنیاد پر، آپ کی فصل میں %s کی %s%% اعتماد کے ساتھ تشخیص ہوئی ہے۔ فوری طور پر مناسب علاج کریں۔", disease, percent)
	}
	return fmt.Sprintf("Based on image analysis, %s detected in your crop with %s%% confidence. Please take appropriate treatment immediately.", disease, percent)
}

var symptomsByDisease = map[string][]string{
	"rust":   {"Orange-brown pustules", "Yellowing leaves"},
	"blight": {"Dark spots", "Wilting"},
	"mildew": {"White powdery coating", "Leaf curling"},
}

func diseaseSymptoms(disease string) []string {
	if symptoms, ok := symptomsByDisease[strings.ToLower(disease)]; ok {
		return symptoms
	}
	return []string{"Visible crop damage"}
}

func severity(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "high"
	case confidence > 0.5:
		return "moderate"
	default:
		return "low"
	}
}

var recommendationsByLanguage = map[string]map[string][]string{
	"urdu": {
		"rust": {
			"پروپیکونازول پر مشتمل فنگی سائیڈ استعمال کریں",
			"متاثرہ پتے فوری طور پر ہٹا دیں",
			"ہوا کی گردش بہتر بنائیں",
		},
		"blight": {
			"بیکٹیریا مخالف سپرے استعمال کریں",
			"پانی کے چھینٹے سے بچیں",
			"مناسب فاصلہ رکھیں",
		},
		"default": {
			"مقامی زرعی ماہر سے مشورہ کریں",
			"متوازن کھاد استعمال کریں",
			"کھیت کی صفائی برقرار رکھیں",
		},
	},
	"english": {
		"rust": {
			"Apply fungicide containing propiconazole",
			"Remove infected leaves immediately",
			"Improve air circulation",
		},
		"blight": {
			"Use antibacterial spray",
			"Avoid overhead watering",
			"Maintain proper spacing",
		},
		"default": {
			"Consult with local agricultural expert",
			"Apply balanced fertilizer",
			"Maintain field hygiene",
		},
	},
}

func recommendations(disease, language string) []string {
	langRecs, ok := recommendationsByLanguage[language]
	if !ok {
		langRecs = recommendationsByLanguage["english"]
	}
	if recs, ok := langRecs[strings.ToLower(disease)]; ok {
		return recs
	}
	return langRecs["default"]
}
