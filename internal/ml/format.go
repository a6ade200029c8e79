package ml

import (
	"fmt"
	"strings"

	"agrichat/internal/model"
)

// FormatPrediction converts a raw classifier result into its display-ready
// form. Pure function; the predictor's ordering of AllPredictions is
// preserved and ThresholdMet is passed through untouched.
func FormatPrediction(res *model.ClassificationResult) *model.FormattedPrediction {
	plant, disease := splitLabel(res.PredictedClass)

	formatted := &model.FormattedPrediction{
		Plant:           plant,
		Disease:         disease,
		Confidence:      formatPercent(res.Confidence),
		ConfidenceScore: res.Confidence,
		IsHealthy:       strings.EqualFold(disease, "healthy"),
		IsConfident:     res.ThresholdMet,
		TopPredictions:  make([]model.TopPrediction, 0, len(res.AllPredictions)),
	}

	for _, pred := range res.AllPredictions {
		p, d := splitLabel(pred.Class)
		formatted.TopPredictions = append(formatted.TopPredictions, model.TopPrediction{
			Plant:           p,
			Disease:         d,
			Confidence:      formatPercent(pred.Confidence),
			ConfidenceScore: pred.Confidence,
		})
	}

	return formatted
}

// splitLabel parses a compound "<Plant>___<Disease>" label. A missing
// segment becomes "Unknown"; underscores inside segments are shown as
// spaces.
func splitLabel(class string) (plant, disease string) {
	parts := strings.SplitN(class, "___", 2)

	plant = parts[0]
	if plant == "" {
		plant = "Unknown"
	}
	if len(parts) > 1 && parts[1] != "" {
		disease = parts[1]
	} else {
		disease = "Unknown"
	}

	return strings.ReplaceAll(plant, "_", " "), strings.ReplaceAll(disease, "_", " ")
}

func formatPercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}
