package model

// ClassPrediction is one entry of the classifier's ranked output
type ClassPrediction struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// ClassificationResult is the raw output of the plant disease classifier.
// PredictedClass is a compound label of the form "<Plant>___<Disease>".
type ClassificationResult struct {
	PredictedClass string            `json:"predicted_class"`
	Confidence     float64           `json:"confidence"`
	AllPredictions []ClassPrediction `json:"all_predictions"`
	ThresholdMet   bool              `json:"threshold_met"`
}

// TopPrediction is one reformatted entry of AllPredictions
type TopPrediction struct {
	Plant           string  `json:"plant"`
	Disease         string  `json:"disease"`
	Confidence      string  `json:"confidence"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// FormattedPrediction is the display-ready view of a ClassificationResult
type FormattedPrediction struct {
	Plant           string          `json:"plant"`
	Disease         string          `json:"disease"`
	Confidence      string          `json:"confidence"`
	ConfidenceScore float64         `json:"confidenceScore"`
	IsHealthy       bool            `json:"isHealthy"`
	IsConfident     bool            `json:"isConfident"`
	TopPredictions  []TopPrediction `json:"topPredictions"`
}
