package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"agrichat/internal/model"
)

// DefaultThreshold is the confidence cutoff applied when a request does
// not specify one.
const DefaultThreshold = 0.60

const predictScript = "predict_service.py"

var requiredFiles = []string{
	predictScript,
	"plant_disease_resnet50.pth",
	"class_labels.txt",
}

// Service runs plant disease classification through a short-lived external
// Python process. It is constructed once at startup and handed to the
// request handlers; readiness is decided at construction time.
type Service struct {
	modelDir  string
	pythonBin string
	timeout   time.Duration
	ready     bool
	initErr   string
}

// StatusInfo reports the artifact check captured at construction time
type StatusInfo struct {
	Ready     bool    `json:"ready"`
	Error     *string `json:"error"`
	ModelPath string  `json:"modelPath"`
}

// NewService creates the predictor and checks the model artifacts on disk.
// A missing artifact leaves the service permanently not ready; Status()
// reports which files were absent.
func NewService(modelDir, pythonBin string, timeout time.Duration) *Service {
	s := &Service{
		modelDir:  modelDir,
		pythonBin: pythonBin,
		timeout:   timeout,
	}
	s.checkModelFiles()
	return s
}

func (s *Service) checkModelFiles() {
	var missing []string
	for _, name := range requiredFiles {
		if _, err := os.Stat(filepath.Join(s.modelDir, name)); err != nil {
			missing = append(missing, filepath.Join(s.modelDir, name))
		}
	}

	if len(missing) > 0 {
		s.initErr = "Missing ML model files: " + strings.Join(missing, ", ")
		log.Printf("[ML Service] %s", s.initErr)
		return
	}

	s.ready = true
	log.Printf("[ML Service] Model files found and ready")
}

// Status returns the readiness captured when the service was constructed.
// It does not re-check the filesystem.
func (s *Service) Status() StatusInfo {
	info := StatusInfo{
		Ready:     s.ready,
		ModelPath: s.modelDir,
	}
	if s.initErr != "" {
		msg := s.initErr
		info.Error = &msg
	}
	return info
}

// Predict writes the image to a temporary file, runs one classifier
// process invocation against it and parses the JSON result from stdout.
// The temporary file is removed on every exit path.
func (s *Service) Predict(ctx context.Context, image []byte, threshold float64) (*model.ClassificationResult, error) {
	if !s.ready {
		return nil, &ModelNotReadyError{Message: s.initErr}
	}

	log.Printf("[ML Service] Starting prediction, image size: %d bytes, threshold: %.2f", len(image), threshold)

	tempPath := filepath.Join(s.modelDir, fmt.Sprintf("temp_%d.jpg", time.Now().UnixNano()))
	if err := os.WriteFile(tempPath, image, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write temporary image: %w", err)
	}
	defer func() {
		if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
			log.Printf("[ML Service] Failed to clean up temp file %s: %v", tempPath, err)
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.pythonBin,
		filepath.Join(s.modelDir, predictScript),
		tempPath,
		strconv.FormatFloat(threshold, 'f', -1, 64),
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			log.Printf("[ML Service] Prediction process timed out after %v", s.timeout)
			return nil, &PredictionProcessError{Stderr: stderr.String(), Err: fmt.Errorf("prediction timed out after %v", s.timeout)}
		}
		log.Printf("[ML Service] Python process failed: %v, stderr: %s", err, stderr.String())
		return nil, &PredictionProcessError{Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}

	var result model.ClassificationResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout.String())), &result); err != nil {
		log.Printf("[ML Service] Failed to parse Python output: %s", stdout.String())
		return nil, &PredictionParseError{Output: stdout.String(), Err: err}
	}

	log.Printf("[ML Service] Prediction successful: %s (%.4f)", result.PredictedClass, result.Confidence)
	return &result, nil
}
