package ml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelDirWithScript lays out a model directory containing all required
// artifacts, with the classifier script replaced by a shell script so the
// process contract can be exercised without Python or a trained model.
func modelDirWithScript(t *testing.T, script string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predict_service.py"), []byte(script), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "plant_disease_resnet50.pth"), []byte("weights"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "class_labels.txt"), []byte("Apple___Cedar_rust\n"), 0o644))
	return dir
}

func tempFiles(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "temp_*.jpg"))
	require.NoError(t, err)
	return matches
}

const successScript = `#!/bin/sh
test -f "$1" || { echo "input file missing" >&2; exit 9; }
test "$2" = "0.75" || { echo "unexpected threshold: $2" >&2; exit 8; }
echo '{"predicted_class":"Apple___Cedar_rust","confidence":0.8734,"all_predictions":[{"class":"Apple___Cedar_rust","confidence":0.8734}],"threshold_met":true}'
`

func TestPredictSuccess(t *testing.T) {
	dir := modelDirWithScript(t, successScript)
	svc := NewService(dir, "/bin/sh", 30*time.Second)
	require.True(t, svc.Status().Ready)

	result, err := svc.Predict(context.Background(), []byte("fake-jpeg"), 0.75)
	require.NoError(t, err)

	assert.Equal(t, "Apple___Cedar_rust", result.PredictedClass)
	assert.Equal(t, 0.8734, result.Confidence)
	assert.True(t, result.ThresholdMet)
	require.Len(t, result.AllPredictions, 1)

	assert.Empty(t, tempFiles(t, dir), "temp image must be removed after success")
}

func TestPredictProcessFailure(t *testing.T) {
	dir := modelDirWithScript(t, "#!/bin/sh\necho 'model exploded' >&2\nexit 3\n")
	svc := NewService(dir, "/bin/sh", 30*time.Second)

	_, err := svc.Predict(context.Background(), []byte("fake-jpeg"), 0.6)
	require.Error(t, err)

	var procErr *PredictionProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Contains(t, procErr.Stderr, "model exploded")

	assert.Empty(t, tempFiles(t, dir), "temp image must be removed after process failure")
}

func TestPredictParseFailure(t *testing.T) {
	dir := modelDirWithScript(t, "#!/bin/sh\necho 'this is not json'\n")
	svc := NewService(dir, "/bin/sh", 30*time.Second)

	_, err := svc.Predict(context.Background(), []byte("fake-jpeg"), 0.6)
	require.Error(t, err)

	var parseErr *PredictionParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Contains(t, parseErr.Output, "this is not json")

	assert.Empty(t, tempFiles(t, dir), "temp image must be removed after parse failure")
}

func TestPredictTimeout(t *testing.T) {
	dir := modelDirWithScript(t, "#!/bin/sh\nsleep 5\n")
	svc := NewService(dir, "/bin/sh", 200*time.Millisecond)

	start := time.Now()
	_, err := svc.Predict(context.Background(), []byte("fake-jpeg"), 0.6)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)

	var procErr *PredictionProcessError
	require.True(t, errors.As(err, &procErr))
	assert.Contains(t, procErr.Error(), "timed out")

	assert.Empty(t, tempFiles(t, dir), "temp image must be removed after timeout")
}

func TestMissingArtifacts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "predict_service.py"), []byte("#!/bin/sh\n"), 0o755))

	svc := NewService(dir, "/bin/sh", 30*time.Second)

	status := svc.Status()
	assert.False(t, status.Ready)
	require.NotNil(t, status.Error)
	assert.Contains(t, *status.Error, "Missing ML model files:")
	assert.Contains(t, *status.Error, "plant_disease_resnet50.pth")
	assert.Contains(t, *status.Error, "class_labels.txt")
	assert.Equal(t, dir, status.ModelPath)

	_, err := svc.Predict(context.Background(), []byte("fake-jpeg"), 0.6)
	var notReady *ModelNotReadyError
	require.True(t, errors.As(err, &notReady))

	assert.Empty(t, tempFiles(t, dir), "not-ready predictor must not write temp files")
}
