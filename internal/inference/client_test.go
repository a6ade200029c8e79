package inference

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientWithoutToken(t *testing.T) {
	assert.Nil(t, NewClient(""))
}

func TestModelURLRouting(t *testing.T) {
	c := NewClientWithURLs("tok", "http://base", "http://router")

	assert.Equal(t, "http://base/models/openai/whisper-large-v3", c.modelURL("", "openai/whisper-large-v3"))
	assert.Equal(t, "http://router/fal-ai/models/openai/whisper-large-v3", c.modelURL("fal-ai", "openai/whisper-large-v3"))
}

func TestAutomaticSpeechRecognitionResponseShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"text field", `{"text":"hello field"}`, "hello field"},
		{"transcription field", `{"transcription":"hello field"}`, "hello field"},
		{"result string field", `{"result":"hello field"}`, "hello field"},
		{"nested result text", `{"result":{"text":"hello field"}}`, "hello field"},
		{"bare string", `"hello field"`, "hello field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
				assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClientWithURLs("tok", srv.URL, srv.URL)
			text, err := c.AutomaticSpeechRecognition(context.Background(), []byte("audio"), "m", "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, text)
		})
	}
}

func TestAutomaticSpeechRecognitionUnrecognizedShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"something_else":42}`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	_, err := c.AutomaticSpeechRecognition(context.Background(), []byte("audio"), "m", "fal-ai")

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "fal-ai", provErr.Provider)
	assert.Equal(t, "m", provErr.Model)
}

func TestAutomaticSpeechRecognitionUsesProviderRoute(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", "http://unused.invalid", srv.URL)
	_, err := c.AutomaticSpeechRecognition(context.Background(), []byte("audio"), "openai/whisper-large-v3", "together")
	require.NoError(t, err)
	assert.Equal(t, "/together/models/openai/whisper-large-v3", gotPath)
}

func TestPostErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model is loading"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	_, err := c.AutomaticSpeechRecognition(context.Background(), []byte("audio"), "m", "")

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Contains(t, err.Error(), "status 503")
	assert.Contains(t, err.Error(), "model is loading")
}

func TestTextGeneration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`[{"generated_text":"apply fungicide weekly"}]`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	text, err := c.TextGeneration(context.Background(), "prompt", "m", TextGenerationParams{
		MaxNewTokens: 300,
		Temperature:  0.7,
	})
	require.NoError(t, err)
	assert.Equal(t, "apply fungicide weekly", text)
}

func TestTextGenerationEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	_, err := c.TextGeneration(context.Background(), "prompt", "m", TextGenerationParams{})

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
}

func TestImageClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"rust","score":0.91},{"label":"blight","score":0.05}]`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	results, err := c.ImageClassification(context.Background(), []byte("image"), "m")
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, Classification{Label: "rust", Score: 0.91}, results[0])
	assert.Equal(t, Classification{Label: "blight", Score: 0.05}, results[1])
}

func TestImageClassificationParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	c := NewClientWithURLs("tok", srv.URL, srv.URL)
	_, err := c.ImageClassification(context.Background(), []byte("image"), "m")

	var provErr *ProviderError
	require.True(t, errors.As(err, &provErr))
}
