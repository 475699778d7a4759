package generate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOllamaGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/generate", r.URL.Path)
		_, _ = w.Write([]byte(`{"response": "  Hello there!  "}`))
	}))
	defer server.Close()

	g := NewOllama(server.Client(), server.URL, "llama3", 0)

	text, ok := g.Generate(context.Background(), "greet the user")
	require.True(t, ok)
	assert.Equal(t, "Hello there!", text)
}

func TestOllamaUnavailableOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	g := NewOllama(server.Client(), server.URL, "llama3", 0)

	_, ok := g.Generate(context.Background(), "greet the user")
	assert.False(t, ok)
}

func TestOllamaUnavailableWhenUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	g := NewOllama(&http.Client{}, server.URL, "llama3", 0)

	_, ok := g.Generate(context.Background(), "greet the user")
	assert.False(t, ok)
}

func TestOllamaUnavailableOnEmptyOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response": ""}`))
	}))
	defer server.Close()

	g := NewOllama(server.Client(), server.URL, "llama3", 0)

	_, ok := g.Generate(context.Background(), "greet the user")
	assert.False(t, ok)
}

func TestOllamaUnavailableWithoutModel(t *testing.T) {
	g := NewOllama(nil, "", "", 0)

	_, ok := g.Generate(context.Background(), "greet the user")
	assert.False(t, ok)
}

func TestOllamaRespectsTimeout(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	g := NewOllama(server.Client(), server.URL, "llama3", 50*time.Millisecond)

	start := time.Now()
	_, ok := g.Generate(context.Background(), "greet the user")
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 5*time.Second)
}
