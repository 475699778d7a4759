package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds a single generation call. Local models can be slow
// to load; past this bound the generator reports unavailable.
const DefaultTimeout = 30 * time.Second

// Ollama generates text via a local Ollama server's /api/generate endpoint.
type Ollama struct {
	client  *http.Client
	baseURL string
	model   string
	timeout time.Duration
}

// NewOllama creates an Ollama-backed Generator. baseURL defaults to the
// standard local port, timeout to DefaultTimeout.
func NewOllama(client *http.Client, baseURL, model string, timeout time.Duration) *Ollama {
	if client == nil {
		client = &http.Client{}
	}
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Ollama{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
	}
}

// Generate sends the prompt to Ollama and returns the generated text.
// Any failure (no server, bad status, timeout, empty output) reports
// unavailable rather than an error.
func (o *Ollama) Generate(ctx context.Context, prompt string) (string, bool) {
	if o.model == "" {
		return "", false
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	body, err := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		log.Printf("ERROR: ollama: marshal request: %v", err)
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		log.Printf("ERROR: ollama: build request: %v", err)
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		log.Printf("ERROR: ollama: request failed: %v", err)
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("ERROR: ollama: %v", fmt.Errorf("unexpected status %d", resp.StatusCode))
		return "", false
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("ERROR: ollama: decode response: %v", err)
		return "", false
	}

	text := strings.TrimSpace(payload.Response)
	if text == "" {
		return "", false
	}
	return text, true
}
