package language

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// LibreClient talks to a LibreTranslate-compatible endpoint.
type LibreClient struct {
	BaseURL string
	APIKey  string
	client  *http.Client
}

// NewLibreClient creates a LibreTranslate client. apiKeyEnv names the
// environment variable holding the API key; public instances accept an
// empty key.
func NewLibreClient(baseURL, apiKeyEnv string, timeout time.Duration) *LibreClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &LibreClient{
		BaseURL: baseURL,
		APIKey:  os.Getenv(apiKeyEnv),
		client:  &http.Client{Timeout: timeout},
	}
}

// IsConfigured checks that the endpoint is reachable.
func (c *LibreClient) IsConfigured() bool {
	if c.BaseURL == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", c.BaseURL+"/languages", nil)
	if err != nil {
		return false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// Translate translates text from sourceLang to targetLang.
func (c *LibreClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	body := map[string]any{
		"q":      text,
		"source": sourceLang,
		"target": targetLang,
		"format": "text",
	}
	if c.APIKey != "" {
		body["api_key"] = c.APIKey
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.BaseURL+"/translate", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate API error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translate API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}

	return result.TranslatedText, nil
}
