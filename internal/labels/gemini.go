package labels

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const geminiModel = "gemini-flash-latest"
const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// GeminiClient generates label overviews via the Gemini REST API. An empty
// APIKey makes every call fail with ErrGeneratorUnavailable.
type GeminiClient struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GeminiClient) Model() string {
	return geminiModel
}

func (c *GeminiClient) httpClient() *http.Client {
	if c.Client != nil {
		return c.Client
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (c *GeminiClient) endpoint() string {
	base := c.BaseURL
	if base == "" {
		return fmt.Sprintf(geminiEndpoint, geminiModel)
	}
	return fmt.Sprintf(base+"/v1beta/models/%s:generateContent", geminiModel)
}

// GenerateLabelOverview asks the model for a short factual paragraph about
// the record label.
func (c *GeminiClient) GenerateLabelOverview(ctx context.Context, labelName string) (string, error) {
	if c.APIKey == "" {
		return "", ErrGeneratorUnavailable
	}

	body := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: labelPrompt(labelName)}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			TopP:            0.8,
			TopK:            40,
			MaxOutputTokens: 300,
		},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini returned status %d", resp.StatusCode)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", err
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("no candidates in response")
	}
	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}

func labelPrompt(labelName string) string {
	return fmt.Sprintf(`Write a brief overview about the record label %q in one paragraph. Maximum 4 sentences. Include founding year if known, music genres, and notable artists. Be concise and factual. Use plain text only, no markdown formatting.`, labelName)
}
