package gemini

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const pheromonePrompt = "Analyze this image, which is a user's social media " +
	"explore page. Based on its content (e.g., themes, aesthetics, types of " +
	"posts), provide a one-sentence analysis of their potential digital " +
	"pheromone. The sentence should be written like esoteric internet art " +
	"and science. Only output the sentence, no other text."

// maxImageBytes caps how much of a screenshot we pull into memory.
const maxImageBytes = 8 << 20

type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	http   *http.Client
}

func NewClient(apiKey, modelName string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.4)
	model.SetMaxOutputTokens(100)

	return &Client{
		client: client,
		model:  model,
		http:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

// AnalyzeExploreScreenshot fetches the stored screenshot and asks the model
// for a one-sentence "digital pheromone" description. The text is advisory
// only; callers treat any error here as non-fatal.
func (c *Client) AnalyzeExploreScreenshot(ctx context.Context, imageURL string) (string, error) {
	data, format, err := c.fetchImage(ctx, imageURL)
	if err != nil {
		return "", err
	}

	resp, err := c.model.GenerateContent(ctx, genai.ImageData(format, data), genai.Text(pheromonePrompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate analysis: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}

	analysis := strings.TrimSpace(sb.String())
	if analysis == "" {
		return "", fmt.Errorf("empty analysis")
	}
	return analysis, nil
}

func (c *Client) fetchImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("invalid image url: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	// genai wants the bare format name, e.g. "jpeg" from "image/jpeg".
	format := "jpeg"
	if ct := resp.Header.Get("Content-Type"); strings.HasPrefix(ct, "image/") {
		format = strings.TrimPrefix(ct, "image/")
		if idx := strings.Index(format, ";"); idx >= 0 {
			format = format[:idx]
		}
	}

	return data, format, nil
}
