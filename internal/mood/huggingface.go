package mood

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultHuggingFaceURL is the hf-inference provider behind the
	// Hugging Face inference router.
	DefaultHuggingFaceURL = "https://router.huggingface.co/hf-inference"
	// DefaultHuggingFaceModel is a BERT model fine-tuned on emotion labels.
	DefaultHuggingFaceModel = "nateraw/bert-base-uncased-emotion"

	hfUserAgent = "mood-journal/1.0"
)

// ErrNoLabel is returned when the model answers without any label.
var ErrNoLabel = errors.New("model returned no label")

// HuggingFace classifies text through the Hugging Face inference API.
type HuggingFace struct {
	token      string
	model      string
	baseURL    string
	httpClient *http.Client
}

// HuggingFaceConfig holds Hugging Face inference settings.
type HuggingFaceConfig struct {
	Token   string // optional for public models
	Model   string
	BaseURL string
}

// NewHuggingFace creates a Hugging Face model adapter.
func NewHuggingFace(cfg HuggingFaceConfig) *HuggingFace {
	model := cfg.Model
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultHuggingFaceURL
	}
	return &HuggingFace{
		token:   cfg.Token,
		model:   model,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultModelTimeout,
		},
	}
}

type hfRequest struct {
	Inputs string `json:"inputs"`
}

type hfScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type hfError struct {
	Error string `json:"error"`
}

// Classify returns the highest-scoring label for text.
func (h *HuggingFace) Classify(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(hfRequest{Inputs: text})
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s", h.baseURL, h.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", hfUserAgent)
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr hfError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error != "" {
			return "", fmt.Errorf("huggingface status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return "", fmt.Errorf("huggingface status %d", resp.StatusCode)
	}

	scores, err := parseScores(respBody)
	if err != nil {
		return "", err
	}
	return topLabel(scores)
}

// parseScores accepts both the nested [[...]] and the flat [...] shapes
// the inference API returns for text classification.
func parseScores(body []byte) ([]hfScore, error) {
	var nested [][]hfScore
	if err := json.Unmarshal(body, &nested); err == nil {
		var flat []hfScore
		for _, batch := range nested {
			flat = append(flat, batch...)
		}
		return flat, nil
	}

	var flat []hfScore
	if err := json.Unmarshal(body, &flat); err == nil {
		return flat, nil
	}

	var apiErr hfError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		return nil, fmt.Errorf("huggingface: %s", apiErr.Error)
	}
	return nil, fmt.Errorf("parsing classification response: unexpected body %q", truncate(string(body), 120))
}

func topLabel(scores []hfScore) (string, error) {
	best := -1
	for i, s := range scores {
		if strings.TrimSpace(s.Label) == "" {
			continue
		}
		if best == -1 || s.Score > scores[best].Score {
			best = i
		}
	}
	if best == -1 {
		return "", ErrNoLabel
	}
	return strings.ToLower(strings.TrimSpace(scores[best].Label)), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
