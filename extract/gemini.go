package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Extractor turns a freeform listing description into the property input
// fields a broker would otherwise type by hand.
type Extractor interface {
	ExtractListing(ctx context.Context, text string) (map[string]string, error)
}

type GeminiClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 45 * time.Second},
		baseURL:    "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent",
	}
}

const extractPrompt = `Extract real-estate listing fields from the text below.
Respond with a single JSON object using only these keys, omitting any you cannot determine:
title, propertyType, transactionType (sale or rent), price, rentFrequency (monthly or yearly),
size, sizeUnit (sq.ft, sq.m, sq.yd or acre), location, fullAddress, flatNumber, floorNumber,
buildingSociety, description, bhk, ownerName, ownerPhone.

Text:
`

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *GeminiClient) ExtractListing(ctx context.Context, text string) (map[string]string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: extractPrompt + text}}}},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"?key="+c.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("gemini returned unreadable response: %w", err)
	}
	if out.Error.Message != "" {
		return nil, fmt.Errorf("gemini error: %s", out.Error.Message)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	return parseFields(out.Candidates[0].Content.Parts[0].Text)
}

// parseFields tolerates the model wrapping its JSON in a markdown code fence.
func parseFields(raw string) (map[string]string, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var loose map[string]any
	if err := json.Unmarshal([]byte(cleaned), &loose); err != nil {
		return nil, fmt.Errorf("gemini response is not valid JSON: %w", err)
	}

	fields := make(map[string]string, len(loose))
	for k, v := range loose {
		switch val := v.(type) {
		case string:
			if val != "" {
				fields[k] = val
			}
		case float64:
			fields[k] = strings.TrimSuffix(fmt.Sprintf("%v", val), ".0")
		case bool:
			fields[k] = fmt.Sprintf("%t", val)
		}
	}
	return fields, nil
}
