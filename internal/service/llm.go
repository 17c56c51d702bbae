package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ecogrocery/backend/config"
	"github.com/ecogrocery/backend/internal/types"
)

const (
	llmModel     = "claude-3-haiku-20240307"
	llmCacheTTL  = 24 * time.Hour
	llmMaxTokens = 1000
)

var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// LLMService generates ingredient lists and storage advice for dishes the
// database does not know about. Responses are cached in Redis so a dish is
// only ever generated once per TTL.
type LLMService struct {
	apiKey string
	apiURL string
	redis  *redis.Client
	client *http.Client
}

// NewLLMService creates a new LLMService instance. Returns nil when no API
// key is configured; callers treat a nil service as "no fallback available".
func NewLLMService(cfg *config.Config, redisClient *redis.Client) *LLMService {
	if cfg.AnthropicAPIKey == "" {
		log.Printf("No Anthropic API key configured, ingredient generation disabled")
		return nil
	}

	return &LLMService{
		apiKey: cfg.AnthropicAPIKey,
		apiURL: cfg.AnthropicAPIURL,
		redis:  redisClient,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type llmMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type llmRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []llmMessage `json:"messages"`
}

type llmResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// GenerateIngredients asks the model for the fresh ingredients of a dish.
// Household staples are excluded by the prompt; measurements come back in
// metric units.
func (s *LLMService) GenerateIngredients(ctx context.Context, dishName string) ([]types.PantryItem, error) {
	cacheKey := "ingredients:" + strings.ToLower(dishName)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var items []types.PantryItem
		if err := json.Unmarshal([]byte(cached), &items); err == nil {
			return items, nil
		}
	}

	prompt := fmt.Sprintf(`I need a list of ONLY FRESH ingredients for the dish: %q.

IMPORTANT GUIDELINES:
1. Include ONLY fresh produce like meats, fish, vegetables, fruits, and dairy
2. EXCLUDE common household items like oil, salt, pepper, spices, flour, sugar, etc.
3. Use METRIC measurements: grams (g) for solids and milliliters (ml) for liquids
4. For meat and fish, specify quantity in grams (e.g., "250g")
5. For produce, specify quantity in grams or by count (e.g., "2 large onions" or "150g onions")
6. Do NOT use cups, tablespoons, or teaspoons as measurements

Format your response as a valid JSON array of objects, where each object has "name" and "quantity" properties.
Provide only the JSON array, no additional text. If you're not familiar with the dish or it doesn't contain any fresh ingredients, respond with an empty array: []`, dishName)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON array in model response")
	}

	var raw []types.PantryItem
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	items := make([]types.PantryItem, 0, len(raw))
	for _, item := range raw {
		if item.Name == "" {
			continue
		}
		if item.Quantity == "" {
			item.Quantity = "as needed"
		}
		items = append(items, item)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("model returned no ingredients for %q", dishName)
	}

	if data, err := json.Marshal(items); err == nil {
		s.redis.Set(ctx, cacheKey, data, llmCacheTTL)
	}

	return items, nil
}

// StorageAdvice holds storage recommendations for a food type
type StorageAdvice struct {
	Type       string `json:"type"`
	PantryDays int    `json:"pantry"`
	FridgeDays int    `json:"fridge"`
	Method     int    `json:"method"`
	Source     string `json:"source"`
}

// GenerateStorageAdvice asks the model how long a food type keeps in the
// pantry and fridge.
func (s *LLMService) GenerateStorageAdvice(ctx context.Context, foodType string) (*StorageAdvice, error) {
	cacheKey := "storage:" + strings.ToLower(foodType)
	if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
		var advice StorageAdvice
		if err := json.Unmarshal([]byte(cached), &advice); err == nil {
			return &advice, nil
		}
	}

	prompt := fmt.Sprintf(`How long does %q keep? Respond with a single JSON object with these properties:
"pantry" (integer, days it keeps in the pantry, 0 if it must be refrigerated),
"fridge" (integer, days it keeps refrigerated),
"method" (integer, the best storage method: 1 pantry, 2 fridge, 3 freezer).
Provide only the JSON object, no additional text.`, foodType)

	text, err := s.complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	advice := StorageAdvice{Type: foodType, Source: "generated"}
	if err := json.Unmarshal([]byte(match), &struct {
		Pantry *int `json:"pantry"`
		Fridge *int `json:"fridge"`
		Method *int `json:"method"`
	}{&advice.PantryDays, &advice.FridgeDays, &advice.Method}); err != nil {
		return nil, fmt.Errorf("failed to parse model response: %w", err)
	}

	if data, err := json.Marshal(advice); err == nil {
		s.redis.Set(ctx, cacheKey, data, llmCacheTTL)
	}

	return &advice, nil
}

func (s *LLMService) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := llmRequest{
		Model:     llmModel,
		MaxTokens: llmMaxTokens,
		Messages:  []llmMessage{{Role: "user", Content: prompt}},
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed llmResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}

	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("model response contained no text")
}
