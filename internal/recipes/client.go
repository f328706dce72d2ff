// Package recipes talks to the external recipe-lookup service. Results are
// matched against on-hand ingredient names and cached by the storage layer
// when the user stars them; this package never touches storage itself.
package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"pantry/internal/models"
)

// Quota errors. Both are expected outcomes the caller presents to the user;
// daily exhaustion is terminal until tomorrow, per-minute is retryable.
var (
	ErrDailyLimitExceeded     = errors.New("daily recipe lookup quota exceeded")
	ErrPerMinuteLimitExceeded = errors.New("too many recipe lookups, wait a minute")
)

// Client is a rate-governed lookup client. The per-minute limiter and the
// daily counter gate every outbound request.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	perMinute *rate.Limiter

	mu         sync.Mutex
	dailyQuota int
	usedToday  int
	day        string
}

// NewClient builds a client against baseURL with the given quota knobs.
// perMinute and dailyQuota must be positive.
func NewClient(baseURL, apiKey string, perMinute, dailyQuota int) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		perMinute:  rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		dailyQuota: dailyQuota,
	}
}

func (c *Client) allow() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	today := time.Now().Format("2006-01-02")
	if c.day != today {
		c.day = today
		c.usedToday = 0
	}
	if c.usedToday >= c.dailyQuota {
		return ErrDailyLimitExceeded
	}
	if !c.perMinute.Allow() {
		return ErrPerMinuteLimitExceeded
	}

	c.usedToday++
	return nil
}

type ingredientPayload struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
	Unit     string  `json:"unit"`
	Image    string  `json:"image"`
	Original string  `json:"original"`
}

type recipePayload struct {
	ID                int                 `json:"id"`
	Title             string              `json:"title"`
	Image             string              `json:"image"`
	UsedIngredients   []ingredientPayload `json:"usedIngredients"`
	MissedIngredients []ingredientPayload `json:"missedIngredients"`
}

type instructionsPayload struct {
	Steps []struct {
		Number int    `json:"number"`
		Step   string `json:"step"`
	} `json:"steps"`
}

// FindByIngredients looks up recipes matching the given on-hand ingredient
// names. Returned recipes carry used/missed ingredient splits but no
// instructions; fetch those lazily with FetchInstructions.
func (c *Client) FindByIngredients(ctx context.Context, ingredients map[string]bool) ([]models.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, nil
	}
	if err := c.allow(); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(ingredients))
	for name := range ingredients {
		names = append(names, name)
	}
	sort.Strings(names)

	query := url.Values{}
	query.Set("ingredients", strings.Join(names, ","))
	query.Set("number", "10")
	query.Set("ranking", "2")
	query.Set("apiKey", c.apiKey)

	endpoint := c.baseURL + "/recipes/findByIngredients?" + query.Encode()

	var payload []recipePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	recipes := make([]models.Recipe, 0, len(payload))
	for _, p := range payload {
		recipes = append(recipes, models.Recipe{
			ID:                p.ID,
			Title:             p.Title,
			Image:             p.Image,
			UsedIngredients:   convertIngredients(p.UsedIngredients),
			MissedIngredients: convertIngredients(p.MissedIngredients),
			Instructions:      make(map[int]string),
		})
	}

	return recipes, nil
}

// FetchInstructions loads the numbered steps for a recipe. It is a no-op
// when the steps were already fetched.
func (c *Client) FetchInstructions(ctx context.Context, recipe *models.Recipe) error {
	if recipe.InstructionsFetched {
		return nil
	}
	if err := c.allow(); err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/recipes/%d/analyzedInstructions?apiKey=%s",
		c.baseURL, recipe.ID, url.QueryEscape(c.apiKey))

	var payload []instructionsPayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return err
	}

	if recipe.Instructions == nil {
		recipe.Instructions = make(map[int]string)
	}
	for _, block := range payload {
		for _, step := range block.Steps {
			recipe.Instructions[step.Number] = step.Step
		}
	}
	recipe.InstructionsFetched = true

	return nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("recipe lookup request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusTooManyRequests {
		return ErrDailyLimitExceeded
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("recipe lookup returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode recipe lookup response: %w", err)
	}

	return nil
}

func convertIngredients(payload []ingredientPayload) []models.Ingredient {
	var ingredients []models.Ingredient
	for _, p := range payload {
		ingredients = append(ingredients, models.Ingredient{
			ID:       p.ID,
			Name:     p.Name,
			Amount:   p.Amount,
			Unit:     p.Unit,
			Image:    p.Image,
			Original: p.Original,
		})
	}
	return ingredients
}
