package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"matchday-tracker/internal/config"

	"github.com/valyala/fasthttp"
)

var ErrCatalogDisabled = errors.New("catalog url not configured")

// CatalogClient fetches team ratings from a remote JSON catalog.
type CatalogClient struct {
	url    string
	apiKey string
	client *fasthttp.Client
}

type CatalogResponse struct {
	Status int           `json:"status"`
	Data   []CatalogTeam `json:"data"`
}

type CatalogTeam struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	League   string  `json:"league"`
	Stars    float64 `json:"stars"`
	Overall  int     `json:"overall"`
	Attack   int     `json:"attack"`
	Midfield int     `json:"midfield"`
	Defend   int     `json:"defend"`
}

func NewCatalogClient(cfg *config.Config) *CatalogClient {
	return &CatalogClient{
		url:    cfg.CatalogURL,
		apiKey: cfg.CatalogAPIKey,
		client: &fasthttp.Client{
			MaxConnsPerHost:     16,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *CatalogClient) Enabled() bool {
	return c.url != ""
}

func (c *CatalogClient) GetTeams(ctx context.Context) (*CatalogResponse, error) {
	if !c.Enabled() {
		return nil, ErrCatalogDisabled
	}
	return doRequest[CatalogResponse](ctx, c, c.url)
}

func doRequest[T any](ctx context.Context, c *CatalogClient, url string) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("catalog error: %d", resp.StatusCode())
	}

	var result T
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return &result, nil
}
