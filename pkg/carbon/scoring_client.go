package carbon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"time"
)

type (
	ScoredItem struct {
		Name     string  `json:"name"`
		Count    float64 `json:"count"`
		Factor   float64 `json:"factor"`
		Emission float64 `json:"emission"`
	}

	ScoreResult struct {
		Total float64
		// Defaulted is set when the response carried no usable total and
		// zero was recorded in its place.
		Defaulted bool
		Items     []ScoredItem
	}

	// CarbonScorer delegates emission estimation to the external scoring
	// service.
	CarbonScorer interface {
		Score(ctx context.Context, itemSummary string) (ScoreResult, error)
	}

	ScoringConfig struct {
		ServiceURL string
		Timeout    time.Duration
	}

	scoringClient struct {
		cfg        ScoringConfig
		httpClient *http.Client
	}
)

func NewScoringClient(cfg ScoringConfig) CarbonScorer {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &scoringClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *scoringClient) Score(ctx context.Context, itemSummary string) (ScoreResult, error) {
	payload, err := json.Marshal(map[string]string{"text": itemSummary})
	if err != nil {
		return ScoreResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceURL, bytes.NewReader(payload))
	if err != nil {
		return ScoreResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ScoreResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return ScoreResult{}, fmt.Errorf("scoring service returned %s: %s", resp.Status, string(body))
	}

	// The service has shipped the total under two names; accept either.
	var body struct {
		CarbonEmissionTotal *float64 `json:"carbon_emission_total"`
		TotalEmissionKgCO2  *float64 `json:"total_emission_kgCO2"`
		Items               map[string]struct {
			Count    float64 `json:"count"`
			Factor   float64 `json:"factor"`
			Emission float64 `json:"emission"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return ScoreResult{}, fmt.Errorf("failed to decode scoring response: %w", err)
	}

	result := ScoreResult{}
	switch {
	case body.CarbonEmissionTotal != nil:
		result.Total = *body.CarbonEmissionTotal
	case body.TotalEmissionKgCO2 != nil:
		result.Total = *body.TotalEmissionKgCO2
	default:
		result.Defaulted = true
	}

	if result.Total < 0 || math.IsNaN(result.Total) || math.IsInf(result.Total, 0) {
		result.Total = 0
		result.Defaulted = true
	}

	names := make([]string, 0, len(body.Items))
	for name := range body.Items {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		detail := body.Items[name]
		if detail.Emission < 0 {
			detail.Emission = 0
		}
		result.Items = append(result.Items, ScoredItem{
			Name:     name,
			Count:    detail.Count,
			Factor:   detail.Factor,
			Emission: detail.Emission,
		})
	}

	return result, nil
}
