package carbon

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2/log"
)

type (
	// TextExtractor converts a stored image into raw text. Failures degrade
	// to an empty string: downstream stages still run on empty input, which
	// beats aborting the whole request over a flaky OCR box.
	TextExtractor interface {
		ExtractText(ctx context.Context, imageURL string) string
	}

	OCRConfig struct {
		ServiceURL string
		Language   string
		Timeout    time.Duration
	}

	ocrClient struct {
		cfg        OCRConfig
		httpClient *http.Client
	}
)

func NewOCRClient(cfg OCRConfig) TextExtractor {
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ocrClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *ocrClient) ExtractText(ctx context.Context, imageURL string) string {
	payload, err := json.Marshal(map[string]string{
		"image_url": imageURL,
		"language":  c.cfg.Language,
	})
	if err != nil {
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.ServiceURL, bytes.NewReader(payload))
	if err != nil {
		log.Warnf("ocr request build failed: %v", err)
		return ""
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warnf("ocr request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warnf("ocr service returned %s", resp.Status)
		return ""
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warnf("ocr response decode failed: %v", err)
		return ""
	}

	return body.Text
}
