package mlapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

// UnavailableMessage is shown to users whenever a prediction service cannot be reached.
const UnavailableMessage = "Unable to connect to ML prediction service. Please ensure the API is running on port 8001."

type HTTPClient struct {
	baseURL    string
	legacyURL  string
	httpClient *http.Client
}

var _ providers.DiseasePredictionProvider = (*HTTPClient)(nil)

func NewClient(baseURL, legacyURL string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		legacyURL: strings.TrimRight(legacyURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *HTTPClient) ModelInfo(ctx context.Context) (*entities.ModelInfo, error) {
	out := &entities.ModelInfo{}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/model-info", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Symptoms(ctx context.Context) ([]string, error) {
	var response struct {
		Symptoms []string `json:"symptoms"`
	}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/symptoms", nil, &response); err != nil {
		return nil, err
	}
	return response.Symptoms, nil
}

func (c *HTTPClient) Predict(ctx context.Context, symptoms []string) (*entities.MLPrediction, error) {
	body := struct {
		Symptoms []string `json:"symptoms"`
	}{Symptoms: symptoms}

	out := &entities.MLPrediction{}
	if err := c.doJSON(ctx, http.MethodPost, c.baseURL+"/predict", body, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) PredictLegacy(ctx context.Context, req entities.LegacyPredictionRequest) (*entities.LegacyPrediction, error) {
	out := &entities.LegacyPrediction{}
	if err := c.doJSON(ctx, http.MethodPost, c.legacyURL+"/predict", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return apperrors.NewInternalError("failed to encode prediction request", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return apperrors.NewInternalError("failed to build prediction request", err)
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperrors.NewExternalError(UnavailableMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewExternalError(UnavailableMessage,
			fmt.Errorf("%s %s returned status %d", method, endpoint, resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError(UnavailableMessage, fmt.Errorf("decode %s: %w", endpoint, err))
	}
	return nil
}
