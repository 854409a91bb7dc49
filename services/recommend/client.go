package recommend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"hungrylah/models"

	"go.uber.org/zap"
)

// HTTPRankingClient calls the ranking backend over HTTP.
type HTTPRankingClient struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPRankingClient builds a client for the given backend base URL.
// timeout is the per-attempt budget; retries are the cache's concern.
func NewHTTPRankingClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPRankingClient {
	return &HTTPRankingClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// rankingResponse is the wire shape of a successful ranking call.
type rankingResponse struct {
	Recommendations []models.Restaurant `json:"recommendations"`
}

// serverErrorBody is the detail field a failed backend response may carry.
type serverErrorBody struct {
	Detail string `json:"detail"`
}

// FetchRecommendations performs GET /recommendations/{userId}?filter=...
// and maps every failure mode onto the RankingError taxonomy.
func (c *HTTPRankingClient) FetchRecommendations(ctx context.Context, userID, filter string) ([]models.Restaurant, error) {
	endpoint := fmt.Sprintf("%s/recommendations/%s?filter=%s",
		c.baseURL, url.PathEscape(userID), url.QueryEscape(filter))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newMalformedRequestError(err)
	}
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, newTimeoutError(userID, filter)
		}
		return nil, newNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body serverErrorBody
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = json.Unmarshal(raw, &body)
		return nil, newServerError(resp.StatusCode, body.Detail)
	}

	var parsed rankingResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, newServerError(resp.StatusCode, fmt.Sprintf("undecodable response body: %v", err))
	}
	return parsed.Recommendations, nil
}

// Healthy probes the backend root with a short budget.
func (c *HTTPRankingClient) Healthy(ctx context.Context) bool {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("ranking backend health probe failed", zap.Error(err))
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
