// File: services/knowledge/client.go
package knowledge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"hebelki/models"
)

const defaultLimit = 5

// HTTPSearcher talks to the search service over JSON. Calls are bounded by
// the client timeout; a failed search degrades the answer, never the turn.
type HTTPSearcher struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSearcher builds a searcher against the configured search service.
func NewHTTPSearcher(baseURL string) *HTTPSearcher {
	return &HTTPSearcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type searchRequest struct {
	BusinessID string `json:"businessId"`
	Query      string `json:"query"`
	Limit      int    `json:"limit"`
}

type searchResponse struct {
	Hits []models.KnowledgeHit `json:"hits"`
}

func (s *HTTPSearcher) Search(ctx context.Context, businessID, query string, limit int) ([]models.KnowledgeHit, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	body, err := json.Marshal(searchRequest{BusinessID: businessID, Query: query, Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search service call: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search service returned status %d", resp.StatusCode)
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return out.Hits, nil
}
