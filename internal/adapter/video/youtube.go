package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/studyhub-ai/studyhub-backend/internal/domain"
	"github.com/studyhub-ai/studyhub-backend/internal/observability"
	"github.com/studyhub-ai/studyhub-backend/internal/port"
)

// YouTubeConfig holds the configuration for the YouTube Data API v3.
type YouTubeConfig struct {
	BaseURL string // e.g. https://www.googleapis.com/youtube/v3
	APIKey  string
}

// YouTubeProvider implements port.VideoSearcher against the YouTube Data
// API v3 search endpoint.
type YouTubeProvider struct {
	cfg        YouTubeConfig
	httpClient *http.Client
}

// NewYouTubeProvider creates a new YouTube-backed video searcher.
func NewYouTubeProvider(cfg YouTubeConfig) *YouTubeProvider {
	return &YouTubeProvider{
		cfg:        cfg,
		httpClient: &http.Client{},
	}
}

// Search queries the search endpoint and maps each item to the normalized
// video shape. Zero items is a success, not an error.
func (y *YouTubeProvider) Search(ctx context.Context, query string, maxResults int) (*domain.VideoSearchResult, error) {
	if maxResults <= 0 {
		maxResults = 10
	}

	params := url.Values{
		"part":              {"snippet"},
		"q":                 {query},
		"key":               {y.cfg.APIKey},
		"type":              {"video"},
		"maxResults":        {strconv.Itoa(maxResults)},
		"relevanceLanguage": {"en"},
		"safeSearch":        {"moderate"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.cfg.BaseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := y.httpClient.Do(req)
	if err != nil {
		observability.VideoSearches.WithLabelValues("transport_error").Inc()
		return nil, fmt.Errorf("youtube search: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("youtube search read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusForbidden:
		observability.VideoSearches.WithLabelValues("quota").Inc()
		return nil, port.ErrVideoQuota
	case resp.StatusCode != http.StatusOK:
		observability.VideoSearches.WithLabelValues("upstream_error").Inc()
		return nil, fmt.Errorf("youtube API error (%d): %s", resp.StatusCode, string(body))
	}

	var parsed struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title       string `json:"title"`
				Description string `json:"description"`
				Thumbnails  struct {
					Medium struct {
						URL string `json:"url"`
					} `json:"medium"`
				} `json:"thumbnails"`
				ChannelTitle string `json:"channelTitle"`
				PublishedAt  string `json:"publishedAt"`
			} `json:"snippet"`
		} `json:"items"`
		PageInfo struct {
			TotalResults int `json:"totalResults"`
		} `json:"pageInfo"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("youtube search decode: %w", err)
	}

	videos := make([]domain.Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		videos = append(videos, domain.Video{
			ID:           item.ID.VideoID,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			URL:          "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}

	observability.VideoSearches.WithLabelValues("ok").Inc()
	return &domain.VideoSearchResult{
		Videos:       videos,
		TotalResults: parsed.PageInfo.TotalResults,
	}, nil
}
