package domain

// Video is a normalized educational video search result.
type Video struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
	URL          string `json:"url"`
}

// VideoSearchResult is the normalized shape returned by the video upstream.
// An empty Videos slice is a success with zero items, not an error.
type VideoSearchResult struct {
	Videos       []Video `json:"videos"`
	TotalResults int     `json:"totalResults"`
}
