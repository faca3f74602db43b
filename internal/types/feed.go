package types

// Transient feed shapes. These are never persisted; they exist per fetch and
// are discarded with the response.

type FeedItem struct {
	Post
	TimeAgo        string `json:"time_ago"`
	AuthorUsername string `json:"author_username"`
}

type FeedPage struct {
	Items    []FeedItem `json:"items"`
	Offset   int        `json:"offset"`
	PageSize int        `json:"page_size"`
	HasMore  bool       `json:"has_more"`
}

type DayGroup struct {
	Label string     `json:"label"`
	Items []FeedItem `json:"items"`
}

type StanceCounts struct {
	InFavorCount int64 `json:"in_favor_count"`
	AgainstCount int64 `json:"against_count"`
}

type DebateListItem struct {
	DebateQuestion
	InFavorCount int64 `json:"in_favor_count"`
	AgainstCount int64 `json:"against_count"`
}
