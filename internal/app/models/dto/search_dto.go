package dto

// SearchQuery holds the combined search term. An empty term matches nothing.
type SearchQuery struct {
	Query string `form:"q" binding:"omitempty,max=100"`
}

// SearchResponse lists the clubs and events visible to the caller that match
type SearchResponse struct {
	Query  string          `json:"query"`
	Clubs  []ClubResponse  `json:"clubs"`
	Events []EventResponse `json:"events"`
}
