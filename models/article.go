package models

import "encoding/json"

// ArticleCount records the view count for one article over one period.
// Exactly one of Month, Week and Day is populated alongside Year,
// depending on what the count was aggregated over.
type ArticleCount struct {
	ArticleName  string `json:"article_name"`
	ArticleCount int64  `json:"article_count"`
	Year         int    `json:"year"`
	Month        int    `json:"month,omitempty"`
	Week         int    `json:"week,omitempty"`
	Day          int    `json:"day,omitempty"`
}

// CountsToJSON encodes a count list into the form stored in the cache. A
// nil or empty list encodes as an empty JSON array, so a day with no data
// is still distinguishable from a day never fetched.
func CountsToJSON(counts []ArticleCount) ([]byte, error) {
	if counts == nil {
		counts = []ArticleCount{}
	}
	return json.Marshal(counts)
}

// JSONToCounts decodes a cache entry written by CountsToJSON.
func JSONToCounts(encoded []byte) ([]ArticleCount, error) {
	counts := []ArticleCount{}
	if err := json.Unmarshal(encoded, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}
