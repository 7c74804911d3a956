// Package types defines the data structures used in the URL shortener service.
package types

import "time"

// URLResponse represents the response structure for URL-related operations.
type URLResponse struct {
	ShortURL    string    `json:"short_url"`
	OriginalURL string    `json:"original_url"`
	Identifier  string    `json:"identifier"`
	CreatedAt   time.Time `json:"created_at"`
}

// URLData is the record kept for every shortened URL. It is never modified after creation.
type URLData struct {
	ShortURL    string
	OriginalURL string
	Identifier  string
	CreatedAt   time.Time
}

// Response converts the stored record into its JSON representation.
func (d URLData) Response() URLResponse {
	return URLResponse{
		ShortURL:    d.ShortURL,
		OriginalURL: d.OriginalURL,
		Identifier:  d.Identifier,
		CreatedAt:   d.CreatedAt,
	}
}

// URLRequest represents the request structure for creating a short URL.
// Validation of URL happens in the shortener, not at bind time.
type URLRequest struct {
	URL string `json:"url"`
}

// Stats describes the occupancy of a shortener instance.
type Stats struct {
	Stored    int    `json:"stored"`
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Domain    string `json:"domain"`
	Strategy  string `json:"strategy"`
}
