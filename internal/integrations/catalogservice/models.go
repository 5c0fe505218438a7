package catalogservice

// Service is a bookable service as described by the catalog.
// DurationMinutes and Price are copied onto the booking at creation
// time; the catalog is never re-read for an existing booking.
type Service struct {
	ID              int64   `json:"id"`
	ProviderID      int64   `json:"provider_id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Currency        string  `json:"currency"`
	Active          bool    `json:"active"`
}

// ErrorResponse is the catalog's error payload
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
