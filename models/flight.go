package models

// Offer is a priced, bookable flight option returned by flight search.
type Offer struct {
	ID             string  `json:"id"`
	Airline        string  `json:"airline"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
	Departure      string  `json:"departure"`
	Arrival        string  `json:"arrival"`
	Duration       string  `json:"duration"`
	Price          float64 `json:"price"`
	SeatsAvailable int     `json:"seats_available"`
	TravelDate     string  `json:"travel_date"` // YYYY-MM-DD
}
