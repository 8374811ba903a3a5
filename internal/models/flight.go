package models

// FlightSummary is the flat view of one itinerary. Fields are copied verbatim
// from the first leg of the first segment.
type FlightSummary struct {
	CarrierName       string           `json:"carrier_name"`
	OriginCode        string           `json:"origin_code"`
	DestinationCode   string           `json:"destination_code"`
	DepartureDateTime string           `json:"departure_date_time"`
	ArrivalDateTime   string           `json:"arrival_date_time"`
	FlightNumber      string           `json:"flight_number"`
	PurchaseOptions   []PurchaseOption `json:"purchase_options"`
}

type PurchaseOption struct {
	ProviderID string  `json:"provider_id"`
	URL        string  `json:"url"`
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`
}
