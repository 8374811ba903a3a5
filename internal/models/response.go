package models

type SearchMetadata struct {
	TotalResults int    `json:"total_results"`
	Provider     string `json:"provider"`
	SearchTimeMs int64  `json:"search_time_ms"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria  `json:"search_criteria"`
	Metadata       SearchMetadata  `json:"metadata"`
	Flights        []FlightSummary `json:"flights"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
