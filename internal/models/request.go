package models

import "strings"

type SortOrder string

const (
	SortByPrice    SortOrder = "PRICE"
	SortByDuration SortOrder = "DURATION"
)

type ClassOfService string

const (
	ClassEconomy  ClassOfService = "ECONOMY"
	ClassBusiness ClassOfService = "BUSINESS"
)

// Fixed query values sent with every search.
const (
	ItineraryOneWay = "ONE_WAY"
	PageNumber      = 1
	CurrencyINR     = "INR"
	NumSeniors      = 0
)

type SearchCriteria struct {
	SourceAirportCode      string         `json:"source_airport_code" query:"sourceAirportCode" form:"sourceAirportCode"`
	DestinationAirportCode string         `json:"destination_airport_code" query:"destinationAirportCode" form:"destinationAirportCode"`
	Date                   string         `json:"date,omitempty" query:"date" form:"date"`
	SortOrder              SortOrder      `json:"sort_order" query:"sortOrder" form:"sortOrder"`
	ClassOfService         ClassOfService `json:"class_of_service" query:"classOfService" form:"classOfService"`
	NumAdults              int            `json:"num_adults" query:"numAdults" form:"numAdults"`
}

// NewSearchCriteria returns criteria carrying the form defaults. Binders only
// overwrite the fields present in the input, so absent fields keep these.
func NewSearchCriteria() SearchCriteria {
	return SearchCriteria{
		SortOrder:      SortByPrice,
		ClassOfService: ClassEconomy,
		NumAdults:      1,
	}
}

func (r *SearchCriteria) Validate() error {
	if strings.TrimSpace(r.SourceAirportCode) == "" {
		return ErrMissingSourceAirport
	}
	if strings.TrimSpace(r.DestinationAirportCode) == "" {
		return ErrMissingDestinationAirport
	}
	if r.NumAdults < 1 {
		return ErrInvalidNumAdults
	}

	r.SortOrder = SortOrder(strings.ToUpper(strings.TrimSpace(string(r.SortOrder))))
	switch r.SortOrder {
	case "":
		r.SortOrder = SortByPrice
	case SortByPrice, SortByDuration:
	default:
		return ErrInvalidSortOrder
	}

	r.ClassOfService = ClassOfService(strings.ToUpper(strings.TrimSpace(string(r.ClassOfService))))
	switch r.ClassOfService {
	case "":
		r.ClassOfService = ClassEconomy
	case ClassEconomy, ClassBusiness:
	default:
		return ErrInvalidClassOfService
	}

	return nil
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingSourceAirport      ValidationError = "source airport code is required"
	ErrMissingDestinationAirport ValidationError = "destination airport code is required"
	ErrInvalidNumAdults          ValidationError = "number of adults must be at least 1"
	ErrInvalidSortOrder          ValidationError = "sort order must be PRICE or DURATION"
	ErrInvalidClassOfService     ValidationError = "class of service must be ECONOMY or BUSINESS"
)
