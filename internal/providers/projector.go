package providers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dharmasatrya/flightfinder/internal/models"
)

type tripadvisorResponse struct {
	Data struct {
		Flights json.RawMessage `json:"flights"`
	} `json:"data"`
}

type tripadvisorFlight struct {
	Segments      []tripadvisorSegment `json:"segments"`
	PurchaseLinks json.RawMessage      `json:"purchaseLinks"`
}

type tripadvisorSegment struct {
	Legs []tripadvisorLeg `json:"legs"`
}

type tripadvisorLeg struct {
	MarketingCarrier       tripadvisorCarrier `json:"marketingCarrier"`
	OriginStationCode      string             `json:"originStationCode"`
	DestinationStationCode string             `json:"destinationStationCode"`
	DepartureDateTime      string             `json:"departureDateTime"`
	ArrivalDateTime        string             `json:"arrivalDateTime"`
	FlightNumber           rawText            `json:"flightNumber"`
}

type tripadvisorCarrier struct {
	DisplayName string `json:"displayName"`
}

type tripadvisorPurchaseLink struct {
	ProviderID string `json:"providerId"`
	URL        string `json:"url"`
	TotalPrice price  `json:"totalPrice"`
}

// price accepts a JSON number or a numeric string.
type price float64

func (p *price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = 0
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		b = []byte(strings.TrimSpace(s))
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected a price, got %s", b)
	}
	f, err := n.Float64()
	if err != nil {
		return err
	}
	*p = price(f)
	return nil
}

// rawText accepts a JSON string or number and keeps its text as sent.
type rawText string

func (t *rawText) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = rawText(s)
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*t = rawText(n.String())
	}
	return nil
}

// Project maps a searchFlights response body onto flight summaries. A missing
// or malformed data.flights list yields an empty result. A flight without a
// first segment or first leg fails the whole projection with ErrMissingField.
func Project(body []byte) ([]models.FlightSummary, error) {
	var resp tripadvisorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return []models.FlightSummary{}, nil
	}

	var rawFlights []json.RawMessage
	if len(resp.Data.Flights) == 0 || json.Unmarshal(resp.Data.Flights, &rawFlights) != nil {
		return []models.FlightSummary{}, nil
	}

	summaries := make([]models.FlightSummary, 0, len(rawFlights))
	for i, raw := range rawFlights {
		var f tripadvisorFlight
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, &MissingFieldError{Flight: i, Field: "flight", Err: err}
		}

		summary, err := projectFlight(i, f)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return summaries, nil
}

func projectFlight(index int, f tripadvisorFlight) (models.FlightSummary, error) {
	if len(f.Segments) == 0 {
		return models.FlightSummary{}, &MissingFieldError{Flight: index, Field: "segments[0]"}
	}
	if len(f.Segments[0].Legs) == 0 {
		return models.FlightSummary{}, &MissingFieldError{Flight: index, Field: "segments[0].legs[0]"}
	}
	leg := f.Segments[0].Legs[0]

	options := purchaseOptions(f.PurchaseLinks)

	return models.FlightSummary{
		CarrierName:       leg.MarketingCarrier.DisplayName,
		OriginCode:        leg.OriginStationCode,
		DestinationCode:   leg.DestinationStationCode,
		DepartureDateTime: leg.DepartureDateTime,
		ArrivalDateTime:   leg.ArrivalDateTime,
		FlightNumber:      string(leg.FlightNumber),
		PurchaseOptions:   options,
	}, nil
}

// purchaseOptions never fails: a purchaseLinks value that is not a list
// yields no options, and links that do not decode are skipped.
func purchaseOptions(raw json.RawMessage) []models.PurchaseOption {
	options := []models.PurchaseOption{}

	var links []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &links) != nil {
		return options
	}

	for _, rawLink := range links {
		var link *tripadvisorPurchaseLink
		if err := json.Unmarshal(rawLink, &link); err != nil || link == nil {
			continue
		}
		options = append(options, models.PurchaseOption{
			ProviderID: link.ProviderID,
			URL:        link.URL,
			TotalPrice: float64(link.TotalPrice),
			Currency:   models.CurrencyINR,
		})
	}
	return options
}
