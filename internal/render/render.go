// Package render turns flight summaries into the text shown by the CLI and
// the TUI.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dharmasatrya/flightfinder/internal/models"
	"github.com/dharmasatrya/flightfinder/internal/timestamp"
	"github.com/dharmasatrya/flightfinder/pkg/currency"
)

const EmptyMessage = "No flight results yet. Please perform a search."

type Field struct {
	Label string
	Value string
}

// Fields lists the display lines of one summary in order. Duration is only
// present when both timestamps parse.
func Fields(f models.FlightSummary) []Field {
	fields := []Field{
		{"Airline", f.CarrierName},
		{"Departure", f.OriginCode},
		{"Destination", f.DestinationCode},
		{"Departure Time", f.DepartureDateTime},
		{"Arrival Time", f.ArrivalDateTime},
		{"Flight Number", f.FlightNumber},
	}
	if d, ok := timestamp.FlightDuration(f.DepartureDateTime, f.ArrivalDateTime); ok {
		fields = append(fields, Field{"Duration", timestamp.FormatDuration(d)})
	}
	return fields
}

func Price(o models.PurchaseOption) string {
	return currency.FormatINR(o.TotalPrice)
}

type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Value  lipgloss.Style
	Option lipgloss.Style
	Price  lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
}

// Plain renders without colors, for pipes and tests.
func Plain() Styles {
	s := lipgloss.NewStyle()
	return Styles{Title: s, Label: s, Value: s, Option: s, Price: s, Muted: s, Error: s}
}

func Colored() Styles {
	return NewStyles(lipgloss.DefaultRenderer())
}

// NewStyles builds the colored styles for a specific output. The renderer
// drops colors when that output is not a terminal.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		Label:  r.NewStyle().Foreground(lipgloss.Color("#9CA3AF")),
		Value:  r.NewStyle().Foreground(lipgloss.Color("#F9FAFB")),
		Option: r.NewStyle().Foreground(lipgloss.Color("#60A5FA")),
		Price:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981")),
		Muted:  r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
		Error:  r.NewStyle().Foreground(lipgloss.Color("#EF4444")),
	}
}

// Results renders the whole list, or EmptyMessage when it is empty.
func Results(flights []models.FlightSummary, st Styles) string {
	if len(flights) == 0 {
		return st.Muted.Render(EmptyMessage) + "\n"
	}

	var b strings.Builder
	b.WriteString(st.Title.Render("Flight Results"))
	b.WriteString("\n\n")

	for i, f := range flights {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Flight(f, st))
	}
	return b.String()
}

func Flight(f models.FlightSummary, st Styles) string {
	var b strings.Builder

	for _, field := range Fields(f) {
		b.WriteString(st.Label.Render(field.Label + ":"))
		b.WriteString(" ")
		b.WriteString(st.Value.Render(field.Value))
		b.WriteString("\n")
	}

	if len(f.PurchaseOptions) > 0 {
		b.WriteString(st.Label.Render("Purchase Options:"))
		b.WriteString("\n")
		for _, o := range f.PurchaseOptions {
			fmt.Fprintf(&b, "  - %s %s\n", st.Option.Render(o.ProviderID), st.Muted.Render(o.URL))
			fmt.Fprintf(&b, "    PRICE: %s\n", st.Price.Render(Price(o)))
		}
	}
	return b.String()
}

func Error(msg string, st Styles) string {
	if msg == "" {
		return ""
	}
	return st.Error.Render(msg) + "\n"
}
