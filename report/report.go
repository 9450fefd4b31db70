// Package report renders search results as the plain text lines printed to the terminal
// and pushed to the chat webhook.
package report

import (
	"fmt"
	"strings"

	"github.com/gilby125/su-flight-search/flights"
)

const (
	shortRule = "---------------------------------------------"
	longRule  = "---------------------------------------------------------"
)

func keyValue(key, value string) string {
	return fmt.Sprintf("%-15s%s", key, value)
}

// Fixed is everything the fixed-date block shows.
type Fixed struct {
	Price          string
	Details        flights.FixedDateDetails
	OnwardCarriers []string // display names, or raw codes when unresolved
	ReturnCarriers []string
}

// FlexibleLines renders the top deals block. limit is the N the deals were cut to.
func FlexibleLines(limit int, deals []flights.FlexibleDeal) []string {
	lines := []string{
		fmt.Sprintf("Top %d cheapest deals if you are flexible with dates:", limit),
		shortRule,
	}
	for _, d := range deals {
		lines = append(lines,
			keyValue("Price:", d.Price),
			keyValue("Departure:", d.Outbound),
			keyValue("Return:", d.Inbound),
			shortRule,
		)
	}
	return lines
}

// FixedLines renders the cheapest itinerary on the requested dates.
func FixedLines(f Fixed) []string {
	return []string{
		" ",
		"Cheapest flight price of selected date: " + f.Price,
		longRule,
		"Onward journey :-",
		keyValue("Departure:", f.Details.OnwardDeparture),
		keyValue("Arrival:", f.Details.OnwardArrival),
		longRule,
		"Return journey :-",
		keyValue("Departure:", f.Details.ReturnDeparture),
		keyValue("Arrival:", f.Details.ReturnArrival),
		longRule,
		keyValue("Onward time:", f.Details.OnwardDuration),
		keyValue("Return time:", f.Details.ReturnDuration),
		keyValue("Onward Carriers:", strings.Join(f.OnwardCarriers, ", ")),
		keyValue("Return Carriers:", strings.Join(f.ReturnCarriers, ", ")),
	}
}

// Lines puts the flexible block (if any) before the fixed-date block.
func Lines(fixed Fixed, flexibleLimit int, deals []flights.FlexibleDeal, flexible bool) []string {
	var lines []string
	if flexible {
		lines = append(lines, FlexibleLines(flexibleLimit, deals)...)
	}
	return append(lines, FixedLines(fixed)...)
}
