package flights

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrMalformedResponse = errors.New("malformed search response")
	ErrNoItineraries     = errors.New("search returned no fixed-date itineraries")
	ErrMissingLegs       = errors.New("cheapest itinerary does not have an onward and a return leg")
)

// CheapestFixedPrice returns the price of the cheapest itinerary on the requested dates, e.g. "$512.3".
func (r *SearchResponse) CheapestFixedPrice() (string, error) {
	if r.SummaryInfo.CheapestItinerary == nil || r.SummaryInfo.CheapestItinerary.Price == "" {
		return "", fmt.Errorf("%w: summaryInfo.cheapestItinerary.price is missing", ErrMalformedResponse)
	}
	return "$" + r.SummaryInfo.CheapestItinerary.Price.String(), nil
}

// CheapestFixedDetails extracts both legs of itineraries[0].
func (r *SearchResponse) CheapestFixedDetails() (FixedDateDetails, error) {
	if len(r.Itineraries) == 0 {
		return FixedDateDetails{}, ErrNoItineraries
	}
	legs := r.Itineraries[0].Legs
	if len(legs) < 2 {
		return FixedDateDetails{}, fmt.Errorf("%w: got %d", ErrMissingLegs, len(legs))
	}
	onward, back := legs[0], legs[1]

	return FixedDateDetails{
		OnwardDeparture: onward.DepartureTime,
		OnwardArrival:   onward.ArrivalTime,
		ReturnDeparture: back.DepartureTime,
		ReturnArrival:   back.ArrivalTime,
		OnwardDuration:  FormatDuration(onward.Duration),
		ReturnDuration:  FormatDuration(back.Duration),
		OnwardCarriers:  onward.Carriers(),
		ReturnCarriers:  back.Carriers(),
	}, nil
}

// TopFlexibleDeals returns the n cheapest low fares, cheapest first.
// Fares with equal totals keep the order the service sent them in.
func (r *SearchResponse) TopFlexibleDeals(n int) []FlexibleDeal {
	if n <= 0 || len(r.LowFares) == 0 {
		return nil
	}

	fares := make([]LowFare, len(r.LowFares))
	copy(fares, r.LowFares)
	sort.SliceStable(fares, func(i, j int) bool {
		return fareTotal(fares[i]) < fareTotal(fares[j])
	})

	if n > len(fares) {
		n = len(fares)
	}
	deals := make([]FlexibleDeal, 0, n)
	for _, fare := range fares[:n] {
		deals = append(deals, FlexibleDeal{
			Price:    "$" + fare.Total.String(),
			Outbound: datePart(fare.Dates.Outbound),
			Inbound:  datePart(fare.Dates.Inbound),
		})
	}
	return deals
}

// fareTotal sorts unparsable totals last.
func fareTotal(f LowFare) float64 {
	v, err := strconv.ParseFloat(f.Total.String(), 64)
	if err != nil {
		return math.Inf(1)
	}
	return v
}

// datePart keeps the YYYY-MM-DD prefix of an ISO date-time.
func datePart(dateTime string) string {
	if len(dateTime) < 10 {
		return dateTime
	}
	return dateTime[:10]
}

// FormatDuration renders a leg duration given in minutes, e.g. 125 -> "2h 5m".
// Leftover minutes are rounded to the nearest whole minute.
func FormatDuration(minutes float64) string {
	hours := minutes / 60
	wholeHours := math.Floor(hours)
	rest := math.Round((hours - wholeHours) * 60)
	return fmt.Sprintf("%dh %dm", int(wholeHours), int(rest))
}
