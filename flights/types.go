package flights

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// TripRequest describes one round trip search. It is not modified after construction.
type TripRequest struct {
	Origin        string // IATA code of the departure city
	Destination   string // IATA code of the arrival city
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // YYYY-MM-DD
	Flexible      bool   // also report the cheapest alternate date pairs
}

func (t TripRequest) String() string {
	return fmt.Sprintf("%s -> %s (%s / %s)", t.Origin, t.Destination, t.DepartureDate, t.ReturnDate)
}

// Cookies maps a session cookie name to its value.
type Cookies map[string]string

// Header renders the cookies as a single Cookie header value with names in sorted order.
func (c Cookies) Header() string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, name+"="+c[name])
	}
	return strings.Join(pairs, "; ")
}

// SearchResponse holds the three parts of the search body this tool reads.
// Itineraries are fixed-date options ordered by price, cheapest first.
// LowFares are flexible-date deals in no particular order.
type SearchResponse struct {
	Itineraries []Itinerary `json:"itineraries"`
	SummaryInfo SummaryInfo `json:"summaryInfo"`
	LowFares    []LowFare   `json:"lowFares"`

	StatusCode int `json:"-"`
}

type Itinerary struct {
	Price json.Number `json:"price,omitempty"`
	Legs  []Leg       `json:"legs"`
}

// Leg is one direction of travel.
type Leg struct {
	DepartureTime  string    `json:"departureTime"`
	ArrivalTime    string    `json:"arrivalTime"`
	Duration       float64   `json:"duration"` // minutes, possibly fractional
	FlightSegments []Segment `json:"flightSegments"`
}

// Carriers returns the carrier code of every segment, in flight order.
func (l Leg) Carriers() []string {
	carriers := make([]string, 0, len(l.FlightSegments))
	for _, seg := range l.FlightSegments {
		carriers = append(carriers, seg.CarrierCode)
	}
	return carriers
}

type Segment struct {
	CarrierCode string `json:"carrierCode"`
}

type SummaryInfo struct {
	CheapestItinerary *CheapestItinerary `json:"cheapestItinerary"`
}

type CheapestItinerary struct {
	Price json.Number `json:"price"`
}

// LowFare is a flexible-date deal: an alternate date pair with its own total price.
type LowFare struct {
	Total json.Number  `json:"total"`
	Dates LowFareDates `json:"dates"`
}

type LowFareDates struct {
	Outbound string `json:"outbound"`
	Inbound  string `json:"inbound"`
}

// FixedDateDetails is the display data of the cheapest itinerary on the requested dates.
type FixedDateDetails struct {
	OnwardDeparture string
	OnwardArrival   string
	ReturnDeparture string
	ReturnArrival   string
	OnwardDuration  string
	ReturnDuration  string
	OnwardCarriers  []string
	ReturnCarriers  []string
}

// FlexibleDeal is a LowFare prepared for display.
type FlexibleDeal struct {
	Price    string
	Outbound string
	Inbound  string
}

func (d FlexibleDeal) String() string {
	return fmt.Sprintf("{%s %s %s}", d.Outbound, d.Inbound, d.Price)
}
