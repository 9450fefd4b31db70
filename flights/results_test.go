package flights

import (
	"encoding/json"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{90, "1h 30m"},
		{45, "0h 45m"},
		{125, "2h 5m"},
		{0, "0h 0m"},
		{60, "1h 0m"},
		{1390, "23h 10m"},
		{719, "11h 59m"},
		{1390.0, "23h 10m"},
		{90.4, "1h 30m"},
		{90.6, "1h 31m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.minutes), "minutes=%v", tt.minutes)
	}
}

func TestCheapestFixedDetails_FloatDuration(t *testing.T) {
	body := `{
	  "itineraries": [{"legs": [
	    {"departureTime": "2026-12-01T18:05:00", "arrivalTime": "2026-12-03T01:15:00", "duration": 1390.0,
	     "flightSegments": [{"carrierCode": "AA"}]},
	    {"departureTime": "2027-01-05T03:40:00", "arrivalTime": "2027-01-05T16:20:00", "duration": 1480.0,
	     "flightSegments": [{"carrierCode": "BA"}]}
	  ]}],
	  "summaryInfo": {"cheapestItinerary": {"price": 512.3}},
	  "lowFares": []
	}`
	resp, err := decodeSearchResponse([]byte(body))
	require.NoError(t, err)

	details, err := resp.CheapestFixedDetails()
	require.NoError(t, err)
	assert.Equal(t, "23h 10m", details.OnwardDuration)
	assert.Equal(t, "24h 40m", details.ReturnDuration)
}

func TestCheapestFixedPrice(t *testing.T) {
	resp, err := decodeSearchResponse([]byte(sampleSearchBody))
	require.NoError(t, err)

	price, err := resp.CheapestFixedPrice()
	require.NoError(t, err)
	assert.Equal(t, "$512.3", price)
}

func TestCheapestFixedPrice_Missing(t *testing.T) {
	resp := &SearchResponse{}
	_, err := resp.CheapestFixedPrice()
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestCheapestFixedDetails(t *testing.T) {
	resp, err := decodeSearchResponse([]byte(sampleSearchBody))
	require.NoError(t, err)

	details, err := resp.CheapestFixedDetails()
	require.NoError(t, err)

	want := FixedDateDetails{
		OnwardDeparture: "2026-12-01T18:05:00",
		OnwardArrival:   "2026-12-03T01:15:00",
		ReturnDeparture: "2027-01-05T03:40:00",
		ReturnArrival:   "2027-01-05T16:20:00",
		OnwardDuration:  "23h 10m",
		ReturnDuration:  "24h 40m",
		OnwardCarriers:  []string{"AA", "BA"},
		ReturnCarriers:  []string{"BA", "AA"},
	}
	if diff := deep.Equal(details, want); diff != nil {
		t.Error(diff)
	}
}

func TestCheapestFixedDetails_Errors(t *testing.T) {
	_, err := (&SearchResponse{}).CheapestFixedDetails()
	assert.ErrorIs(t, err, ErrNoItineraries)

	oneLeg := &SearchResponse{Itineraries: []Itinerary{{Legs: []Leg{{Duration: 30}}}}}
	_, err = oneLeg.CheapestFixedDetails()
	assert.ErrorIs(t, err, ErrMissingLegs)
}

func TestTopFlexibleDeals(t *testing.T) {
	resp, err := decodeSearchResponse([]byte(sampleSearchBody))
	require.NoError(t, err)

	deals := resp.TopFlexibleDeals(5)
	want := []FlexibleDeal{
		{Price: "$455.5", Outbound: "2026-11-29", Inbound: "2027-01-04"},
		{Price: "$498", Outbound: "2026-11-30", Inbound: "2027-01-05"},
		{Price: "$702", Outbound: "2026-12-03", Inbound: "2027-01-06"},
	}
	if diff := deep.Equal(deals, want); diff != nil {
		t.Error(diff)
	}

	// the response itself stays in service order
	assert.Equal(t, json.Number("702"), resp.LowFares[0].Total)
}

func TestTopFlexibleDeals_Truncates(t *testing.T) {
	var fares []LowFare
	for _, total := range []string{"900", "100", "700", "300", "500", "200", "800"} {
		fares = append(fares, LowFare{Total: json.Number(total), Dates: LowFareDates{
			Outbound: "2023-05-01T14:30:00Z",
			Inbound:  "2023-05-09T08:00:00Z",
		}})
	}
	resp := &SearchResponse{LowFares: fares}

	deals := resp.TopFlexibleDeals(5)
	require.Len(t, deals, 5)

	var prices []string
	for _, d := range deals {
		prices = append(prices, d.Price)
		assert.Equal(t, "2023-05-01", d.Outbound)
		assert.Equal(t, "2023-05-09", d.Inbound)
	}
	assert.Equal(t, []string{"$100", "$200", "$300", "$500", "$700"}, prices)

	assert.Empty(t, resp.TopFlexibleDeals(0))
	assert.Empty(t, (&SearchResponse{}).TopFlexibleDeals(5))
}

func TestTopFlexibleDeals_StableOnTies(t *testing.T) {
	resp := &SearchResponse{LowFares: []LowFare{
		{Total: "300", Dates: LowFareDates{Outbound: "2026-01-02", Inbound: "2026-01-09"}},
		{Total: "300", Dates: LowFareDates{Outbound: "2026-01-01", Inbound: "2026-01-08"}},
		{Total: "bogus", Dates: LowFareDates{Outbound: "2026-01-03", Inbound: "2026-01-10"}},
		{Total: "250", Dates: LowFareDates{Outbound: "2026-01-04", Inbound: "2026-01-11"}},
	}}

	deals := resp.TopFlexibleDeals(4)
	require.Len(t, deals, 4)
	assert.Equal(t, "2026-01-04", deals[0].Outbound)
	assert.Equal(t, "2026-01-02", deals[1].Outbound)
	assert.Equal(t, "2026-01-01", deals[2].Outbound)
	assert.Equal(t, "$bogus", deals[3].Price)
}

func TestDatePart(t *testing.T) {
	assert.Equal(t, "2023-05-01", datePart("2023-05-01T14:30:00Z"))
	assert.Equal(t, "2023-05", datePart("2023-05"))
}

func TestLegCarriers(t *testing.T) {
	leg := Leg{FlightSegments: []Segment{{CarrierCode: "AA"}, {CarrierCode: "DL"}}}
	assert.Equal(t, []string{"AA", "DL"}, leg.Carriers())
	assert.Empty(t, Leg{}.Carriers())
}

func TestCookiesHeader(t *testing.T) {
	c := Cookies{"JSESSIONID": "abc", "AWSALB": "x=y"}
	assert.Equal(t, "AWSALB=x=y; JSESSIONID=abc", c.Header())
	assert.Equal(t, "", Cookies{}.Header())
}
