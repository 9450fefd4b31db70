package flights

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

var runIntegrationTests = os.Getenv("ENABLE_INTEGRATION_TESTS") == "1"

func skipUnlessIntegration(t *testing.T) {
	if !runIntegrationTests {
		t.Skip("set ENABLE_INTEGRATION_TESTS=1 to run live StudentUniverse integration tests")
	}
}

func newTestClient(t *testing.T, handler http.Handler, opts ...ClientOption) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]ClientOption{WithBaseURL(srv.URL)}, opts...)
	c := NewClient(opts...)
	c.now = func() time.Time { return time.Date(2026, 10, 17, 9, 30, 15, 0, time.UTC) }
	return c, srv
}

const sampleSearchBody = `{
  "itineraries": [
    {"price": 512.3, "legs": [
      {"departureTime": "2026-12-01T18:05:00", "arrivalTime": "2026-12-03T01:15:00", "duration": 1390,
       "flightSegments": [{"carrierCode": "AA"}, {"carrierCode": "BA"}]},
      {"departureTime": "2027-01-05T03:40:00", "arrivalTime": "2027-01-05T16:20:00", "duration": 1480,
       "flightSegments": [{"carrierCode": "BA"}, {"carrierCode": "AA"}]}
    ]},
    {"price": 640, "legs": []}
  ],
  "summaryInfo": {"cheapestItinerary": {"price": 512.3}},
  "lowFares": [
    {"total": 702, "dates": {"outbound": "2026-12-03T00:00:00", "inbound": "2027-01-06T00:00:00"}},
    {"total": 455.5, "dates": {"outbound": "2026-11-29T00:00:00", "inbound": "2027-01-04T00:00:00"}},
    {"total": 498, "dates": {"outbound": "2026-11-30T00:00:00", "inbound": "2027-01-05T00:00:00"}}
  ]
}`
