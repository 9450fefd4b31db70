package flights

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-retryablehttp"
	jsoniter "github.com/json-iterator/go"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

const searchStartTimeLayout = "2006-01-02T15:04:05"

// StatusError is returned by Search when the site answers with anything but 200.
// The response body is not decoded in that case.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search returned status %d", e.StatusCode)
}

type tripElement struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	DateTime    string `json:"dateTime"`
}

type searchPayload struct {
	TripElements       []tripElement `json:"tripElements"`
	NumberOfPassengers string        `json:"numberOfPassengers"`
	Details            string        `json:"details"`
	SearchStartTime    string        `json:"searchStartTime"`
	Source             string        `json:"source"`
	SearchKey          string        `json:"searchKey"`
}

func (c *Client) searchPayload(trip TripRequest) searchPayload {
	return searchPayload{
		TripElements: []tripElement{
			{Origin: trip.Origin, Destination: trip.Destination, DateTime: trip.DepartureDate + "T00:00:00"},
			{Origin: trip.Destination, Destination: trip.Origin, DateTime: trip.ReturnDate + "T00:00:00"},
		},
		NumberOfPassengers: "1",
		Details:            "false",
		SearchStartTime:    c.now().Format(searchStartTimeLayout),
		Source:             "urlSearch",
		SearchKey:          "null",
	}
}

// searchField is one top-level key of the search response.
type searchField struct {
	name     string
	nullable bool
	dst      interface{}
}

// decodeSearchResponse requires every top-level key to be present. Only lowFares may be
// null, which reads as no flexible deals.
func decodeSearchResponse(body []byte) (*SearchResponse, error) {
	var raw map[string]jsoniter.RawMessage
	if err := jsonAPI.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	resp := &SearchResponse{}
	fields := []searchField{
		{name: "itineraries", dst: &resp.Itineraries},
		{name: "summaryInfo", dst: &resp.SummaryInfo},
		{name: "lowFares", nullable: true, dst: &resp.LowFares},
	}
	for _, f := range fields {
		msg, ok := raw[f.name]
		if !ok {
			return nil, fmt.Errorf("%w: %s is missing", ErrMalformedResponse, f.name)
		}
		if isNull(msg) {
			if f.nullable {
				continue
			}
			return nil, fmt.Errorf("%w: %s is null", ErrMalformedResponse, f.name)
		}
		if err := jsonAPI.Unmarshal(msg, f.dst); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, f.name, err)
		}
	}
	return resp, nil
}

func isNull(msg jsoniter.RawMessage) bool {
	return len(msg) == 0 || string(bytes.TrimSpace(msg)) == "null"
}

// Search runs one round trip search with the given session cookies.
//
// A non-200 answer is reported as *StatusError without reading the body's fields.
func (c *Client) Search(ctx context.Context, trip TripRequest, cookies Cookies) (*SearchResponse, error) {
	payload, err := jsonAPI.Marshal(c.searchPayload(trip))
	if err != nil {
		return nil, fmt.Errorf("search: marshal payload: %w", err)
	}

	// A []byte body lets the transport compute Content-Length from the real payload.
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.searchEndpoint, payload)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	req.Header = c.searchHeaders.Clone()
	if len(cookies) > 0 {
		req.Header.Set("Cookie", cookies.Header())
	}

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: err sending request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("search: read body: %w", err)
	}

	resp, err := decodeSearchResponse(body)
	if err != nil {
		return nil, err
	}
	resp.StatusCode = res.StatusCode
	return resp, nil
}
