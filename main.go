package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	_ "github.com/browserutils/kooky/browser/all"
	"github.com/gilby125/su-flight-search/airlines"
	"github.com/gilby125/su-flight-search/config"
	"github.com/gilby125/su-flight-search/flights"
	"github.com/gilby125/su-flight-search/pkg/buildinfo"
	"github.com/gilby125/su-flight-search/pkg/logger"
	"github.com/gilby125/su-flight-search/pkg/notify"
	"github.com/gilby125/su-flight-search/report"
	"github.com/google/uuid"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errMissingDates = errors.New("missing required dates")

type options struct {
	source      string
	destination string
	leave       string
	returnDate  string
	flexible    bool
	debug       bool
	notify      bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("su-flight-search", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.source, "s", "BOS", "Airport code of departure city")
	fs.StringVar(&opts.source, "source", "BOS", "Airport code of departure city")
	fs.StringVar(&opts.destination, "d", "BLR", "Airport code of destination city")
	fs.StringVar(&opts.destination, "destination", "BLR", "Airport code of destination city")
	fs.StringVar(&opts.leave, "l", "", "Departure date in format YYYY-MM-DD (required)")
	fs.StringVar(&opts.leave, "leave", "", "Departure date in format YYYY-MM-DD (required)")
	fs.StringVar(&opts.returnDate, "r", "", "Return date in format YYYY-MM-DD (required)")
	fs.StringVar(&opts.returnDate, "returndate", "", "Return date in format YYYY-MM-DD (required)")
	fs.BoolVar(&opts.flexible, "f", false, "Turn on flexible dates")
	fs.BoolVar(&opts.debug, "D", false, "Turn on debugging")
	fs.BoolVar(&opts.notify, "n", false, "Push the results to the configured Slack webhook")
	fs.BoolVar(&opts.version, "version", false, "Print the version and exit")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.version {
		return opts, nil
	}
	if opts.leave == "" || opts.returnDate == "" {
		fmt.Fprintln(stderr, "the following arguments are required: -l/--leave, -r/--returndate")
		fs.Usage()
		return opts, errMissingDates
	}
	return opts, nil
}

func loadAirlines(path string) (*airlines.Table, error) {
	if path == "" {
		return airlines.Default()
	}
	return airlines.LoadFile(path)
}

// carrierNames falls back to the raw codes when the table lacks one of them.
func carrierNames(log *logger.Logger, table *airlines.Table, leg string, codes []string) []string {
	names, err := table.Resolve(codes)
	if err != nil {
		log.Warn("could not resolve carrier names, showing codes", "leg", leg, "codes", codes, "error", err)
		return codes
	}
	return names
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		return exitUsage
	}
	if opts.version {
		fmt.Fprintln(stdout, buildinfo.String())
		return exitOK
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load configuration: %v\n", err)
		return exitError
	}

	level := cfg.LoggingConfig.Level
	if opts.debug {
		level = "debug"
	}
	baseLog := logger.New(logger.Config{Level: level, Format: cfg.LoggingConfig.Format, Output: stderr})
	log := baseLog.WithFields(map[string]interface{}{
		"search_id":   uuid.New().String(),
		"origin":      opts.source,
		"destination": opts.destination,
	})

	table, err := loadAirlines(cfg.SearchConfig.AirlineCodesFile)
	if err != nil {
		log.Error(err, "Failed to load airline codes", "file", cfg.SearchConfig.AirlineCodesFile)
		return exitError
	}

	clientOpts := []flights.ClientOption{
		flights.WithBaseURL(cfg.SearchConfig.BaseURL),
		flights.WithSearchEndpoint(cfg.SearchConfig.SearchEndpoint),
		flights.WithLandingHeaders(flights.DefaultLandingHeaders(cfg.SearchConfig.UserAgent)),
		flights.WithSearchHeaders(flights.DefaultSearchHeaders(cfg.SearchConfig.UserAgent, cfg.SearchConfig.BaseURL)),
		flights.WithTimeout(cfg.SearchConfig.Timeout),
		flights.WithBrowserCookies(cfg.SearchConfig.BrowserCookies),
	}
	if opts.debug {
		clientOpts = append(clientOpts, flights.WithLogger(log.Slog()))
	}
	client := flights.NewClient(clientOpts...)

	trip := flights.TripRequest{
		Origin:        opts.source,
		Destination:   opts.destination,
		DepartureDate: opts.leave,
		ReturnDate:    opts.returnDate,
		Flexible:      opts.flexible,
	}
	log = log.WithField("trip", trip.String())

	cookies, err := client.FetchSession(ctx)
	if err != nil {
		log.Error(err, "Failed to open a session")
		return exitError
	}
	log.Debug("session opened", "cookies", len(cookies))

	resp, err := client.Search(ctx, trip, cookies)
	var statusErr *flights.StatusError
	if errors.As(err, &statusErr) {
		fmt.Fprintln(stdout, "Unable to fetch response")
		fmt.Fprintf(stdout, "Response code: %d\n", statusErr.StatusCode)
		return exitError
	}
	if err != nil {
		log.Error(err, "Search failed")
		return exitError
	}

	log.Info("search complete", "itineraries", len(resp.Itineraries), "low_fares", len(resp.LowFares))
	if len(resp.Itineraries) > 0 && resp.Itineraries[0].Price != "" {
		log.Debug("first itinerary", "price", resp.Itineraries[0].Price.String())
	}

	price, err := resp.CheapestFixedPrice()
	if err != nil {
		log.Error(err, "Search response has no cheapest price")
		return exitError
	}
	details, err := resp.CheapestFixedDetails()
	if err != nil {
		log.Error(err, "Search response has no usable itinerary")
		return exitError
	}

	var deals []flights.FlexibleDeal
	if trip.Flexible {
		deals = resp.TopFlexibleDeals(cfg.SearchConfig.TopNDeals)
	}

	lines := report.Lines(report.Fixed{
		Price:          price,
		Details:        details,
		OnwardCarriers: carrierNames(log, table, "onward", details.OnwardCarriers),
		ReturnCarriers: carrierNames(log, table, "return", details.ReturnCarriers),
	}, cfg.SearchConfig.TopNDeals, deals, trip.Flexible)

	fmt.Fprintln(stdout, strings.Join(lines, "\n"))

	if opts.notify || cfg.SlackConfig.Enabled {
		slack := notify.NewSlackClient(notify.SlackConfig{
			WebhookURL: cfg.SlackConfig.WebhookURL,
			Username:   cfg.SlackConfig.Username,
			Channel:    cfg.SlackConfig.Channel,
			Enabled:    true,
		})
		if err := slack.Push(ctx, lines); err != nil {
			fmt.Fprintln(stdout, "Encountered an error while pushing to slack")
			log.Error(err, "Slack push failed")
			return exitError
		}
		fmt.Fprintln(stdout, "Successfully pushed to SLACK")
	}

	return exitOK
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
