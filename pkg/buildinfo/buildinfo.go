package buildinfo

// These are intended to be set via -ldflags at build time.
// Example:
// go build -ldflags "-X github.com/gilby125/su-flight-search/pkg/buildinfo.Version=1.2 -X github.com/gilby125/su-flight-search/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
var (
	Name    = "su-flight-search"
	Version = "1.1"
	Commit  = "unknown"
)

// String is what --version prints.
func String() string {
	if Commit == "unknown" || Commit == "" {
		return Name + " " + Version
	}
	return Name + " " + Version + " (" + Commit + ")"
}
