package spacex

import (
	"io"
	"time"

	launchcast "github.com/reoring/launchcast"
)

// DatePrecision is the granularity of a launch date.
type DatePrecision string

const (
	PrecisionHalf    DatePrecision = "half"
	PrecisionQuarter DatePrecision = "quarter"
	PrecisionYear    DatePrecision = "year"
	PrecisionMonth   DatePrecision = "month"
	PrecisionDay     DatePrecision = "day"
	PrecisionHour    DatePrecision = "hour"
)

// Launchpad is a launch site id.
type Launchpad string

const (
	LaunchpadCCSFSSLC40 Launchpad = "5e9e4501f509094ba4566f84"
	LaunchpadVAFBSLC4E  Launchpad = "5e9e4502f509092b78566f87"
	LaunchpadKwajalein  Launchpad = "5e9e4502f5090995de566f86"
)

// Rocket is a launch vehicle id.
type Rocket string

const (
	RocketFalcon1 Rocket = "5e9d0d95eda69955f709d1eb"
	RocketFalcon9 Rocket = "5e9d0d95eda69973a809d1ec"
)

// LaunchPage is one page of a /launches/query response.
type LaunchPage struct {
	Docs          []Launch
	TotalDocs     int
	Offset        int
	Limit         int
	TotalPages    int
	Page          int
	PagingCounter int
	HasPrevPage   bool
	HasNextPage   bool
	PrevPage      *int
	NextPage      *int
}

// Launch is a single v5 launch document. Slices must be non-nil when encoding.
type Launch struct {
	Fairings           *Fairings
	Links              Links
	StaticFireDateUTC  *time.Time
	StaticFireDateUnix *int64
	Net                bool
	Window             *int
	Rocket             Rocket
	Success            *bool
	Failures           []Failure
	Details            *string
	Crew               []any
	Ships              []string
	Capsules           []string
	Payloads           []string
	Launchpad          Launchpad
	FlightNumber       int
	Name               string
	DateUTC            time.Time
	DateUnix           int64
	DateLocal          string
	DatePrecision      DatePrecision
	Upcoming           bool
	Cores              []Core
	AutoUpdate         bool
	TBD                bool
	LaunchLibraryID    *string
	ID                 string
}

// Core is one booster flown on a launch.
type Core struct {
	Core           *string
	Flight         *int
	Gridfins       *bool
	Legs           *bool
	Reused         *bool
	LandingAttempt *bool
	LandingSuccess *bool
	LandingType    *string
	Landpad        *string
}

// Failure describes why a launch failed.
type Failure struct {
	Time     int
	Altitude *int
	Reason   string
}

// Fairings reports fairing reuse and recovery.
type Fairings struct {
	Reused          *bool
	RecoveryAttempt *bool
	Recovered       *bool
	Ships           []any
}

// Links groups the media and press links of a launch.
type Links struct {
	Patch     Patch
	Reddit    Reddit
	Flickr    Flickr
	Presskit  *string
	Webcast   *string
	YoutubeID *string
	Article   *string
	Wikipedia *string
}

// Flickr holds photo URLs.
type Flickr struct {
	Small    []any
	Original []any
}

// Patch holds mission patch image URLs.
type Patch struct {
	Small *string
	Large *string
}

// Reddit holds discussion thread URLs.
type Reddit struct {
	Campaign *string
	Launch   *string
	Media    *string
	Recovery *string
}

// ParseLaunch validates a single launch document.
func ParseLaunch(data []byte, opts ...launchcast.ParseOpt) (Launch, error) {
	return launchcast.Unmarshal[Launch](Registry, SchemaLaunch, data, opts...)
}

// ParseLaunchPage validates a /launches/query response.
func ParseLaunchPage(data []byte, opts ...launchcast.ParseOpt) (LaunchPage, error) {
	return launchcast.Unmarshal[LaunchPage](Registry, SchemaLaunchPage, data, opts...)
}

// ReadLaunch is ParseLaunch over a reader.
func ReadLaunch(r io.Reader, opts ...launchcast.ParseOpt) (Launch, error) {
	return launchcast.UnmarshalReader[Launch](Registry, SchemaLaunch, r, opts...)
}

// ReadLaunchPage is ParseLaunchPage over a reader.
func ReadLaunchPage(r io.Reader, opts ...launchcast.ParseOpt) (LaunchPage, error) {
	return launchcast.UnmarshalReader[LaunchPage](Registry, SchemaLaunchPage, r, opts...)
}

// EncodeLaunch renders l as JSON in the API's shape.
func EncodeLaunch(l Launch) ([]byte, error) {
	return launchcast.Marshal(Registry, SchemaLaunch, l)
}

// EncodeLaunchPage renders p as JSON in the API's shape.
func EncodeLaunchPage(p LaunchPage) ([]byte, error) {
	return launchcast.Marshal(Registry, SchemaLaunchPage, p)
}
