package legacy

import (
	"io"
	"time"

	launchcast "github.com/reoring/launchcast"
)

// Launch is a v3 launch document.
type Launch struct {
	FlightNumber          int
	MissionName           string
	MissionID             []any
	LaunchYear            string
	LaunchDateUnix        int64
	LaunchDateUTC         time.Time
	LaunchDateLocal       time.Time
	IsTentative           bool
	TentativeMaxPrecision string
	TBD                   bool
	LaunchWindow          int
	Rocket                Rocket
	Ships                 []any
	Telemetry             Telemetry
	LaunchSite            LaunchSite
	LaunchSuccess         bool
	Links                 Links
	Details               *string
	Upcoming              bool
	StaticFireDateUTC     *time.Time
	StaticFireDateUnix    *int64
	Timeline              Timeline
	Crew                  []any
}

// LaunchSite identifies where a launch took off.
type LaunchSite struct {
	SiteID       string
	SiteName     string
	SiteNameLong string
}

// Links groups the media and press links of a launch.
type Links struct {
	MissionPatch      string
	MissionPatchSmall string
	RedditCampaign    *string
	RedditLaunch      *string
	RedditRecovery    *string
	RedditMedia       *string
	Presskit          string
	ArticleLink       string
	Wikipedia         string
	VideoLink         string
	YoutubeID         string
	FlickrImages      []any
}

// Rocket describes the vehicle and its stages.
type Rocket struct {
	RocketID    string
	RocketName  string
	RocketType  string
	FirstStage  FirstStage
	SecondStage SecondStage
	Fairings    Fairings
}

// Fairings reports fairing reuse and recovery.
type Fairings struct {
	Reused          bool
	RecoveryAttempt bool
	Recovered       bool
	Ship            *string
}

// FirstStage lists the cores of the first stage.
type FirstStage struct {
	Cores []Core
}

// Core is one booster of the first stage.
type Core struct {
	CoreSerial     string
	Flight         int
	Block          *int
	Gridfins       bool
	Legs           bool
	Reused         bool
	LandSuccess    *bool
	LandingIntent  bool
	LandingType    *string
	LandingVehicle *string
}

// SecondStage lists the payloads carried by the second stage.
type SecondStage struct {
	Block    int
	Payloads []Payload
}

// Payload is one payload with its customers and orbit.
type Payload struct {
	PayloadID      string
	NoradID        []int
	Reused         bool
	Customers      []string
	Nationality    string
	Manufacturer   string
	PayloadType    string
	PayloadMassKg  float64
	PayloadMassLbs float64
	Orbit          string
	OrbitParams    OrbitParams
}

// OrbitParams are the orbital elements of a payload.
type OrbitParams struct {
	ReferenceSystem string
	Regime          string
	Longitude       *float64
	SemiMajorAxisKm float64
	Eccentricity    float64
	PeriapsisKm     float64
	ApoapsisKm      float64
	InclinationDeg  float64
	PeriodMin       float64
	LifespanYears   *float64
	Epoch           time.Time
	MeanMotion      float64
	Raan            float64
	ArgOfPericenter float64
	MeanAnomaly     float64
}

// Telemetry points at the flight club simulation.
type Telemetry struct {
	FlightClub *string
}

// Timeline holds event offsets in seconds from liftoff.
type Timeline struct {
	WebcastLiftoff int
}

// ParseLaunch validates a v3 launch document.
func ParseLaunch(data []byte, opts ...launchcast.ParseOpt) (Launch, error) {
	return launchcast.Unmarshal[Launch](Registry, SchemaLaunch, data, opts...)
}

// ReadLaunch is ParseLaunch over a reader.
func ReadLaunch(r io.Reader, opts ...launchcast.ParseOpt) (Launch, error) {
	return launchcast.UnmarshalReader[Launch](Registry, SchemaLaunch, r, opts...)
}

// EncodeLaunch renders l as JSON in the v3 shape.
func EncodeLaunch(l Launch) ([]byte, error) {
	return launchcast.Marshal(Registry, SchemaLaunch, l)
}
