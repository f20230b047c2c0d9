package spacex

import (
	launchcast "github.com/reoring/launchcast"
	d "github.com/reoring/launchcast/dsl"
)

// Schema names in Registry.
const (
	SchemaLaunchPage    = "LaunchPage"
	SchemaLaunch        = "Launch"
	SchemaCore          = "Core"
	SchemaFailure       = "Failure"
	SchemaFairings      = "Fairings"
	SchemaLinks         = "Links"
	SchemaFlickr        = "Flickr"
	SchemaPatch         = "Patch"
	SchemaReddit        = "Reddit"
	SchemaDatePrecision = "DatePrecision"
	SchemaLaunchpad     = "Launchpad"
	SchemaRocket        = "Rocket"
)

// Registry describes the v5 launch API. Internal keys are the field names of
// the types in this package.
var Registry = launchcast.MustRegistry("spacex/v5", map[string]launchcast.Descriptor{
	SchemaLaunchPage: d.Object().
		Field("docs", d.Array(d.Ref(SchemaLaunch))).As("Docs").
		Field("totalDocs", d.Number()).As("TotalDocs").
		Field("offset", d.Number()).As("Offset").
		Field("limit", d.Number()).As("Limit").
		Field("totalPages", d.Number()).As("TotalPages").
		Field("page", d.Number()).As("Page").
		Field("pagingCounter", d.Number()).As("PagingCounter").
		Field("hasPrevPage", d.Bool()).As("HasPrevPage").
		Field("hasNextPage", d.Bool()).As("HasNextPage").
		Field("prevPage", d.Union(d.Number(), d.Null())).As("PrevPage").
		Field("nextPage", d.Union(d.Number(), d.Null())).As("NextPage").
		MustBuild(),

	SchemaLaunch: d.Object().
		Field("fairings", d.Union(d.Ref(SchemaFairings), d.Null())).As("Fairings").
		Field("links", d.Ref(SchemaLinks)).As("Links").
		Field("static_fire_date_utc", d.Date()).As("StaticFireDateUTC").
		Field("static_fire_date_unix", d.Union(d.Number(), d.Null())).As("StaticFireDateUnix").
		Field("net", d.Bool()).As("Net").
		Field("window", d.Union(d.Number(), d.Null())).As("Window").
		Field("rocket", d.Ref(SchemaRocket)).As("Rocket").
		Field("success", d.Union(d.Bool(), d.Null())).As("Success").
		Field("failures", d.Array(d.Ref(SchemaFailure))).As("Failures").
		Field("details", d.Union(d.Null(), d.String())).As("Details").
		Field("crew", d.Array(d.Any())).As("Crew").
		Field("ships", d.Array(d.String())).As("Ships").
		Field("capsules", d.Array(d.String())).As("Capsules").
		Field("payloads", d.Array(d.String())).As("Payloads").
		Field("launchpad", d.Ref(SchemaLaunchpad)).As("Launchpad").
		Field("flight_number", d.Number()).As("FlightNumber").
		Field("name", d.String()).As("Name").
		Field("date_utc", d.Date()).As("DateUTC").
		Field("date_unix", d.Number()).As("DateUnix").
		Field("date_local", d.String()).As("DateLocal").
		Field("date_precision", d.Ref(SchemaDatePrecision)).As("DatePrecision").
		Field("upcoming", d.Bool()).As("Upcoming").
		Field("cores", d.Array(d.Ref(SchemaCore))).As("Cores").
		Field("auto_update", d.Bool()).As("AutoUpdate").
		Field("tbd", d.Bool()).As("TBD").
		Field("launch_library_id", d.Union(d.Null(), d.String())).As("LaunchLibraryID").
		Field("id", d.String()).As("ID").
		MustBuild(),

	SchemaCore: d.Object().
		Field("core", d.Union(d.String(), d.Null())).As("Core").
		Field("flight", d.Union(d.Number(), d.Null())).As("Flight").
		Field("gridfins", d.Union(d.Bool(), d.Null())).As("Gridfins").
		Field("legs", d.Union(d.Bool(), d.Null())).As("Legs").
		Field("reused", d.Union(d.Bool(), d.Null())).As("Reused").
		Field("landing_attempt", d.Union(d.Bool(), d.Null())).As("LandingAttempt").
		Field("landing_success", d.Union(d.Bool(), d.Null())).As("LandingSuccess").
		Field("landing_type", d.Union(d.Null(), d.String())).As("LandingType").
		Field("landpad", d.Union(d.Null(), d.String())).As("Landpad").
		MustBuild(),

	SchemaFailure: d.Object().
		Field("time", d.Number()).As("Time").
		Field("altitude", d.Union(d.Number(), d.Null())).As("Altitude").
		Field("reason", d.String()).As("Reason").
		MustBuild(),

	SchemaFairings: d.Object().
		Field("reused", d.Union(d.Bool(), d.Null())).As("Reused").
		Field("recovery_attempt", d.Union(d.Bool(), d.Null())).As("RecoveryAttempt").
		Field("recovered", d.Union(d.Bool(), d.Null())).As("Recovered").
		Field("ships", d.Array(d.Any())).As("Ships").
		MustBuild(),

	SchemaLinks: d.Object().
		Field("patch", d.Ref(SchemaPatch)).As("Patch").
		Field("reddit", d.Ref(SchemaReddit)).As("Reddit").
		Field("flickr", d.Ref(SchemaFlickr)).As("Flickr").
		Field("presskit", d.Union(d.Null(), d.String())).As("Presskit").
		Field("webcast", d.Union(d.String(), d.Null())).As("Webcast").
		Field("youtube_id", d.Union(d.String(), d.Null())).As("YoutubeID").
		Field("article", d.Union(d.String(), d.Null())).As("Article").
		Field("wikipedia", d.Union(d.String(), d.Null())).As("Wikipedia").
		MustBuild(),

	SchemaFlickr: d.Object().
		Field("small", d.Array(d.Any())).As("Small").
		Field("original", d.Array(d.Any())).As("Original").
		MustBuild(),

	SchemaPatch: d.Object().
		Field("small", d.Union(d.String(), d.Null())).As("Small").
		Field("large", d.Union(d.String(), d.Null())).As("Large").
		MustBuild(),

	SchemaReddit: d.Object().
		Field("campaign", d.Union(d.Null(), d.String())).As("Campaign").
		Field("launch", d.Union(d.Null(), d.String())).As("Launch").
		Field("media", d.Union(d.Null(), d.String())).As("Media").
		Field("recovery", d.Union(d.Null(), d.String())).As("Recovery").
		MustBuild(),

	SchemaDatePrecision: d.Enum("half", "quarter", "year", "month", "day", "hour"),

	SchemaLaunchpad: d.Enum(
		"5e9e4501f509094ba4566f84",
		"5e9e4502f509092b78566f87",
		"5e9e4502f5090995de566f86",
	),

	SchemaRocket: d.Enum(
		"5e9d0d95eda69955f709d1eb",
		"5e9d0d95eda69973a809d1ec",
	),
})
