// Package legacy holds the v3 launch model. Fields that the v3 API only ever
// reported as null are declared nullable with the type the field carries on
// other launches.
package legacy

import (
	launchcast "github.com/reoring/launchcast"
	d "github.com/reoring/launchcast/dsl"
)

// Schema names in Registry.
const (
	SchemaLaunch      = "Launch"
	SchemaLaunchSite  = "LaunchSite"
	SchemaLinks       = "Links"
	SchemaRocket      = "Rocket"
	SchemaFairings    = "Fairings"
	SchemaFirstStage  = "FirstStage"
	SchemaCore        = "Core"
	SchemaSecondStage = "SecondStage"
	SchemaPayload     = "Payload"
	SchemaOrbitParams = "OrbitParams"
	SchemaTelemetry   = "Telemetry"
	SchemaTimeline    = "Timeline"
)

var Registry = launchcast.MustRegistry("spacex/v3", map[string]launchcast.Descriptor{
	SchemaLaunch: d.Object().
		Field("flight_number", d.Number()).As("FlightNumber").
		Field("mission_name", d.String()).As("MissionName").
		Field("mission_id", d.Array(d.Any())).As("MissionID").
		Field("launch_year", d.String()).As("LaunchYear").
		Field("launch_date_unix", d.Number()).As("LaunchDateUnix").
		Field("launch_date_utc", d.Date()).As("LaunchDateUTC").
		Field("launch_date_local", d.Date()).As("LaunchDateLocal").
		Field("is_tentative", d.Bool()).As("IsTentative").
		Field("tentative_max_precision", d.String()).As("TentativeMaxPrecision").
		Field("tbd", d.Bool()).As("TBD").
		Field("launch_window", d.Number()).As("LaunchWindow").
		Field("rocket", d.Ref(SchemaRocket)).As("Rocket").
		Field("ships", d.Array(d.Any())).As("Ships").
		Field("telemetry", d.Ref(SchemaTelemetry)).As("Telemetry").
		Field("launch_site", d.Ref(SchemaLaunchSite)).As("LaunchSite").
		Field("launch_success", d.Bool()).As("LaunchSuccess").
		Field("links", d.Ref(SchemaLinks)).As("Links").
		Field("details", d.Nullable(d.String())).As("Details").
		Field("upcoming", d.Bool()).As("Upcoming").
		Field("static_fire_date_utc", d.Date()).As("StaticFireDateUTC").
		Field("static_fire_date_unix", d.Nullable(d.Number())).As("StaticFireDateUnix").
		Field("timeline", d.Ref(SchemaTimeline)).As("Timeline").
		Field("crew", d.Nullable(d.Array(d.Any()))).As("Crew").
		MustBuild(),

	SchemaLaunchSite: d.Object().
		Field("site_id", d.String()).As("SiteID").
		Field("site_name", d.String()).As("SiteName").
		Field("site_name_long", d.String()).As("SiteNameLong").
		MustBuild(),

	SchemaLinks: d.Object().
		Field("mission_patch", d.String()).As("MissionPatch").
		Field("mission_patch_small", d.String()).As("MissionPatchSmall").
		Field("reddit_campaign", d.Nullable(d.String())).As("RedditCampaign").
		Field("reddit_launch", d.Nullable(d.String())).As("RedditLaunch").
		Field("reddit_recovery", d.Nullable(d.String())).As("RedditRecovery").
		Field("reddit_media", d.Nullable(d.String())).As("RedditMedia").
		Field("presskit", d.String()).As("Presskit").
		Field("article_link", d.String()).As("ArticleLink").
		Field("wikipedia", d.String()).As("Wikipedia").
		Field("video_link", d.String()).As("VideoLink").
		Field("youtube_id", d.String()).As("YoutubeID").
		Field("flickr_images", d.Array(d.Any())).As("FlickrImages").
		MustBuild(),

	SchemaRocket: d.Object().
		Field("rocket_id", d.String()).As("RocketID").
		Field("rocket_name", d.String()).As("RocketName").
		Field("rocket_type", d.String()).As("RocketType").
		Field("first_stage", d.Ref(SchemaFirstStage)).As("FirstStage").
		Field("second_stage", d.Ref(SchemaSecondStage)).As("SecondStage").
		Field("fairings", d.Ref(SchemaFairings)).As("Fairings").
		MustBuild(),

	SchemaFairings: d.Object().
		Field("reused", d.Bool()).As("Reused").
		Field("recovery_attempt", d.Bool()).As("RecoveryAttempt").
		Field("recovered", d.Bool()).As("Recovered").
		Field("ship", d.Nullable(d.String())).As("Ship").
		MustBuild(),

	SchemaFirstStage: d.Object().
		Field("cores", d.Array(d.Ref(SchemaCore))).As("Cores").
		MustBuild(),

	SchemaCore: d.Object().
		Field("core_serial", d.String()).As("CoreSerial").
		Field("flight", d.Number()).As("Flight").
		Field("block", d.Nullable(d.Number())).As("Block").
		Field("gridfins", d.Bool()).As("Gridfins").
		Field("legs", d.Bool()).As("Legs").
		Field("reused", d.Bool()).As("Reused").
		Field("land_success", d.Nullable(d.Bool())).As("LandSuccess").
		Field("landing_intent", d.Bool()).As("LandingIntent").
		Field("landing_type", d.Nullable(d.String())).As("LandingType").
		Field("landing_vehicle", d.Nullable(d.String())).As("LandingVehicle").
		MustBuild(),

	SchemaSecondStage: d.Object().
		Field("block", d.Number()).As("Block").
		Field("payloads", d.Array(d.Ref(SchemaPayload))).As("Payloads").
		MustBuild(),

	SchemaPayload: d.Object().
		Field("payload_id", d.String()).As("PayloadID").
		Field("norad_id", d.Array(d.Number())).As("NoradID").
		Field("reused", d.Bool()).As("Reused").
		Field("customers", d.Array(d.String())).As("Customers").
		Field("nationality", d.String()).As("Nationality").
		Field("manufacturer", d.String()).As("Manufacturer").
		Field("payload_type", d.String()).As("PayloadType").
		Field("payload_mass_kg", d.Number()).As("PayloadMassKg").
		Field("payload_mass_lbs", d.Number()).As("PayloadMassLbs").
		Field("orbit", d.String()).As("Orbit").
		Field("orbit_params", d.Ref(SchemaOrbitParams)).As("OrbitParams").
		MustBuild(),

	SchemaOrbitParams: d.Object().
		Field("reference_system", d.String()).As("ReferenceSystem").
		Field("regime", d.String()).As("Regime").
		Field("longitude", d.Nullable(d.Number())).As("Longitude").
		Field("semi_major_axis_km", d.Number()).As("SemiMajorAxisKm").
		Field("eccentricity", d.Number()).As("Eccentricity").
		Field("periapsis_km", d.Number()).As("PeriapsisKm").
		Field("apoapsis_km", d.Number()).As("ApoapsisKm").
		Field("inclination_deg", d.Number()).As("InclinationDeg").
		Field("period_min", d.Number()).As("PeriodMin").
		Field("lifespan_years", d.Nullable(d.Number())).As("LifespanYears").
		Field("epoch", d.Date()).As("Epoch").
		Field("mean_motion", d.Number()).As("MeanMotion").
		Field("raan", d.Number()).As("Raan").
		Field("arg_of_pericenter", d.Number()).As("ArgOfPericenter").
		Field("mean_anomaly", d.Number()).As("MeanAnomaly").
		MustBuild(),

	SchemaTelemetry: d.Object().
		Field("flight_club", d.Nullable(d.String())).As("FlightClub").
		MustBuild(),

	SchemaTimeline: d.Object().
		Field("webcast_liftoff", d.Number()).As("WebcastLiftoff").
		MustBuild(),
})
