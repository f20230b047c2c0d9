package spacex_test

import (
	"bytes"
	"errors"
	"os"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	launchcast "github.com/reoring/launchcast"
	"github.com/reoring/launchcast/spacex"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return b
}

func TestParseLaunch_Fixture(t *testing.T) {
	l, err := spacex.ParseLaunch(readFixture(t, "launch.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Name != "FalconSat" || l.FlightNumber != 1 || l.ID != "5eb87cd9ffd86e000604b32a" {
		t.Fatalf("unexpected launch: %+v", l)
	}
	if l.Rocket != spacex.RocketFalcon1 || l.Launchpad != spacex.LaunchpadKwajalein {
		t.Fatalf("unexpected ids: rocket=%s launchpad=%s", l.Rocket, l.Launchpad)
	}
	if l.DatePrecision != spacex.PrecisionHour {
		t.Fatalf("date precision: %s", l.DatePrecision)
	}
	want := time.Date(2006, 3, 24, 22, 30, 0, 0, time.UTC)
	if !l.DateUTC.Equal(want) {
		t.Fatalf("date_utc: got %v want %v", l.DateUTC, want)
	}
	if l.StaticFireDateUTC == nil || l.StaticFireDateUTC.Year() != 2006 {
		t.Fatalf("static fire date: %v", l.StaticFireDateUTC)
	}
	if l.StaticFireDateUnix == nil || *l.StaticFireDateUnix != 1142553600 {
		t.Fatalf("static fire unix: %v", l.StaticFireDateUnix)
	}
	if l.Fairings == nil || l.Fairings.Reused == nil || *l.Fairings.Reused {
		t.Fatalf("fairings: %+v", l.Fairings)
	}
	if len(l.Failures) != 1 || l.Failures[0].Time != 33 || l.Failures[0].Altitude != nil {
		t.Fatalf("failures: %+v", l.Failures)
	}
	if len(l.Cores) != 1 || l.Cores[0].LandingSuccess != nil || *l.Cores[0].Flight != 1 {
		t.Fatalf("cores: %+v", l.Cores)
	}
	if l.Details == nil || l.LaunchLibraryID != nil {
		t.Fatalf("details=%v launch_library_id=%v", l.Details, l.LaunchLibraryID)
	}
	if l.DateLocal != "2006-03-25T10:30:00+12:00" {
		t.Fatalf("date_local must stay verbatim: %q", l.DateLocal)
	}
	if l.Links.YoutubeID == nil || *l.Links.YoutubeID != "0a_00nJ_Y88" {
		t.Fatalf("links: %+v", l.Links)
	}
}

func TestParseLaunchPage_KeepsDocsOrder(t *testing.T) {
	p, err := spacex.ParseLaunchPage(readFixture(t, "launch_page.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.Docs) != 3 {
		t.Fatalf("docs: %d", len(p.Docs))
	}
	for i, want := range []int{1, 2, 3} {
		if p.Docs[i].FlightNumber != want {
			t.Fatalf("docs[%d].flight_number = %d want %d", i, p.Docs[i].FlightNumber, want)
		}
	}
	if p.Docs[1].Fairings != nil {
		t.Fatalf("null fairings should decode to nil: %+v", p.Docs[1].Fairings)
	}
	if p.PrevPage != nil || p.NextPage == nil || *p.NextPage != 2 {
		t.Fatalf("paging: prev=%v next=%v", p.PrevPage, p.NextPage)
	}
	if p.TotalDocs != 205 || !p.HasNextPage || p.HasPrevPage {
		t.Fatalf("unexpected page meta: %+v", p)
	}
}

func TestParseLaunch_TBDWithNulls(t *testing.T) {
	var doc map[string]any
	if err := json.Unmarshal(readFixture(t, "launch.json"), &doc); err != nil {
		t.Fatal(err)
	}
	doc["tbd"] = true
	doc["details"] = nil
	doc["static_fire_date_utc"] = nil
	doc["static_fire_date_unix"] = nil
	if _, err := spacex.Registry.CastNamed(doc, spacex.SchemaLaunch, launchcast.ToInternal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseLaunch_UnknownDatePrecision(t *testing.T) {
	data := bytes.Replace(readFixture(t, "launch.json"), []byte(`"date_precision": "hour"`), []byte(`"date_precision": "week"`), 1)
	_, err := spacex.ParseLaunch(data)
	sm, ok := launchcast.AsShapeMismatch(err)
	if !ok {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	if sm.Code != launchcast.CodeInvalidEnum || sm.Path != "/date_precision" {
		t.Fatalf("unexpected mismatch: %+v", sm)
	}
	if sm.Key != "date_precision" || sm.Parent != spacex.SchemaLaunch {
		t.Fatalf("key/parent: %q %q", sm.Key, sm.Parent)
	}
}

func TestParseLaunch_UnknownKeyRejected(t *testing.T) {
	data := bytes.Replace(readFixture(t, "launch.json"), []byte(`"tbd": false,`), []byte(`"tbd": false, "webcast_date": null,`), 1)
	_, err := spacex.ParseLaunch(data)
	sm, ok := launchcast.AsShapeMismatch(err)
	if !ok || sm.Code != launchcast.CodeUnknownKey || sm.Key != "webcast_date" {
		t.Fatalf("expected unknown_key, got %v", err)
	}
}

func TestParseLaunch_FractionalFlightNumber(t *testing.T) {
	for _, n := range []string{"1.75", "-1e30"} {
		data := bytes.Replace(readFixture(t, "launch.json"), []byte(`"flight_number": 1,`), []byte(`"flight_number": `+n+`,`), 1)
		l, err := spacex.ParseLaunch(data)
		if err == nil {
			t.Fatalf("flight_number %s: expected error, got flight %d", n, l.FlightNumber)
		}
	}
}

func TestParseLaunchPage_BadElementPath(t *testing.T) {
	var page map[string]any
	if err := json.Unmarshal(readFixture(t, "launch_page.json"), &page); err != nil {
		t.Fatal(err)
	}
	docs := page["docs"].([]any)
	docs[2].(map[string]any)["cores"].([]any)[0].(map[string]any)["flight"] = "one"
	data, _ := json.Marshal(page)
	_, err := spacex.ParseLaunchPage(data)
	sm, ok := launchcast.AsShapeMismatch(err)
	if !ok {
		t.Fatalf("expected shape mismatch, got %v", err)
	}
	if sm.Path != "/docs/2/cores/0/flight" || sm.Parent != spacex.SchemaCore {
		t.Fatalf("unexpected mismatch: %+v", sm)
	}
}

func TestParseLaunch_DuplicateKey(t *testing.T) {
	data := bytes.Replace(readFixture(t, "launch.json"), []byte(`"tbd": false,`), []byte(`"tbd": false, "tbd": true,`), 1)
	_, err := spacex.ParseLaunch(data, launchcast.ParseOpt{OnDuplicateKey: launchcast.Error})
	if !errors.Is(err, launchcast.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestEncodeLaunch_RoundTrip(t *testing.T) {
	l, err := spacex.ParseLaunch(readFixture(t, "launch.json"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := spacex.EncodeLaunch(l)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(out, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m["date_utc"] != "2006-03-24T22:30:00.000Z" {
		t.Fatalf("date_utc: %v", m["date_utc"])
	}
	if m["date_local"] != "2006-03-25T10:30:00+12:00" {
		t.Fatalf("date_local: %v", m["date_local"])
	}
	if _, ok := m["DateUTC"]; ok {
		t.Fatalf("internal keys leaked: %v", m)
	}
	again, err := spacex.ParseLaunch(out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if again.ID != l.ID || !again.DateUTC.Equal(l.DateUTC) || again.Links.Patch.Small == nil {
		t.Fatalf("round trip drift: %+v", again)
	}
}

func TestEncodeLaunch_NilSliceRejected(t *testing.T) {
	l, err := spacex.ParseLaunch(readFixture(t, "launch.json"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	l.Ships = nil
	_, err = spacex.EncodeLaunch(l)
	sm, ok := launchcast.AsShapeMismatch(err)
	if !ok || sm.Path != "/Ships" {
		t.Fatalf("expected mismatch at /Ships, got %v", err)
	}
}

func TestReadLaunchPage_MaxBytes(t *testing.T) {
	data := readFixture(t, "launch_page.json")
	_, err := spacex.ReadLaunchPage(bytes.NewReader(data), launchcast.ParseOpt{MaxBytes: 64})
	if !errors.Is(err, launchcast.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := spacex.ReadLaunchPage(bytes.NewReader(data)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRegistry_JSONSchema(t *testing.T) {
	s, err := spacex.Registry.JSONSchema(spacex.SchemaLaunchPage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	launch := s.Defs[spacex.SchemaLaunch]
	if launch == nil || launch.AdditionalProperties != false {
		t.Fatalf("launch def: %+v", launch)
	}
	if _, ok := launch.Properties["date_precision"]; !ok {
		t.Fatalf("external keys expected in properties")
	}
	for _, r := range launch.Required {
		if r == "static_fire_date_utc" || r == "details" {
			t.Fatalf("nullable field %q must not be required", r)
		}
	}
	if got := s.Defs[spacex.SchemaDatePrecision].Enum; len(got) != 6 {
		t.Fatalf("date precision enum: %v", got)
	}
}

func TestModel(t *testing.T) {
	if r, ok := spacex.Model(spacex.ModelV5); !ok || r != spacex.Registry {
		t.Fatalf("v5 registry")
	}
	r, ok := spacex.Model(spacex.ModelV3)
	if !ok || r.Name() != "spacex/v3" {
		t.Fatalf("v3 registry")
	}
	if _, ok := spacex.Model("v4"); ok {
		t.Fatalf("v4 should be unknown")
	}
	if got := spacex.ModelNames(); len(got) != 2 || got[0] != "v3" {
		t.Fatalf("names: %v", got)
	}
}
