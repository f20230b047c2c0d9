package launchcast_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"

	launchcast "github.com/reoring/launchcast"
	d "github.com/reoring/launchcast/dsl"
)

var testReg = launchcast.MustRegistry("parse", map[string]launchcast.Descriptor{
	"Page": d.Object().
		Field("docs", d.Array(d.Ref("Doc"))).As("Docs").
		Field("totalDocs", d.Number()).As("TotalDocs").
		MustBuild(),
	"Doc": d.Object().
		Field("name", d.String()).As("Name").
		Field("date_utc", d.Date()).As("DateUTC").
		MustBuild(),
})

const pageJSON = `{"docs":[{"name":"a","date_utc":"2006-03-24T22:30:00.000Z"},{"name":"b","date_utc":null},{"name":"c"}],"totalDocs":3}`

func TestParseBytes_KeepsOrder(t *testing.T) {
	v, err := launchcast.ParseBytes(testReg, "Page", []byte(pageJSON))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	docs := v.(map[string]any)["Docs"].([]any)
	var names []string
	for _, doc := range docs {
		names = append(names, doc.(map[string]any)["Name"].(string))
	}
	if strings.Join(names, ",") != "a,b,c" {
		t.Fatalf("order: %v", names)
	}
	if _, ok := docs[2].(map[string]any)["DateUTC"]; ok {
		t.Fatalf("absent date should stay absent")
	}
}

func TestParseBytes_SyntaxError(t *testing.T) {
	_, err := launchcast.ParseBytes(testReg, "Page", []byte(`{"docs": [`))
	if err == nil || !strings.Contains(err.Error(), "decode json") {
		t.Fatalf("expected decode error, got %v", err)
	}
	if _, ok := launchcast.AsShapeMismatch(err); ok {
		t.Fatalf("syntax errors are not shape mismatches")
	}
}

func TestParseBytes_DuplicateKeys(t *testing.T) {
	js := []byte(`{"docs":[{"name":"a","name":"b"}],"totalDocs":1}`)

	if _, err := launchcast.ParseBytes(testReg, "Page", js); err != nil {
		t.Fatalf("duplicates are ignored by default: %v", err)
	}

	_, err := launchcast.ParseBytes(testReg, "Page", js, launchcast.ParseOpt{OnDuplicateKey: launchcast.Error})
	if !errors.Is(err, launchcast.ErrDuplicateKey) || !strings.Contains(err.Error(), "/docs/0/name") {
		t.Fatalf("expected duplicate key error, got %v", err)
	}

	var warned []string
	_, err = launchcast.ParseBytes(testReg, "Page", js, launchcast.ParseOpt{
		OnDuplicateKey: launchcast.Warn,
		OnWarn:         func(path, msg string) { warned = append(warned, path) },
	})
	if err != nil {
		t.Fatalf("warn mode must not fail: %v", err)
	}
	if len(warned) != 1 || warned[0] != "/docs/0/name" {
		t.Fatalf("warnings: %v", warned)
	}
}

func TestParseReader_MaxBytes(t *testing.T) {
	_, err := launchcast.ParseReader(testReg, "Page", strings.NewReader(pageJSON), launchcast.ParseOpt{MaxBytes: 10})
	if !errors.Is(err, launchcast.ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, err := launchcast.ParseReader(testReg, "Page", strings.NewReader(pageJSON), launchcast.ParseOpt{MaxBytes: int64(len(pageJSON))}); err != nil {
		t.Fatalf("exact size should pass: %v", err)
	}
}

func TestEncodeJSON_RoundTrip(t *testing.T) {
	v, err := launchcast.ParseBytes(testReg, "Page", []byte(pageJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out, err := launchcast.EncodeJSON(testReg, "Page", v)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var got, want map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if err := json.Unmarshal([]byte(pageJSON), &want); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip changed the document:\n got %v\nwant %v", got, want)
	}
	if strings.Contains(string(out), `"Docs"`) || strings.Contains(string(out), `"DateUTC"`) {
		t.Fatalf("internal keys leaked: %s", out)
	}
}

func TestParseSeverity(t *testing.T) {
	for in, want := range map[string]launchcast.Severity{"ignore": launchcast.Ignore, "warn": launchcast.Warn, "error": launchcast.Error} {
		got, err := launchcast.ParseSeverity(in)
		if err != nil || got != want {
			t.Fatalf("%s: got %v, %v", in, got, err)
		}
	}
	if _, err := launchcast.ParseSeverity("sometimes"); err == nil {
		t.Fatalf("expected error")
	}
}
