package dsl_test

import (
	"testing"

	launchcast "github.com/reoring/launchcast"
	d "github.com/reoring/launchcast/dsl"
)

func TestObject_AsRenamesInternalKey(t *testing.T) {
	obj, err := d.Object().
		Field("flight_number", d.Number()).As("FlightNumber").
		Field("name", d.String()).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fs := obj.Fields()
	if len(fs) != 2 {
		t.Fatalf("fields: %+v", fs)
	}
	if fs[0].External != "flight_number" || fs[0].Internal != "FlightNumber" {
		t.Fatalf("renamed field: %+v", fs[0])
	}
	if fs[1].External != "name" || fs[1].Internal != "name" {
		t.Fatalf("default internal key: %+v", fs[1])
	}

	out, err := launchcast.Cast(map[string]any{"flight_number": 7.0, "name": "x"}, obj, launchcast.ToInternal)
	if err != nil {
		t.Fatalf("cast: %v", err)
	}
	if out.(map[string]any)["FlightNumber"] != 7.0 {
		t.Fatalf("internal map: %v", out)
	}
}

func TestObject_DuplicateKeys(t *testing.T) {
	if _, err := d.Object().Field("a", d.String()).Field("a", d.Number()).Build(); err == nil {
		t.Fatalf("expected duplicate external key error")
	}
	if _, err := d.Object().
		Field("a", d.String()).As("X").
		Field("b", d.String()).As("X").
		Build(); err == nil {
		t.Fatalf("expected duplicate internal key error")
	}
}

func TestObject_MustBuildPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	d.Object().Field("a", nil).MustBuild()
}

func TestObject_AdditionalAndStrict(t *testing.T) {
	loose := d.Object().Field("a", d.String()).Additional(d.Number()).MustBuild()
	if _, ok := loose.Additional().(launchcast.Primitive); !ok {
		t.Fatalf("additional: %#v", loose.Additional())
	}
	strict := d.Object().Additional(d.Any()).UnknownStrict().MustBuild()
	if strict.Additional() != nil {
		t.Fatalf("UnknownStrict should clear additional")
	}
}

func TestNullable_OrderAndDescription(t *testing.T) {
	u, ok := d.Nullable(d.String()).(launchcast.Union)
	if !ok || len(u.Members) != 2 {
		t.Fatalf("nullable: %#v", u)
	}
	if _, ok := u.Members[1].(launchcast.Null); !ok {
		t.Fatalf("null should be tried last: %#v", u.Members)
	}
	_, err := launchcast.Cast(1.0, u, launchcast.ToInternal)
	sm, ok := launchcast.AsShapeMismatch(err)
	if !ok || sm.Expected != "optional string" {
		t.Fatalf("expected optional string, got %v", err)
	}
}

func TestEnum_CopiesValues(t *testing.T) {
	vals := []string{"hour"}
	e := d.Enum(vals...).(launchcast.Enum)
	vals[0] = "day"
	if !e.Contains("hour") || e.Contains("day") {
		t.Fatalf("enum must not alias caller slice: %v", e.Values)
	}
}
