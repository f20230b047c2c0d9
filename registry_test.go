package launchcast_test

import (
	"reflect"
	"strings"
	"testing"

	launchcast "github.com/reoring/launchcast"
	d "github.com/reoring/launchcast/dsl"
)

func TestNewRegistry_RejectsDanglingRef(t *testing.T) {
	_, err := launchcast.NewRegistry("bad", map[string]launchcast.Descriptor{
		"Launch": d.Object().Field("cores", d.Array(d.Ref("Core"))).MustBuild(),
	})
	if err == nil || !strings.Contains(err.Error(), `"Core"`) {
		t.Fatalf("expected unknown schema error, got %v", err)
	}
}

func TestNewRegistry_RejectsNonObjectEntries(t *testing.T) {
	_, err := launchcast.NewRegistry("bad", map[string]launchcast.Descriptor{
		"Name": d.String(),
	})
	if err == nil || !strings.Contains(err.Error(), "primitive") {
		t.Fatalf("expected entry kind error, got %v", err)
	}
}

func TestMustRegistry_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	launchcast.MustRegistry("bad", map[string]launchcast.Descriptor{
		"A": d.Object().Field("b", d.Ref("B")).MustBuild(),
	})
}

func TestRegistry_LookupAndNames(t *testing.T) {
	reg := launchcast.MustRegistry("ok", map[string]launchcast.Descriptor{
		"Rocket": d.Enum("falcon9"),
		"Launch": d.Object().
			Field("rocket", d.Ref("Rocket")).
			Field("next", d.Nullable(d.Ref("Launch"))).
			MustBuild(),
	})
	if reg.Name() != "ok" {
		t.Fatalf("name: %s", reg.Name())
	}
	if got := reg.Names(); !reflect.DeepEqual(got, []string{"Launch", "Rocket"}) {
		t.Fatalf("names: %v", got)
	}
	if _, ok := reg.Lookup("Rocket"); !ok {
		t.Fatalf("lookup Rocket")
	}
	if _, ok := reg.Lookup("Core"); ok {
		t.Fatalf("lookup Core should miss")
	}

	// self reference through a nullable field
	in := map[string]any{
		"rocket": "falcon9",
		"next":   map[string]any{"rocket": "falcon9", "next": nil},
	}
	if _, err := reg.CastNamed(in, "Launch", launchcast.ToInternal); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
