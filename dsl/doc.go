// Package dsl provides builder helpers for launchcast descriptors.
//
// Overview
//   - Scalars: String()/Number()/Bool()/Null()/Any()/Date().
//   - Composites: Array(items), Union(members...), Nullable(d), Enum(values...), Ref(name).
//   - Objects: Object().Field(name, d).As(internal)...MustBuild(); undeclared keys are
//     rejected unless Additional(d) is set.
//
// Tables read top to bottom like the JSON they describe:
//
//	launch := dsl.Object().
//		Field("flight_number", dsl.Number()).As("FlightNumber").
//		Field("details", dsl.Union(dsl.Null(), dsl.String())).As("Details").
//		Field("cores", dsl.Array(dsl.Ref("Core"))).As("Cores").
//		MustBuild()
//
// Union order is significant: the first member that accepts a value wins.
package dsl
