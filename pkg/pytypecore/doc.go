// Package pytypecore provides a public API for embedding the
// Type–Representation–SpecialMethod core in Go applications, the same
// role the teacher's pkg/rage plays for the whole interpreter scaled down
// to just the type system: a Runtime to hold state, and a fluent builder
// for submitting new types to it.
//
// Basic usage:
//
//	rt := pytypecore.NewRuntime()
//	point, err := pytypecore.NewClass("Point").
//		Bases(pytypecore.Object(rt)).
//		Slots("x", "y").
//		Methods(pointMethods{}).
//		Build(rt)
package pytypecore
