// Package spec models TypeScript declarations and renders them to source.
//
// Every declaration is described by an immutable spec value produced by a
// mutable builder:
//
//	user := spec.Must(spec.NewClassBuilder("User").
//		AddModifiers(spec.Export).
//		AddNewProperty("name", tstype.String, false).
//		Constructor(spec.Must(spec.NewConstructorBuilder().
//			AddNewParameter("name", tstype.String, false).
//			AddStatement("this.name = name").
//			Build())).
//		Build())
//
// Builders record the first invalid call and report it from Build, marked
// with one of the sentinels in the errors package. Frozen specs are safe to
// share between goroutines; a CodeWriter and a tstype.Scope are not.
//
// ClassSpec folds properties that are assigned verbatim from a constructor
// parameter into TypeScript parameter properties. The example above renders
// as
//
//	export class User {
//
//	  constructor(public name: string) {
//	  }
//
//	}
package spec

// Must returns v or panics if err is non-nil. It is meant for specs built
// from constant inputs, in the manner of regexp.MustCompile.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
