// Package kernel provides the minimal illustrative host classes the types
// package's tests build types around: a canonical instance
// record and a foreign "adopted" boxed-float record. Neither implements
// any built-in-type semantics (arithmetic, string formatting, and so on
// are explicitly out of scope for the core); they exist only to give the
// Representation/Type/SpecialMethod machinery real host classes to bind,
// the same narrow role the teacher's smallest PyObject variants play in
// its own descriptor and attribute tests.
package kernel
