// Package types implements the Type–Representation–SpecialMethod core of a
// Python runtime hosted on Go: the data structures that bind host classes to
// Python types, the method-resolution and attribute-lookup machinery, the
// per-representation cache of special methods that backs every operator and
// built-in, and the factory that constructs types atomically under
// concurrent load while the runtime bootstraps itself.
//
// Everything outside this core — argument binding, the bytecode
// interpreter, the standard library, the import system — is a collaborator
// this package neither implements nor depends on; it consumes only the
// capability interfaces declared in object.go.
package types
