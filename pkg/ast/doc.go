// Package ast is the portable syntax tree handed to lint crates.
//
// The tree is produced by the driver from the host compiler's own, unstable
// representation. It only changes together with the API version in
// internal/version, so lint crates keep working across host releases.
//
// # Ownership
//
// Every node is allocated from the arena of a single pass and stays valid for
// that pass only. Nodes must not be retained after the lint pass callback
// returns. Within a pass the driver guarantees reference identity: asking for
// the same id twice yields the same pointer.
//
// # Variants
//
// Node families (Item, Expr, Stmt, SynTy, Pat, GenericParam, TyParamBound,
// WhereClause, GenericArg) are sealed interfaces. Use a type switch on the
// concrete pointer types, or the Kind method, to tell variants apart.
//
// # Ids
//
// Ids are small comparable values. They can be used as map keys inside a pass
// but carry no meaning across passes.
package ast
