// Package exalgebra implements exchange algebra: multi-dimensional
// bookkeeping vectors whose entries are tagged by structured keys, with
// netting, projection and redistribution operators.
//
// The core functionalities include:
//   - Keys: a Key is a 5 part tag name-direction-unit-time-category. The
//     direction is either nohat (the positive side) or hat (the negative
//     side). A KeyPattern is the same shape with '*' wildcards and an any
//     direction; it matches keys and translates them into new keys.
//   - Vectors: a Vector maps keys to exact decimal values in insertion
//     order. It is persistent, every operator returns a new Vector. The
//     Accumulator is its mutable companion for summing many terms.
//   - Netting: Bar, StrictBar and StrictBarLeaveZero cancel the nohat and
//     hat sides of a base family against each other.
//   - Transfers: TransferTable and TransferMatrix redistribute the values
//     of matched entries into destinations built from patterns, either one
//     to one or split by DivideRatios.
//   - Data Persistence: vectors and transfer rules are encoded to and from
//     human-readable JSONL and CSV.
//
// This package serves as the foundational logic for the `exal`
// command-line tool.
package exalgebra
