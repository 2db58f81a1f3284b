// Package raw mirrors the JSON document carried inside a blueprint string.
//
// # Overview
//
// The types in this package follow the wire shape one to one: a [Container]
// holds a single [Blueprint], which lists [Entity] records with 1-based
// entity numbers, positions, optional directions, circuit connections,
// control behaviour and pole neighbours.
//
// Optional members are pointers or slices tagged omitempty, so they are
// omitted from the output when absent and never written as null.
//
// # Unknown Members
//
// The game writes many members this package does not model (blueprint
// labels, tiles, recipes, the is_on flag of constant combinators, ...).
// Object types that may carry them keep such members in an [Extra] map when
// a [Container] is decoded and write them back after the defined fields,
// sorted by key, on encode. A document therefore survives a decode/encode
// cycle without losing data.
//
// # Validation
//
// Enumerated values ([Direction], [CircuitID], [Item], [Comparator],
// [Operation]) reject anything outside their domain while decoding, and
// required members produce a "missing field" error when absent.
package raw
