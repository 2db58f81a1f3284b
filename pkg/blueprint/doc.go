// Package blueprint converts blueprint strings into a graph model of
// entities and circuit wires, and back.
//
// # Overview
//
// A blueprint string is the version character '0' followed by the base64
// encoding of a zlib stream holding a JSON document. The package works in
// three layers:
//
//	string  ⇄  raw.Container  ⇄  *Blueprint
//
// [DecodeRaw] and [EncodeRaw] translate between the string and the raw
// schema of package raw. [FromRaw] and [ToRaw] translate between the raw
// schema and the graph model. [Decode] and [Encode] do both steps.
//
// # Model
//
// A [Blueprint] stores its entities in a dense array: an entity's id is its
// index. Decoding rejects documents whose entity numbers are not exactly
// 1, 2, 3, ... in order. Entities are only ever appended, so ids never
// change once assigned.
//
// Entities the model understands are decider, arithmetic and constant
// combinators and electric poles. Everything else decodes to [*Unknown],
// which keeps the original record and writes it back unchanged.
//
// A wire between two entities is stored as two [Connection] half-edges,
// one on each endpoint.
//
// # Graph Operations
//
// [Blueprint.CloneEntities], [Blueprint.ConnectElectricPoles],
// [Blueprint.ConnectWire] and [Blueprint.ConnectWireWithSide] are the only
// ways to add entities in bulk or to add wires. Each validates all of its
// arguments before changing anything, and the wire operations always write
// both halves of a wire.
//
//	bp, err := blueprint.Decode(s)
//	if err != nil {
//	    return err
//	}
//	ids, err := bp.CloneEntities([]int{0, 1})
//	if err != nil {
//	    return err
//	}
//	if err := bp.ConnectWire(1, ids[0], blueprint.WireRed); err != nil {
//	    return err
//	}
//	out, err := blueprint.Encode(bp)
//
// # Errors
//
// All errors carry a code from package errors: INVALID_VERSION,
// BASE64_DECODE, ZLIB_INFLATE, JSON_DECODE and JSON_DESERIALIZE while
// decoding, JSON_ENCODE, JSON_SERIALIZE and ZLIB_DEFLATE while encoding,
// NON_CONTIGUOUS_IDS and MISSING_FIELD while building the model, and
// INVALID_ID ([*InvalidIDError]) and DUPLICATE_IDS ([ErrDuplicateIDs]) from
// graph operations.
package blueprint
