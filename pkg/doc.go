// Package pkg provides the libraries behind fbp, a toolkit for Factorio
// blueprint strings.
//
// # Overview
//
// A blueprint string is the version character '0' followed by the base64
// encoding of a zlib-compressed JSON document. The pkg directory is
// organized into these areas:
//
//  1. [blueprint] - Wire format, raw schema and the entity graph model
//  2. [generate] - Circuit generators (memory arrays, memory loaders)
//  3. [pipeline] - Generator execution with caching and hooks
//  4. [cache], [library] - Storage for generated and named blueprints
//  5. [render], [server] - Graphviz drawing and the HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	blueprint string
//	       ↓
//	  [blueprint] DecodeRaw / FromRaw  (raw schema, then entity model)
//	       ↓
//	  edit: CloneEntities, ConnectWire, ConnectElectricPoles
//	       ↓
//	  [blueprint] ToRaw / EncodeRaw
//	       ↓
//	blueprint string
//
// # Quick Start
//
//	bp, err := blueprint.Decode(s)
//	if err != nil {
//	    return err
//	}
//	ids, err := bp.CloneEntities([]int{0, 1})
//	...
//	out, err := blueprint.Encode(bp)
//
// # Errors
//
// Every failure carries a code from [errors], such as INVALID_VERSION or
// INVALID_ID, so callers can tell input problems from internal ones.
package pkg
