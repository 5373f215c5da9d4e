// Package io reads and writes the plain-text inputs of shiftgraph and dumps
// finalized passages as JSON for inspection.
//
// # Action Scripts
//
// An action script holds one action per line in the form [transition.Action]
// prints it. Blank lines are skipped and '#' starts a comment:
//
//	# John left .
//	NODE A
//	SHIFT
//	REDUCE
//	EDGE P
//	ROOT H
//	FINISH
//
// Use [ReadActions] or [ImportActions] to parse a script, [WriteActions] or
// [ExportActions] to write one. Parse errors carry the line number.
//
// # Token Files
//
// A token file holds tokenized paragraphs: tokens are separated by
// whitespace, paragraphs by one or more blank lines. Lines starting with '#'
// are comments. Use [ReadTokens] or [ImportTokens].
//
// # JSON Dump
//
// [WriteJSON] and [ExportJSON] write every layer, node and edge of a passage,
// with attributes and remarks, as indented JSON. The dump is for inspection
// and external tooling; there is no reader for it.
package io
