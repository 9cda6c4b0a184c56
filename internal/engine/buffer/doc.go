// Package buffer implements the in-memory text model: an ordered slice of
// lines plus a cursor whose position is re-clamped after every operation.
//
// The buffer resolves motions (including the word/WORD distinction and text
// object ranges) but knows nothing about modes, operators, or registers;
// those live in the simulator, which owns exactly one buffer per session.
package buffer
