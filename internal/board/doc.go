// Package board holds the geometry of the puzzle board: points in the
// logical viewbox space, the mapping between on-screen (client) coordinates
// and that space, and the circular acceptance zones items snap into.
//
// Everything here is pure; nothing in this package keeps state.
package board
