// Package render writes stop boards for people and programs.
//
// Two formats are supported:
//
//   - [JSON]: the board list as an indented JSON array, the shape consumed
//     by displays and scripts
//   - [Text]: a fixed-width table per stop with the stop name centred over
//     it, colored yellow on black when the writer is a terminal
//
// [Filter] narrows boards to a line and/or destination before rendering.
// Filtering never leaves a board without rows; a board with no matching
// arrivals shows the "no information" row instead.
//
//	boards = render.Filter{Line: "N29"}.Apply(boards)
//	err := render.Write(os.Stdout, render.FormatText, boards)
package render
