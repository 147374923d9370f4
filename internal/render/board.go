// Package render formats tours for plain-text output.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/philscott2006-consultbeyond/parlor/internal/tour"
)

// FileHeader labels the board's files; it is printed above and below the
// grid.
const FileHeader = "  a  b  c  d  e  f  g  h"

const columnGap = 2

// Cells lays the visited squares onto a rank-major grid, numbering each
// square with its 1-based move and filling the rest with dots.
func Cells(squares []tour.Square) [tour.Size][tour.Size]string {
	var grid [tour.Size][tour.Size]string
	for rank := range grid {
		for file := range grid[rank] {
			grid[rank][file] = "."
		}
	}
	for i, sq := range squares {
		if !sq.Valid() {
			continue
		}
		grid[sq.Rank][sq.File] = fmt.Sprintf("%d", i+1)
	}
	return grid
}

// Board renders the visited squares as a numbered grid with rank 8 at the
// top, framed by file labels.
func Board(squares []tour.Square) string {
	grid := Cells(squares)
	lines := make([]string, 0, tour.Size+2)
	lines = append(lines, FileHeader)
	for rank := tour.Size - 1; rank >= 0; rank-- {
		cells := make([]string, tour.Size)
		for file := 0; file < tour.Size; file++ {
			cells[file] = fmt.Sprintf("%2s", grid[rank][file])
		}
		lines = append(lines, fmt.Sprintf("%d %s", rank+1, strings.Join(cells, " ")))
	}
	lines = append(lines, FileHeader)
	return strings.Join(lines, "\n")
}

// MoveList numbers each visited square, one entry per move.
func MoveList(squares []tour.Square) []string {
	entries := make([]string, len(squares))
	for i, sq := range squares {
		entries[i] = fmt.Sprintf("%02d: %s", i+1, sq)
	}
	return entries
}

// Columns lays entries out row-major in as many equal-width columns as fit
// the given width, one column minimum.
func Columns(entries []string, width int) string {
	if len(entries) == 0 {
		return ""
	}
	cellWidth := 0
	for _, entry := range entries {
		if w := runewidth.StringWidth(entry); w > cellWidth {
			cellWidth = w
		}
	}
	perRow := (width + columnGap) / (cellWidth + columnGap)
	if perRow < 1 {
		perRow = 1
	}
	var b strings.Builder
	for i, entry := range entries {
		col := i % perRow
		if i > 0 && col == 0 {
			b.WriteByte('\n')
		}
		lastInRow := col == perRow-1 || i == len(entries)-1
		if lastInRow {
			b.WriteString(entry)
			continue
		}
		b.WriteString(padRight(entry, cellWidth+columnGap))
	}
	return b.String()
}

func padRight(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
