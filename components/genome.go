package components

import (
	"errors"
	"fmt"
)

// GenomeSize is the side length of a design's pixel grid.
const GenomeSize = 10

// ErrGenomeSize is returned when a pixel grid is not GenomeSize x GenomeSize.
var ErrGenomeSize = errors.New("pixel grid has wrong dimensions")

// Genome is a square binary pixel layout. Values are 0 or 1.
// It is an array so that copies never alias.
type Genome [GenomeSize][GenomeSize]uint8

// GenomeFromRows converts nested rows into a Genome.
// Any non-zero cell becomes 1.
func GenomeFromRows(rows [][]int) (Genome, error) {
	var g Genome
	if len(rows) != GenomeSize {
		return g, fmt.Errorf("%w: %d rows, want %d", ErrGenomeSize, len(rows), GenomeSize)
	}
	for i, row := range rows {
		if len(row) != GenomeSize {
			return g, fmt.Errorf("%w: row %d has %d cells, want %d", ErrGenomeSize, i, len(row), GenomeSize)
		}
		for j, v := range row {
			if v != 0 {
				g[i][j] = 1
			}
		}
	}
	return g, nil
}

// Rows returns the genome as nested int slices.
func (g Genome) Rows() [][]int {
	rows := make([][]int, GenomeSize)
	for i := range g {
		rows[i] = make([]int, GenomeSize)
		for j, v := range g[i] {
			rows[i][j] = int(v)
		}
	}
	return rows
}

// PixelsOn counts the cells set to 1.
func (g Genome) PixelsOn() int {
	n := 0
	for i := range g {
		for _, v := range g[i] {
			n += int(v)
		}
	}
	return n
}

// IsFeed reports whether (row, col) belongs to the feed connection:
// row 0, the middle two columns.
func IsFeed(row, col int) bool {
	return row == 0 && (col == GenomeSize/2-1 || col == GenomeSize/2)
}

// String renders the genome as rows of '#' and '.'.
func (g Genome) String() string {
	buf := make([]byte, 0, GenomeSize*(GenomeSize+1))
	for i := range g {
		for _, v := range g[i] {
			if v == 1 {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}
