package game

import (
	"tabletop/meta"
	"tabletop/rules"
)

// Shape describes the board topology.
type Shape int

const (
	// Loop is a shared circular track; positions wrap around.
	Loop Shape = iota
	// Grid is a square per-player board; positions clamp at the edge.
	Grid
)

// PositionKind classifies a board position.
type PositionKind int

const (
	NormalPosition PositionKind = iota
	StartPosition
	GoalPosition
	SpecialPosition
)

// Board owns the topology and the position arithmetic for one match. Board
// size is computed here and nowhere else - every other module queries Size()
// so position math cannot desynchronize.
type Board struct {
	shape        Shape
	tilesPerSide int
	size         int
}

// NewBoard derives the topology from the rule document. Separate per-player
// boards are square grids of tiles_per_side^2 positions. A shared board is a
// loop around a tiles_per_side square; when trading-style rules are active
// (currency plus purchasable property) the loop is fixed at the 40-space
// standard regardless of the configured tile count.
func NewBoard(cfg rules.Config) *Board {
	b := &Board{tilesPerSide: cfg.Board.TilesPerSide}
	if cfg.Board.SeparateBoards {
		b.shape = Grid
		b.size = cfg.Board.TilesPerSide * cfg.Board.TilesPerSide
		return b
	}
	b.shape = Loop
	if cfg.Currency.Enabled && cfg.Property.Purchasable {
		b.size = meta.STANDARD_LOOP_SIZE
	} else {
		b.size = 4 * cfg.Board.TilesPerSide
	}
	return b
}

func (b *Board) Shape() Shape {
	return b.shape
}

// Size is the number of linear positions on the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) Contains(pos int) bool {
	return pos >= 0 && pos < b.size
}

// Kind classifies a position. On a grid the final index is the goal and the
// remaining corners are special; on a loop only the start is distinguished.
func (b *Board) Kind(pos int) PositionKind {
	if pos == 0 {
		return StartPosition
	}
	if b.shape == Grid {
		if pos == b.size-1 {
			return GoalPosition
		}
		n := b.tilesPerSide
		if pos == n-1 || pos == b.size-n {
			return SpecialPosition
		}
	}
	return NormalPosition
}

// ToGrid converts a linear position to row/column coordinates. Only
// meaningful on grid boards.
func (b *Board) ToGrid(pos int) (row, col int) {
	return pos / b.tilesPerSide, pos % b.tilesPerSide
}

// FromGrid converts row/column coordinates back to a linear position.
func (b *Board) FromGrid(row, col int) int {
	return row*b.tilesPerSide + col
}

// Distance between two positions: absolute difference on grids, the shorter
// of the forward and backward walks on loops.
func (b *Board) Distance(a, c int) int {
	d := a - c
	if d < 0 {
		d = -d
	}
	if b.shape == Loop && b.size-d < d {
		return b.size - d
	}
	return d
}
