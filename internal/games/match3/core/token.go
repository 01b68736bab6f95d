// Package core implements the match-3 resolution engine: board state,
// match detection, move validation, gravity and the turn state machine.
// It is pure logic with no external dependencies; presentation, input
// mapping and persistence live in the surrounding adapter packages.
package core

// Position identifies a single cell on the board. Col grows rightward,
// Row grows downward; (0,0) is the top-left corner.
type Position struct {
	Col int
	Row int
}

// Direction is one of the four axis-aligned neighbor directions.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the column/row offset for the direction.
func (d Direction) Delta() (dc, dr int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

// TokenKind is the closed set of cell contents: six interchangeable
// normal colors plus the non-matchable Empty and Obstacle sentinels.
type TokenKind int

const (
	KindEmpty TokenKind = iota
	KindRed
	KindOrange
	KindYellow
	KindGreen
	KindBlue
	KindPurple
	KindObstacle
)

// NormalKinds lists the matchable colors in palette order.
var NormalKinds = [...]TokenKind{
	KindRed, KindOrange, KindYellow, KindGreen, KindBlue, KindPurple,
}

// CanMatch reports whether the kind participates in match detection.
// Empty and Obstacle never match.
func (k TokenKind) CanMatch() bool {
	return k != KindEmpty && k != KindObstacle
}

// IsNormal reports whether the kind is one of the six colors.
func (k TokenKind) IsNormal() bool {
	return k >= KindRed && k <= KindPurple
}

// String returns a human-readable name for the kind.
func (k TokenKind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindRed:
		return "Red"
	case KindOrange:
		return "Orange"
	case KindYellow:
		return "Yellow"
	case KindGreen:
		return "Green"
	case KindBlue:
		return "Blue"
	case KindPurple:
		return "Purple"
	case KindObstacle:
		return "Obstacle"
	default:
		return "Unknown"
	}
}

// kindChars maps each kind to its single-character encoding, used both for
// board fingerprints and for persisted grids. '0' marks Empty and '#' marks
// Obstacle; colors use the first letter of their name.
var kindChars = map[TokenKind]byte{
	KindEmpty:    '0',
	KindRed:      'R',
	KindOrange:   'O',
	KindYellow:   'Y',
	KindGreen:    'G',
	KindBlue:     'B',
	KindPurple:   'P',
	KindObstacle: '#',
}

var charKinds = map[byte]TokenKind{}

func init() {
	for k, c := range kindChars {
		charKinds[c] = k
	}
}

// EncodeKinds serializes a kind slice to its compact one-character-per-cell
// form. Unknown kinds encode as '0'.
func EncodeKinds(kinds []TokenKind) string {
	buf := make([]byte, len(kinds))
	for i, k := range kinds {
		c, ok := kindChars[k]
		if !ok {
			c = '0'
		}
		buf[i] = c
	}
	return string(buf)
}

// DecodeKinds parses the compact form produced by EncodeKinds.
// Unknown characters decode as Empty, reported via the bool.
func DecodeKinds(s string) ([]TokenKind, bool) {
	kinds := make([]TokenKind, len(s))
	clean := true
	for i := 0; i < len(s); i++ {
		k, ok := charKinds[s[i]]
		if !ok {
			clean = false
			k = KindEmpty
		}
		kinds[i] = k
	}
	return kinds, clean
}

// Token is a kind at a position. The grid is the source of truth; tokens
// carry no identity beyond these two fields.
type Token struct {
	Kind TokenKind
	Pos  Position
}

// Move is a candidate swap of two positions. A Move and its reversal are
// the same move for validation purposes.
type Move struct {
	From Position
	To   Position
}

// Reversed returns the move with endpoints exchanged.
func (m Move) Reversed() Move {
	return Move{From: m.To, To: m.From}
}

// Equals reports move equality up to reversal.
func (m Move) Equals(other Move) bool {
	if m.From == other.From && m.To == other.To {
		return true
	}
	return m.From == other.To && m.To == other.From
}

// MatchShape classifies a detected match.
type MatchShape int

const (
	ShapeHorizontal MatchShape = iota
	ShapeVertical
	ShapeL
	ShapeT
	ShapeCross
)

// String returns a human-readable name for the shape.
func (s MatchShape) String() string {
	switch s {
	case ShapeHorizontal:
		return "Horizontal"
	case ShapeVertical:
		return "Vertical"
	case ShapeL:
		return "LShape"
	case ShapeT:
		return "TShape"
	case ShapeCross:
		return "Cross"
	default:
		return "Unknown"
	}
}

// SpecialKind is the advisory special-token tier attached to large or
// shaped matches. The engine only labels; it never spawns special tokens.
type SpecialKind int

const (
	SpecialNone SpecialKind = iota
	SpecialLine
	SpecialColorBomb
	SpecialRainbow
	SpecialBomb
	SpecialCrossLine
)

// String returns a human-readable name for the special tier.
func (s SpecialKind) String() string {
	switch s {
	case SpecialNone:
		return "None"
	case SpecialLine:
		return "Line"
	case SpecialColorBomb:
		return "ColorBomb"
	case SpecialRainbow:
		return "Rainbow"
	case SpecialBomb:
		return "Bomb"
	case SpecialCrossLine:
		return "CrossLine"
	default:
		return "Unknown"
	}
}

// Match is one detected group of same-kind cells. Within a single
// detection pass no two matches share a cell.
type Match struct {
	Shape   MatchShape
	Kind    TokenKind
	Cells   []Position
	Score   int
	Special SpecialKind
}
