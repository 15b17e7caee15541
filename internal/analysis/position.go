package analysis

import (
	"fmt"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/errors"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

// Position is a named snapshot ready for analysis.
type Position struct {
	Name   string
	Pieces []chess.Piece
	Board  chess.Board
	ToMove chess.Colour
}

// ParseOptions controls how position text is read.
type ParseOptions struct {
	Board  chess.Board  // tile map geometry
	ToMove chess.Colour // side to move for tile maps
	Strict bool         // reject malformed tile maps instead of skipping bad tokens
	FEN    bool         // text is a FEN string; Board and ToMove come from it
}

// DefaultParseOptions reads lenient tile maps on the standard board with
// White to move.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Board: chess.DefaultBoard(), ToMove: chess.White}
}

// ParsePosition reads a tile map or FEN string.
func ParsePosition(name, text string, opts ParseOptions) (Position, error) {
	if strings.TrimSpace(text) == "" {
		return Position{}, &errors.ParseError{Err: errors.ErrInvalidTileMap, Source: name, Got: "empty input"}
	}

	if opts.FEN {
		pieces, toMove, err := engine.SnapshotFromFEN(strings.TrimSpace(text))
		if err != nil {
			return Position{}, errors.Wrap(err, name)
		}
		return Position{Name: name, Pieces: pieces, Board: chess.DefaultBoard(), ToMove: toMove}, nil
	}

	var pieces []chess.Piece
	if opts.Strict {
		var err error
		pieces, err = tilemap.DecodeStrict(text, opts.Board)
		if err != nil {
			var pe *errors.ParseError
			if errors.As(err, &pe) {
				pe.Source = name
			}
			return Position{}, err
		}
	} else {
		pieces = tilemap.Pieces(tilemap.DecodeOn(text, opts.Board))
	}
	return Position{Name: name, Pieces: pieces, Board: opts.Board, ToMove: opts.ToMove}, nil
}

// String identifies the position in logs.
func (p Position) String() string {
	return fmt.Sprintf("%s (%d pieces, %s to move)", p.Name, len(p.Pieces), p.ToMove)
}
