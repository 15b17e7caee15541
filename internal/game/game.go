// Package game drives a two-player match over the rule engine: it owns the
// authoritative snapshot, validates moves in two phases (movement pattern,
// then own-king safety) and tracks turn, status and captured pieces.
package game

import (
	"io"
	"log/slog"
	"slices"
	"sync"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/errors"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

// MoveResult describes an accepted move.
type MoveResult struct {
	Ply      int
	Piece    chess.Piece // the mover on its destination
	From     chess.Cell
	To       chess.Cell
	Captured *chess.Piece
	Status   chess.CheckStatus // status of the side now to move
}

// State is a copy of the game at one instant.
type State struct {
	Board    chess.Board
	Pieces   []chess.Piece
	ToMove   chess.Colour
	Status   chess.CheckStatus
	Ply      int
	Captured map[chess.Colour][]chess.Piece // pieces of each colour taken so far
	TileMap  string
}

// Game is safe for concurrent use.
type Game struct {
	mu       sync.RWMutex
	board    chess.Board
	pieces   []chess.Piece
	toMove   chess.Colour
	status   chess.CheckStatus
	ply      int
	captured map[chess.Colour][]chess.Piece
	logger   *slog.Logger
}

// New starts a game from the given snapshot. The snapshot is copied.
// A nil logger discards records.
func New(board chess.Board, pieces []chess.Piece, toMove chess.Colour, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Game{
		board:  board,
		logger: logger,
	}
	g.reset(chess.Clone(pieces), toMove)
	return g
}

// NewStandard starts a game from the standard position on an 8x8 board.
func NewStandard(logger *slog.Logger) *Game {
	board := chess.DefaultBoard()
	return New(board, chess.StartingPosition(board), chess.White, logger)
}

func (g *Game) reset(pieces []chess.Piece, toMove chess.Colour) {
	g.pieces = pieces
	g.toMove = toMove
	g.ply = 0
	g.captured = make(map[chess.Colour][]chess.Piece)
	g.status = engine.Status(toMove, pieces, g.board)
}

// Board returns the board geometry.
func (g *Game) Board() chess.Board {
	return g.board
}

// Destinations returns the pseudo-legal destinations of the piece on from,
// which must belong to the side to move. Moves that would leave the king in
// check are included; they are rejected by Move.
func (g *Game) Destinations(from chess.Cell) ([]chess.Cell, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	p, err := g.pieceToMove(from)
	if err != nil {
		return nil, errors.Wrapf(err, "destinations from %s", g.board.CellName(from))
	}
	return engine.LegalDestinations(p, g.board, g.pieces), nil
}

// pieceToMove returns the side to move's piece on cell. Caller holds mu.
func (g *Game) pieceToMove(cell chess.Cell) (chess.Piece, error) {
	p, ok := chess.PieceAt(g.pieces, cell)
	if !ok {
		return chess.Piece{}, errors.ErrNoPieceAtCell
	}
	if p.Colour != g.toMove {
		return chess.Piece{}, errors.ErrNotYourTurn
	}
	return p, nil
}

// Move commits the piece on from to to. A destination outside the
// pseudo-legal set fails with ErrIllegalMove; one that leaves the mover's
// king attacked fails with ErrOwnKingInCheck. Rejected moves leave the game
// unchanged. Errors are *errors.MoveError values.
func (g *Game) Move(from, to chess.Cell) (MoveResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	reject := func(err error) (MoveResult, error) {
		g.logger.Debug("move rejected",
			"ply", g.ply+1,
			"colour", g.toMove.String(),
			"from", g.board.CellName(from),
			"to", g.board.CellName(to),
			"reason", err.Error())
		return MoveResult{}, &errors.MoveError{
			Err:    err,
			Ply:    g.ply + 1,
			Colour: g.toMove.String(),
			From:   g.board.CellName(from),
			To:     g.board.CellName(to),
		}
	}

	if g.status.Terminal() {
		return reject(errors.ErrGameOver)
	}
	mover, err := g.pieceToMove(from)
	if err != nil {
		return reject(err)
	}
	if !slices.Contains(engine.LegalDestinations(mover, g.board, g.pieces), to) {
		return reject(errors.ErrIllegalMove)
	}

	captured, after := engine.ApplyMove(g.pieces, to, mover)
	if engine.KingInCheck(mover.Colour, after, g.board) {
		return reject(errors.ErrOwnKingInCheck)
	}

	g.pieces = after
	if captured != nil {
		g.captured[captured.Colour] = append(g.captured[captured.Colour], *captured)
	}
	g.ply++
	g.toMove = mover.Colour.Opposite()
	g.status = engine.Status(g.toMove, g.pieces, g.board)

	result := MoveResult{
		Ply:      g.ply,
		Piece:    mover.At(to),
		From:     from,
		To:       to,
		Captured: captured,
		Status:   g.status,
	}
	g.logMove(result)
	return result, nil
}

func (g *Game) logMove(r MoveResult) {
	attrs := []any{
		"ply", r.Ply,
		"piece", r.Piece.Kind.String(),
		"colour", r.Piece.Colour.String(),
		"from", g.board.CellName(r.From),
		"to", g.board.CellName(r.To),
	}
	if r.Captured != nil {
		attrs = append(attrs, "captured", r.Captured.Kind.String())
	}
	g.logger.Info("move", attrs...)

	if r.Status.Terminal() {
		g.logger.Info("game over", "status", r.Status.String(), "loser", g.toMove.String(), "ply", r.Ply)
	}
}

// State returns a copy of the current game state.
func (g *Game) State() State {
	g.mu.RLock()
	defer g.mu.RUnlock()

	captured := make(map[chess.Colour][]chess.Piece, len(g.captured))
	for c, ps := range g.captured {
		captured[c] = chess.Clone(ps)
	}
	return State{
		Board:    g.board,
		Pieces:   chess.Clone(g.pieces),
		ToMove:   g.toMove,
		Status:   g.status,
		Ply:      g.ply,
		Captured: captured,
		TileMap:  tilemap.Encode(g.pieces, g.board),
	}
}

// Restore replaces the position with a saved tile map. The map must cover
// the game's board exactly. Ply count and captured pieces are reset.
func (g *Game) Restore(tileMap string, toMove chess.Colour) error {
	pieces, err := tilemap.DecodeStrict(tileMap, g.board)
	if err != nil {
		return errors.Wrap(err, "restore")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.reset(pieces, toMove)
	g.logger.Info("position restored", "pieces", len(pieces), "to_move", toMove.String(), "status", g.status.String())
	return nil
}
