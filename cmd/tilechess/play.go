// play.go - Interactive local game
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/config"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/errors"
	"github.com/lgbarn/tilechess-go/internal/game"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

const playHelp = `Commands:
  e2 e4 | e2-e4   move a piece
  moves e2        list the destinations of the piece on e2
  show            print the board
  fen             print the position as FEN (8x8 boards only)
  captured        list captured pieces
  save [file]     print the tile map, or write it to file
  load file       restore a tile map saved with save
  help            show this text
  quit            leave the game
`

// session is one interactive game over a reader and writer.
type session struct {
	g      *game.Game
	out    io.Writer
	logger *slog.Logger
}

// newGame builds the starting game from -fen, the first file argument or
// the standard position.
func newGame(cfg *config.Config, args []string, logger *slog.Logger) (*game.Game, error) {
	if cfg.FEN != "" {
		pieces, toMove, err := engine.SnapshotFromFEN(cfg.FEN)
		if err != nil {
			return nil, err
		}
		return game.New(chess.DefaultBoard(), pieces, toMove, logger), nil
	}

	board, err := cfg.Board()
	if err != nil {
		return nil, err
	}
	if len(args) == 0 {
		return game.New(board, chess.StartingPosition(board), chess.White, logger), nil
	}

	data, err := os.ReadFile(args[0]) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		return nil, err
	}
	g := game.New(board, nil, cfg.ToMove, logger)
	if err := g.Restore(string(data), cfg.ToMove); err != nil {
		return nil, err
	}
	return g, nil
}

// runPlay reads commands from in until EOF or quit.
func runPlay(cfg *config.Config, args []string, in io.Reader, out io.Writer, logger *slog.Logger) error {
	g, err := newGame(cfg, args, logger)
	if err != nil {
		return err
	}
	s := &session{g: g, out: out, logger: logger}
	s.show()

	sc := bufio.NewScanner(in)
	s.prompt()
	for sc.Scan() {
		if !s.exec(strings.Fields(sc.Text())) {
			return nil
		}
		s.prompt()
	}
	return sc.Err()
}

func (s *session) prompt() {
	st := s.g.State()
	fmt.Fprintf(s.out, "%s to move> ", st.ToMove)
}

// exec runs one command and reports whether the session continues.
func (s *session) exec(fields []string) bool {
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprint(s.out, playHelp)
	case "show":
		s.show()
	case "fen":
		st := s.g.State()
		fen, err := engine.SnapshotToFEN(st.Pieces, st.Board, st.ToMove)
		s.print(fen, err)
	case "captured":
		s.captured()
	case "moves":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: moves <cell>")
			return true
		}
		s.moves(fields[1])
	case "save":
		s.save(fields[1:])
	case "load":
		if len(fields) != 2 {
			fmt.Fprintln(s.out, "usage: load <file>")
			return true
		}
		s.load(fields[1])
	default:
		from, to, ok := parseMoveArgs(fields)
		if !ok {
			fmt.Fprintf(s.out, "unknown command %q, type help\n", fields[0])
			return true
		}
		s.move(from, to)
	}
	return true
}

// parseMoveArgs accepts "e2 e4" and "e2-e4".
func parseMoveArgs(fields []string) (from, to string, ok bool) {
	switch len(fields) {
	case 2:
		return fields[0], fields[1], true
	case 1:
		from, to, ok = strings.Cut(fields[0], "-")
		return from, to, ok && from != "" && to != ""
	}
	return "", "", false
}

func (s *session) move(fromName, toName string) {
	board := s.g.Board()
	from, err := board.ParseCell(fromName)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	to, err := board.ParseCell(toName)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	result, err := s.g.Move(from, to)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}

	line := fmt.Sprintf("%d. %s %s-%s", result.Ply, tilemap.Token(result.Piece), board.CellName(from), board.CellName(to))
	if result.Captured != nil {
		line += " takes " + tilemap.Token(*result.Captured)
	}
	switch result.Status {
	case chess.Check:
		line += ", check"
	case chess.Checkmate:
		line += fmt.Sprintf(", checkmate: %s wins", result.Piece.Colour)
	case chess.Stalemate:
		line += ", stalemate"
	}
	fmt.Fprintln(s.out, line)
	if result.Status.Terminal() {
		s.show()
	}
}

func (s *session) moves(cellName string) {
	board := s.g.Board()
	cell, err := board.ParseCell(cellName)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	cells, err := s.g.Destinations(cell)
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = board.CellName(c)
	}
	if len(names) == 0 {
		fmt.Fprintln(s.out, "no moves")
		return
	}
	fmt.Fprintln(s.out, strings.Join(names, " "))
}

func (s *session) show() {
	st := s.g.State()
	fmt.Fprint(s.out, st.TileMap)
	fmt.Fprintf(s.out, "%s to move, status %s\n", st.ToMove, st.Status)
}

func (s *session) captured() {
	st := s.g.State()
	for _, c := range []chess.Colour{chess.White, chess.Black} {
		tokens := make([]string, len(st.Captured[c]))
		for i, p := range st.Captured[c] {
			tokens[i] = tilemap.Token(p)
		}
		fmt.Fprintf(s.out, "%s lost: %s\n", c, strings.Join(tokens, " "))
	}
}

func (s *session) save(args []string) {
	st := s.g.State()
	if len(args) == 0 {
		fmt.Fprint(s.out, st.TileMap)
		return
	}
	if err := os.WriteFile(args[0], []byte(st.TileMap), 0644); err != nil { //nolint:gosec // G306: saved positions are not secret
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.logger.Info("position saved", "file", args[0], "ply", st.Ply)
	fmt.Fprintf(s.out, "saved to %s\n", args[0])
}

func (s *session) load(name string) {
	data, err := os.ReadFile(name) //nolint:gosec // G304: CLI tool opens user-specified files
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	toMove := s.g.State().ToMove
	if err := s.g.Restore(string(data), toMove); err != nil {
		var pe *errors.ParseError
		if errors.As(err, &pe) {
			pe.Source = name
		}
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	s.show()
}

func (s *session) print(text string, err error) {
	if err != nil {
		fmt.Fprintf(s.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(s.out, text)
}
