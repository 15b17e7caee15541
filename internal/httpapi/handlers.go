package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lgbarn/tilechess-go/internal/analysis"
	"github.com/lgbarn/tilechess-go/internal/chess"
	"github.com/lgbarn/tilechess-go/internal/engine"
	"github.com/lgbarn/tilechess-go/internal/errors"
	"github.com/lgbarn/tilechess-go/internal/tilemap"
)

// positionRequest identifies a position by tile map or FEN. First and Last
// select the board for tile maps; both zero means the standard board.
type positionRequest struct {
	TileMap string `json:"tilemap"`
	FEN     string `json:"fen"`
	ToMove  string `json:"to_move"`
	First   int8   `json:"first"`
	Last    int8   `json:"last"`
	Strict  bool   `json:"strict"`
}

func (req positionRequest) position(name string) (analysis.Position, error) {
	if req.FEN != "" {
		return analysis.ParsePosition(name, req.FEN, analysis.ParseOptions{FEN: true})
	}

	opts := analysis.DefaultParseOptions()
	opts.Strict = req.Strict
	if req.First != 0 || req.Last != 0 {
		board, err := chess.NewBoard(req.First, req.Last)
		if err != nil {
			return analysis.Position{}, err
		}
		opts.Board = board
	}
	if req.ToMove != "" {
		c, ok := chess.ParseColour(req.ToMove)
		if !ok {
			return analysis.Position{}, errors.Wrapf(errors.ErrInvalidConfig, "to_move %q", req.ToMove)
		}
		opts.ToMove = c
	}
	return analysis.ParsePosition(name, req.TileMap, opts)
}

type destinationsRequest struct {
	positionRequest
	Cell string `json:"cell"`
}

type destinationsResponse struct {
	Cell         string   `json:"cell"`
	Piece        string   `json:"piece"`
	Destinations []string `json:"destinations"`
	Safe         []string `json:"safe"`
}

type applyRequest struct {
	positionRequest
	From string `json:"from"`
	To   string `json:"to"`
}

type applyResponse struct {
	Piece          string `json:"piece"`
	Captured       string `json:"captured,omitempty"`
	Legal          bool   `json:"legal"`
	OwnKingInCheck bool   `json:"own_king_in_check"`
	Status         string `json:"status"` // status of the opponent after the move
	TileMap        string `json:"tilemap"`
	FEN            string `json:"fen,omitempty"`
}

type convertResponse struct {
	TileMap string `json:"tilemap"`
	FEN     string `json:"fen,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !s.decode(w, r, &req) {
		return
	}
	pos, err := req.position("request")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	writeJSON(w, analysis.AnalyzePosition(pos))
}

func (s *Server) handleDestinations(w http.ResponseWriter, r *http.Request) {
	var req destinationsRequest
	if !s.decode(w, r, &req) {
		return
	}
	pos, err := req.position("request")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	p, err := pieceAt(pos, req.Cell)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	writeJSON(w, destinationsResponse{
		Cell:         pos.Board.CellName(p.Cell),
		Piece:        tilemap.Token(p),
		Destinations: cellNames(pos.Board, engine.LegalDestinations(p, pos.Board, pos.Pieces)),
		Safe:         cellNames(pos.Board, engine.SafeDestinations(p, pos.Board, pos.Pieces)),
	})
}

func (s *Server) handleApply(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !s.decode(w, r, &req) {
		return
	}
	pos, err := req.position("request")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	mover, err := pieceAt(pos, req.From)
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	to, err := pos.Board.ParseCell(strings.TrimSpace(req.To))
	if err != nil {
		s.badRequest(w, r, err)
		return
	}

	captured, after := engine.ApplyMove(pos.Pieces, to, mover)
	resp := applyResponse{
		Piece:          tilemap.Token(mover),
		Legal:          containsCell(engine.LegalDestinations(mover, pos.Board, pos.Pieces), to),
		OwnKingInCheck: engine.KingInCheck(mover.Colour, after, pos.Board),
		Status:         engine.Status(mover.Colour.Opposite(), after, pos.Board).String(),
		TileMap:        tilemap.Encode(after, pos.Board),
	}
	if captured != nil {
		resp.Captured = tilemap.Token(*captured)
	}
	if fen, err := engine.SnapshotToFEN(after, pos.Board, mover.Colour.Opposite()); err == nil {
		resp.FEN = fen
	}
	writeJSON(w, resp)
}

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if !s.decode(w, r, &req) {
		return
	}
	pos, err := req.position("request")
	if err != nil {
		s.badRequest(w, r, err)
		return
	}
	resp := convertResponse{TileMap: tilemap.Encode(pos.Pieces, pos.Board)}
	if fen, err := engine.SnapshotToFEN(pos.Pieces, pos.Board, pos.ToMove); err == nil {
		resp.FEN = fen
	}
	writeJSON(w, resp)
}

// pieceAt finds the piece on the named cell.
func pieceAt(pos analysis.Position, name string) (chess.Piece, error) {
	cell, err := pos.Board.ParseCell(strings.TrimSpace(name))
	if err != nil {
		return chess.Piece{}, err
	}
	p, ok := chess.PieceAt(pos.Pieces, cell)
	if !ok {
		return chess.Piece{}, errors.Wrapf(errors.ErrNoPieceAtCell, "%s", name)
	}
	return p, nil
}

func cellNames(board chess.Board, cells []chess.Cell) []string {
	names := make([]string, len(cells))
	for i, c := range cells {
		names[i] = board.CellName(c)
	}
	return names
}

func containsCell(cells []chess.Cell, c chess.Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

// ---- JSON helpers ----

func (s *Server) withJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// decode reads the request body into v, writing the error response itself
// when it fails.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if isBodyTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func (s *Server) badRequest(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Debug("rejected request", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusBadRequest, err.Error())
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	writeJSON(w, map[string]string{"error": msg})
}

func isBodyTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
