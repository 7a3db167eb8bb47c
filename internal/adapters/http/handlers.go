package httpadapter

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/metal-pony/bucket-go/internal/domain"
	"github.com/metal-pony/bucket-go/internal/usecase"
)

type Handler struct {
	UC     *usecase.Service
	Logger *zap.Logger
}

func New(uc *usecase.Service, logger *zap.Logger) *Handler {
	return &Handler{UC: uc, Logger: logger}
}

// Router builds the API router with request logging.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	if h.Logger != nil {
		r.Use(requestLogger(h.Logger))
	}
	r.Post("/api/generate", h.handleGenerate)
	r.Post("/api/solve", h.handleSolve)
	r.Post("/api/check", h.handleCheck)
	r.Post("/api/hint", h.handleHint)
	r.Route("/api/puzzles", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleSave)
		r.Get("/{id}", h.handleLoad)
	})
	return r
}

// requestLogger logs method, path, status, and duration per request.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w}
			next.ServeHTTP(sw, r)
			logger.Info("http",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", sw.status),
				zap.Int("bytes", sw.bytes),
				zap.Duration("dur", time.Since(start).Round(time.Millisecond)),
			)
		})
	}
}

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

type errResp struct {
	Error string `json:"error"`
}

func badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, errResp{Error: msg})
}

// ---- Generate ----

type generateReq struct {
	NumClues  int   `json:"numClues,omitempty"`
	Amount    int   `json:"amount,omitempty"`
	Seed      int64 `json:"seed,omitempty"`
	TimeoutMs int64 `json:"timeoutMs,omitempty"`
	Normalize bool  `json:"normalize,omitempty"`
	UseSieve  bool  `json:"useSieve,omitempty"`
}

type generateEntry struct {
	Board      string `json:"board,omitempty"`
	CellsKept  []int  `json:"cellsKept,omitempty"`
	Pops       int    `json:"pops,omitempty"`
	Resets     int    `json:"resets,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type generateResp struct {
	Results []generateEntry `json:"results"`
	Seed    int64           `json:"seed,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON: "+err.Error())
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	results, err := h.UC.Generate(r.Context(), usecase.GenerateOptions{
		NumClues:  req.NumClues,
		Amount:    req.Amount,
		Timeout:   time.Duration(req.TimeoutMs) * time.Millisecond,
		Normalize: req.Normalize,
		UseSieve:  req.UseSieve,
		Seed:      seed,
	})
	if err != nil {
		if errors.Is(err, domain.ErrBadInput) {
			badRequest(w, r, err.Error())
			return
		}
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	resp := generateResp{Seed: seed}
	for _, res := range results {
		entry := generateEntry{
			CellsKept:  res.CellsKept,
			Pops:       res.Pops,
			Resets:     res.Resets,
			Nodes:      res.Stats.Nodes,
			DurationMs: res.Stats.Duration.Milliseconds(),
		}
		if res.Board != nil {
			entry.Board = res.Board.String()
		}
		resp.Results = append(resp.Results, entry)
	}
	render.JSON(w, r, resp)
}

// ---- Solve ----

type boardReq struct {
	Board string `json:"board"`
}

type solveResp struct {
	Board      string `json:"board,omitempty"`
	Nodes      int    `json:"nodes,omitempty"`
	DurationMs int64  `json:"durationMs"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON: "+err.Error())
		return
	}
	b, err := domain.Parse(strings.TrimSpace(req.Board))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	out, st, err := h.UC.Solve(r.Context(), b)
	if err != nil {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, solveResp{Error: err.Error(), Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()})
		return
	}
	render.JSON(w, r, solveResp{Board: out.String(), Nodes: st.Nodes, DurationMs: st.Duration.Milliseconds()})
}

// ---- Check ----

type checkResp struct {
	Valid     bool               `json:"valid"`
	Unique    bool               `json:"unique"`
	Conflicts []domain.CellCoord `json:"conflicts,omitempty"`
}

func (h *Handler) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req boardReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON: "+err.Error())
		return
	}
	b, err := domain.Parse(strings.TrimSpace(req.Board))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	valid, conflicts, err := h.UC.Validate(r.Context(), b)
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	unique := false
	if valid {
		unique, _, _ = h.UC.Unique(r.Context(), b)
	}
	render.JSON(w, r, checkResp{Valid: valid, Unique: unique, Conflicts: conflicts})
}

// ---- Hint ----

type hintReq struct {
	Board   string `json:"board"`
	MaxTier string `json:"maxTier,omitempty"`
}

type hintResp struct {
	Found bool        `json:"found"`
	Hint  domain.Hint `json:"hint,omitempty"`
}

func parseTier(s string) domain.StrategyTier {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naked":
		return domain.StrategyNakedSingle
	default:
		return domain.StrategyHiddenSingle
	}
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	var req hintReq
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, "invalid JSON: "+err.Error())
		return
	}
	b, err := domain.Parse(strings.TrimSpace(req.Board))
	if err != nil {
		badRequest(w, r, err.Error())
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), b, parseTier(req.MaxTier))
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	render.JSON(w, r, hintResp{Found: ok, Hint: hh})
}

// ---- Save / Load / List ----

type saveResp struct {
	ID string `json:"id"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	var p domain.Puzzle
	if err := render.DecodeJSON(r.Body, &p); err != nil {
		badRequest(w, r, "invalid JSON: "+err.Error())
		return
	}
	if _, err := domain.Parse(p.Clues); err != nil {
		badRequest(w, r, err.Error())
		return
	}
	if err := h.UC.Save(r.Context(), &p); err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	render.JSON(w, r, saveResp{ID: p.ID})
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p, err := h.UC.Load(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, os.ErrNotExist) {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	render.JSON(w, r, p)
}

type listResp struct {
	Puzzles []domain.PuzzleMeta `json:"puzzles"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ps, err := h.UC.List(r.Context())
	if err != nil {
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, errResp{Error: err.Error()})
		return
	}
	render.JSON(w, r, listResp{Puzzles: ps})
}
