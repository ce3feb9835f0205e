package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"tarjetitas/internal/adapters/printview"
	"tarjetitas/internal/application"
	"tarjetitas/internal/application/commands"
	"tarjetitas/internal/domain"
	"tarjetitas/internal/ports"
)

// maxImportBytes bounds an uploaded deck; inline images make them large
const maxImportBytes = 64 << 20

// Handler holds the HTTP route handlers.
type Handler struct {
	store    commands.DeckWriter
	limits   domain.GridLimits
	notifier ports.Notifier
	logger   *slog.Logger
	// maxImport bounds POST /import bodies
	maxImport int64
}

// NewHandler creates a new Handler.
func NewHandler(store commands.DeckWriter, limits domain.GridLimits, notifier ports.Notifier, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &Handler{store: store, limits: limits, notifier: notifier, logger: logger, maxImport: maxImportBytes}
}

// Print handles GET / and GET /print.
func (h *Handler) Print(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := printview.Render(w, h.store.Snapshot(), printview.Options{Tips: true}); err != nil {
		h.logger.Error("print view failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Export handles GET /export.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	res, err := commands.NewExportCommand(h.store).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	_, _ = w.Write(res.Data)
}

// Import handles POST /import with the exported document as body.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxImport))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("document too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorBody(fmt.Sprintf("failed to read document: %v", err)))
		return
	}

	res, err := commands.NewImportCommand(h.store, data).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	h.notifier.Notify(res.Title, res.Message)
	writeJSON(w, http.StatusOK, map[string]any{
		"title":        res.Title,
		"message":      res.Message,
		"rows":         res.Rows,
		"cols":         res.Cols,
		"cards":        res.Cards,
		"cardsSkipped": res.CardsSkipped,
	})
}

// GetDeck handles GET /api/deck.
func (h *Handler) GetDeck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Snapshot())
}

type resizeRequest struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// ResizeDeck handles PATCH /api/deck.
func (h *Handler) ResizeDeck(w http.ResponseWriter, r *http.Request) {
	var req resizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := commands.NewResizeCommand(h.store, h.limits, req.Rows, req.Cols).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ResetDeck handles POST /api/deck/reset.
func (h *Handler) ResetDeck(w http.ResponseWriter, r *http.Request) {
	res, err := commands.NewResetCommand(h.store).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GetCard handles GET /api/cards/{id}.
func (h *Handler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}
	card, err := commands.NewGetCardCommand(h.store, id).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type putCardRequest struct {
	Side string `json:"side"`
	Text string `json:"text"`
}

// PutCard handles PUT /api/cards/{id}, writing one side.
func (h *Handler) PutCard(w http.ResponseWriter, r *http.Request) {
	id, ok := cardID(w, r)
	if !ok {
		return
	}
	var req putCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := commands.NewSetSideCommand(h.store, h.notifier, id, req.Side, req.Text).Execute(r.Context())
	if err != nil {
		h.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Card)
}

func cardID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("card id must be a non-negative integer"))
		return 0, false
	}
	return id, true
}

// fail maps application errors to HTTP statuses.
func (h *Handler) fail(w http.ResponseWriter, err error) {
	var valErr *application.ValidationError
	switch {
	case errors.As(err, &valErr), errors.Is(err, application.ErrMalformedImport):
		writeJSON(w, http.StatusBadRequest, errorBody(err.Error()))
	case errors.Is(err, application.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, application.ErrNotHydrated):
		writeJSON(w, http.StatusServiceUnavailable, errorBody(err.Error()))
	default:
		h.logger.Error("request failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}
