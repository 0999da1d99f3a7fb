package conversation

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/citymed/scheduling-agent/pkg/logging"
)

// Handler exposes the conversational front-end contract over HTTP. It owns
// the persistence lifecycle around each turn: load state, run the engine,
// save state.
type Handler struct {
	engine *Engine
	store  StateStore
	logger *logging.Logger
}

// NewHandler creates a conversation handler.
func NewHandler(engine *Engine, store StateStore, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("conversation: engine required")
	}
	if store == nil {
		panic("conversation: state store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{engine: engine, store: store, logger: logger}
}

// Routes mounts the conversation endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.StartConversation)
	r.Route("/{conversationID}", func(r chi.Router) {
		r.Get("/", h.GetConversation)
		r.Delete("/", h.ResetConversation)
		r.Post("/messages", h.PostMessage)
	})
	return r
}

type messageRequest struct {
	Text string `json:"text"`
}

type turnResponse struct {
	ConversationID string    `json:"conversation_id"`
	Replies        []Message `json:"replies"`
	Stage          Stage     `json:"stage"`
	Scheduled      *Booking  `json:"scheduled,omitempty"`
}

type transcriptResponse struct {
	ConversationID string    `json:"conversation_id"`
	Messages       []Message `json:"messages"`
	Stage          Stage     `json:"stage"`
	Scheduled      *Booking  `json:"scheduled,omitempty"`
}

// StartConversation allocates a fresh conversation id.
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	if err := h.store.Save(r.Context(), id, NewState()); err != nil {
		h.logger.Error("failed to create conversation", "error", err)
		http.Error(w, "failed to create conversation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"conversation_id": id})
}

// PostMessage runs one turn and returns the assistant replies it produced.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}

	st, err := h.store.Load(r.Context(), conversationID)
	if err != nil {
		if !errors.Is(err, ErrConversationNotFound) {
			h.logger.Error("failed to load conversation", "error", err, "conversation_id", conversationID)
			http.Error(w, "failed to load conversation", http.StatusInternalServerError)
			return
		}
		// Unknown ids start a fresh conversation under that id; the
		// front end may mint its own identifiers.
		st = NewState()
	}

	before := len(st.Messages)
	st = h.engine.ProcessTurn(r.Context(), st, req.Text)

	if err := h.store.Save(r.Context(), conversationID, st); err != nil {
		h.logger.Error("failed to save conversation", "error", err, "conversation_id", conversationID)
		http.Error(w, "failed to save conversation", http.StatusInternalServerError)
		return
	}

	var replies []Message
	for _, m := range st.Messages[before:] {
		if m.Role == RoleAssistant {
			replies = append(replies, m)
		}
	}
	writeJSON(w, http.StatusOK, turnResponse{
		ConversationID: conversationID,
		Replies:        replies,
		Stage:          st.Stage,
		Scheduled:      st.Scheduled,
	})
}

// GetConversation returns the full transcript.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	st, err := h.store.Load(r.Context(), conversationID)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			http.Error(w, "conversation not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load conversation", "error", err, "conversation_id", conversationID)
		http.Error(w, "failed to load conversation", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, transcriptResponse{
		ConversationID: conversationID,
		Messages:       st.Messages,
		Stage:          st.Stage,
		Scheduled:      st.Scheduled,
	})
}

// ResetConversation clears the stored state; lifecycle belongs to the caller.
func (h *Handler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	if err := h.store.Delete(r.Context(), conversationID); err != nil {
		h.logger.Error("failed to delete conversation", "error", err, "conversation_id", conversationID)
		http.Error(w, "failed to delete conversation", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
