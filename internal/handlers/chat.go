package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/diewo77/go-shopchat/internal/httpx"
	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
)

type ChatSessionHandler struct {
	Store *store.Store
}

func NewChatSessionHandler(st *store.Store) *ChatSessionHandler {
	return &ChatSessionHandler{Store: st}
}

// chatSessionResponse serializes nested products through productResponse so
// they carry the same derived availability flag as the product routes.
type chatSessionResponse struct {
	ID        uint                 `json:"id"`
	UserID    uint                 `json:"user_id"`
	Products  []productResponse    `json:"products"`
	StartedAt time.Time            `json:"started_at"`
	Messages  []models.ChatMessage `json:"messages"`
}

func toChatSessionResponse(cs models.ChatSession) chatSessionResponse {
	messages := cs.Messages
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	return chatSessionResponse{
		ID:        cs.ID,
		UserID:    cs.UserID,
		Products:  toProductResponses(cs.Products),
		StartedAt: cs.StartedAt,
		Messages:  messages,
	}
}

func (h *ChatSessionHandler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.Store.ListSessions()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]chatSessionResponse, 0, len(sessions))
	for _, cs := range sessions {
		out = append(out, toChatSessionResponse(cs))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *ChatSessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     uint   `json:"user_id"`
		ProductIDs []uint `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	cs := models.ChatSession{UserID: in.UserID}
	if err := h.Store.CreateSession(&cs, in.ProductIDs); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toChatSessionResponse(cs))
}

func (h *ChatSessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	cs, err := h.Store.GetSession(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toChatSessionResponse(*cs))
}

// Update replaces the products linked to a session. Owner and start time are
// immutable. Serves both PUT and PATCH.
func (h *ChatSessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	var in struct {
		ProductIDs *[]uint `json:"product_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.ProductIDs != nil {
		if _, err := h.Store.SetSessionProducts(id, *in.ProductIDs); err != nil {
			writeError(w, err)
			return
		}
	}
	cs, err := h.Store.GetSession(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toChatSessionResponse(*cs))
}

// Delete removes a session and all its messages.
func (h *ChatSessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteSession(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ChatMessageHandler struct {
	Store *store.Store
}

func NewChatMessageHandler(st *store.Store) *ChatMessageHandler {
	return &ChatMessageHandler{Store: st}
}

// List returns messages in timestamp order, optionally scoped with
// ?chat_session_id=.
func (h *ChatMessageHandler) List(w http.ResponseWriter, r *http.Request) {
	var sessionID uint
	if raw := r.URL.Query().Get("chat_session_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_argument", "chat_session_id must be numeric")
			return
		}
		sessionID = uint(id)
	}
	messages, err := h.Store.ListMessages(sessionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if messages == nil {
		messages = []models.ChatMessage{}
	}
	httpx.JSON(w, http.StatusOK, messages)
}

func (h *ChatMessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ChatSessionID uint               `json:"chat_session_id"`
		MessageType   models.MessageType `json:"message_type"`
		Content       string             `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	m := models.ChatMessage{ChatSessionID: in.ChatSessionID, MessageType: in.MessageType, Content: in.Content}
	if err := h.Store.CreateMessage(&m); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *ChatMessageHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	m, err := h.Store.GetMessage(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

// Update corrects a message's content or type. Serves both PUT and PATCH.
func (h *ChatMessageHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	m, err := h.Store.GetMessage(id)
	if err != nil {
		writeError(w, err)
		return
	}
	var in struct {
		MessageType *models.MessageType `json:"message_type"`
		Content     *string             `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.MessageType != nil {
		m.MessageType = *in.MessageType
	}
	if in.Content != nil {
		m.Content = *in.Content
	}
	if err := h.Store.UpdateMessage(m); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, m)
}

func (h *ChatMessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteMessage(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
