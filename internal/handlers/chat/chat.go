// internal/handlers/chat/chat.go
package chat

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/auth"
	httpserver "github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/http"
	"github.com/Shahriyarrrrr/GenomeRx-Smart-Genomic-Insight/internal/repo"
)

type Handler struct {
	chat     *repo.ChatRepo
	accounts *repo.AccountsRepo
}

func New(chat *repo.ChatRepo, accounts *repo.AccountsRepo) *Handler {
	return &Handler{chat: chat, accounts: accounts}
}

// Threads handles GET /api/v1/chat/threads: the broadcast channel plus
// the caller's direct threads.
func (h *Handler) Threads(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	httpserver.JSON(w, http.StatusOK, h.chat.Threads(r.Context(), account.Email))
}

// Thread handles GET /api/v1/chat/threads/{threadID}.
func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	threadID := chi.URLParam(r, "threadID")
	if !h.chat.CanRead(threadID, account.Email) {
		httpserver.JSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
		return
	}
	httpserver.JSON(w, http.StatusOK, h.chat.Thread(r.Context(), threadID))
}

// Post handles POST /api/v1/chat/threads/{threadID}.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	msg, err := h.chat.Post(r.Context(), chi.URLParam(r, "threadID"), b.Text, *account)
	if err != nil {
		httpserver.Error(w, err)
		return
	}
	httpserver.JSON(w, http.StatusCreated, msg)
}

// Direct handles POST /api/v1/chat/direct: resolves (and implicitly
// opens) the canonical thread with a peer.
func (h *Handler) Direct(w http.ResponseWriter, r *http.Request) {
	account, ok := auth.AccountFromContext(r.Context())
	if !ok {
		httpserver.JSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}
	var b struct {
		Peer string `json:"peer"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&b); err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	peer, err := h.accounts.Get(r.Context(), b.Peer)
	if err != nil {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "unknown peer"})
		return
	}
	if peer.Email == account.Email {
		httpserver.JSON(w, http.StatusBadRequest, map[string]string{"error": "cannot open a thread with yourself"})
		return
	}
	httpserver.JSON(w, http.StatusOK, map[string]string{
		"threadId": repo.DirectThreadID(account.Email, peer.Email),
	})
}
