package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"chirptalks/auth"
	"chirptalks/domain"
	"chirptalks/domain/feed"
	"chirptalks/errors"
	"chirptalks/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type FeedHandler struct {
	feedService services.IFeedService
	metrics     *Metrics
	log         *slog.Logger
}

func NewFeedHandler(feedService services.IFeedService, metrics *Metrics, log *slog.Logger) *FeedHandler {
	return &FeedHandler{feedService: feedService, metrics: metrics, log: log}
}

// List handles GET /messages. No credential required.
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.feedService.ListMessages()
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, messages)
}

// Search handles GET /messages/search?q=.
func (h *FeedHandler) Search(w http.ResponseWriter, r *http.Request) {
	messages, err := h.feedService.SearchMessages(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	writeJSON(w, h.log, http.StatusOK, messages)
}

type contentRequest struct {
	Content string `json:"content"`
}

// Create handles POST /messages.
func (h *FeedHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, h.log, errors.ErrUnauthenticated)
		return
	}

	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
		return
	}

	message, err := h.feedService.CreateMessage(r.Context(), feed.CreateMessageCommand{
		AuthorID: identity.UserID,
		Content:  req.Content,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	h.metrics.MessagesPosted.Inc()
	writeJSON(w, h.log, http.StatusCreated, message)
}

type likeResponse struct {
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}

// ToggleLike handles POST /messages/{id}/like. A second call by the same
// user undoes the first.
func (h *FeedHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, h.log, errors.ErrUnauthenticated)
		return
	}

	messageID, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	likes, liked, err := h.feedService.ToggleLike(feed.ToggleLikeCommand{
		UserID:    identity.UserID,
		MessageID: messageID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, likeResponse{Likes: likes, Liked: liked})
}

type commentRequest struct {
	Text string `json:"text"`
}

// AddComment handles POST /messages/{id}/comment.
func (h *FeedHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, h.log, errors.ErrUnauthenticated)
		return
	}

	messageID, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
		return
	}

	comment, err := h.feedService.AddComment(feed.AddCommentCommand{
		UserID:    identity.UserID,
		MessageID: messageID,
		Text:      req.Text,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusCreated, map[string]domain.Comment{"comment": comment})
}

// Edit handles PUT /messages/{id}. Author only.
func (h *FeedHandler) Edit(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, h.log, errors.ErrUnauthenticated)
		return
	}

	messageID, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	var req contentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, h.log, fmt.Errorf("%w: invalid request body", errors.ErrInvalidInput))
		return
	}

	message, err := h.feedService.EditMessage(feed.EditMessageCommand{
		UserID:    identity.UserID,
		MessageID: messageID,
		Content:   req.Content,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, message)
}

// Delete handles DELETE /messages/{id}. Author only.
func (h *FeedHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, h.log, errors.ErrUnauthenticated)
		return
	}

	messageID, err := pathID(r)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	err = h.feedService.DeleteMessage(feed.DeleteMessageCommand{
		UserID:    identity.UserID,
		MessageID: messageID,
	})
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, h.log, http.StatusOK, map[string]string{"message": "message deleted"})
}

// pathID parses the {id} route variable. A malformed id can never match a
// message, so it maps to not found.
func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, errors.ErrMessageNotFound
	}
	return id, nil
}
