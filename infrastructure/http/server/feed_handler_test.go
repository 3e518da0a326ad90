package server

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"chirptalks/auth"
	"chirptalks/domain"
	"chirptalks/domain/feed"
	"chirptalks/errors"
	"chirptalks/mocks"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testRouter wires the handler behind the real routes and middleware so the
// tests exercise path parsing and identity extraction.
func testRouter(t *testing.T, feedService *mocks.MockIFeedService) (http.Handler, *auth.TokenManager) {
	t.Helper()
	log := slog.Default()
	metrics := NewMetrics(prometheus.NewRegistry())
	handler := NewFeedHandler(feedService, metrics, log)
	tokens := auth.NewTokenManager("handler-secret", time.Hour)

	router := mux.NewRouter()
	router.HandleFunc("/messages", handler.List).Methods(http.MethodGet)

	protected := router.NewRoute().Subrouter()
	protected.Use(auth.Middleware(tokens))
	protected.HandleFunc("/messages", handler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}/like", handler.ToggleLike).Methods(http.MethodPost)
	protected.HandleFunc("/messages/{id}", handler.Edit).Methods(http.MethodPut)
	return router, tokens
}

func bearer(t *testing.T, tokens *auth.TokenManager, userID uuid.UUID) string {
	t.Helper()
	token, err := tokens.Generate(userID, "alice")
	require.NoError(t, err)
	return "Bearer " + token
}

func TestFeedHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	feedService := mocks.NewMockIFeedService(ctrl)
	router, tokens := testRouter(t, feedService)
	userID := uuid.New()

	t.Run("should return 201 with the created message", func(t *testing.T) {
		req := require.New(t)
		created := domain.Message{ID: uuid.New(), Content: "hello"}
		feedService.EXPECT().
			CreateMessage(gomock.Any(), feed.CreateMessageCommand{AuthorID: userID, Content: "hello"}).
			Return(created, nil).Times(1)

		r := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"content":"hello"}`))
		r.Header.Set("Authorization", bearer(t, tokens, userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		req.Equal(http.StatusCreated, w.Code)
		req.Contains(w.Body.String(), created.ID.String())
	})

	t.Run("should return 400 on a malformed body", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader("{broken"))
		r.Header.Set("Authorization", bearer(t, tokens, userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		req.Equal(http.StatusBadRequest, w.Code)
	})

	t.Run("should map validation failures to 400", func(t *testing.T) {
		req := require.New(t)
		feedService.EXPECT().
			CreateMessage(gomock.Any(), gomock.Any()).
			Return(domain.Message{}, errors.ErrInvalidInput).Times(1)

		r := httptest.NewRequest(http.MethodPost, "/messages", strings.NewReader(`{"content":""}`))
		r.Header.Set("Authorization", bearer(t, tokens, userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		req.Equal(http.StatusBadRequest, w.Code)
	})
}

func TestFeedHandler_PathID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	feedService := mocks.NewMockIFeedService(ctrl)
	router, tokens := testRouter(t, feedService)
	userID := uuid.New()

	t.Run("should treat a malformed id as not found", func(t *testing.T) {
		req := require.New(t)
		r := httptest.NewRequest(http.MethodPost, "/messages/not-a-uuid/like", nil)
		r.Header.Set("Authorization", bearer(t, tokens, userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		req.Equal(http.StatusNotFound, w.Code)
	})

	t.Run("should map forbidden edits to 403", func(t *testing.T) {
		req := require.New(t)
		messageID := uuid.New()
		feedService.EXPECT().
			EditMessage(feed.EditMessageCommand{UserID: userID, MessageID: messageID, Content: "nope"}).
			Return(domain.Message{}, errors.ErrForbidden).Times(1)

		r := httptest.NewRequest(http.MethodPut, "/messages/"+messageID.String(),
			strings.NewReader(`{"content":"nope"}`))
		r.Header.Set("Authorization", bearer(t, tokens, userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		req.Equal(http.StatusForbidden, w.Code)
	})
}

func TestFeedHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	feedService := mocks.NewMockIFeedService(ctrl)
	router, _ := testRouter(t, feedService)

	req := require.New(t)
	feedService.EXPECT().ListMessages().Return([]domain.Message{}, nil).Times(1)

	r := httptest.NewRequest(http.MethodGet, "/messages", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	req.Equal(http.StatusOK, w.Code)
	req.JSONEq("[]", w.Body.String())
}
