//go:generate go run go.uber.org/mock/mockgen -source=feed_service.go -destination=../mocks/mock_feed_service.go -package=mocks
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"chirptalks/domain"
	"chirptalks/domain/event"
	"chirptalks/domain/feed"
	"chirptalks/errors"
	"chirptalks/moderation"
	"chirptalks/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const searchLimit = 50

type IFeedService interface {
	CreateMessage(ctx context.Context, cmd feed.CreateMessageCommand) (domain.Message, error)
	ListMessages() ([]domain.Message, error)
	SearchMessages(ctx context.Context, query string) ([]domain.Message, error)
	ToggleLike(cmd feed.ToggleLikeCommand) (likes int, liked bool, err error)
	AddComment(cmd feed.AddCommentCommand) (domain.Comment, error)
	EditMessage(cmd feed.EditMessageCommand) (domain.Message, error)
	DeleteMessage(cmd feed.DeleteMessageCommand) error
}

// FeedService owns every message mutation. Each successful mutation emits
// exactly one event carrying the post-mutation canonical state; emission is
// fire-and-forget and never gates the caller's response.
type FeedService struct {
	users     repositories.IUserRepository
	messages  repositories.IFeedRepository
	index     repositories.IMessageIndex
	moderator *moderation.Moderator
	events    chan<- event.DomainEvent
	log       *slog.Logger
}

func NewFeedService(
	users repositories.IUserRepository,
	messages repositories.IFeedRepository,
	index repositories.IMessageIndex,
	moderator *moderation.Moderator,
	events chan<- event.DomainEvent,
	log *slog.Logger,
) *FeedService {
	return &FeedService{
		users:     users,
		messages:  messages,
		index:     index,
		moderator: moderator,
		events:    events,
		log:       log,
	}
}

func (s *FeedService) CreateMessage(ctx context.Context, cmd feed.CreateMessageCommand) (domain.Message, error) {
	if err := validateContent(cmd.Content); err != nil {
		return domain.Message{}, err
	}

	author, err := s.users.GetUserByID(cmd.AuthorID)
	if err != nil {
		return domain.Message{}, err
	}

	content := s.moderator.Mask(cmd.Content)
	message := domain.Message{
		ID:        uuid.New(),
		Content:   content,
		Author:    domain.Author{ID: author.ID, Username: author.Username},
		CreatedAt: time.Now().UTC(),
		LikerIDs:  []uuid.UUID{},
		Comments:  []domain.Comment{},
		Lang:      moderation.DetectLanguage(content),
	}

	if err := s.messages.StoreMessage(message); err != nil {
		return domain.Message{}, err
	}
	if err := s.index.Index(message.ID, message.Content); err != nil {
		s.log.Warn("Failed to index message", "message_id", message.ID, "error", err)
	}

	s.emit(event.MessageCreated{Message: message})
	return message, nil
}

// ListMessages returns all messages newest first. Readable without
// authentication.
func (s *FeedService) ListMessages() ([]domain.Message, error) {
	return s.messages.ListMessages()
}

// SearchMessages resolves index hits against the canonical store and keeps
// the feed's newest-first ordering among them.
func (s *FeedService) SearchMessages(ctx context.Context, query string) ([]domain.Message, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", errors.ErrInvalidInput)
	}

	ids, err := s.index.Search(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}

	hits := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		hits[id] = struct{}{}
	}

	all, err := s.messages.ListMessages()
	if err != nil {
		return nil, err
	}
	return lo.Filter(all, func(m domain.Message, _ int) bool {
		_, ok := hits[m.ID]
		return ok
	}), nil
}

// ToggleLike flips the caller's membership in the liker set. The
// read-modify-write runs in one store transaction, so two rapid toggles by
// the same user always land back on the original state.
func (s *FeedService) ToggleLike(cmd feed.ToggleLikeCommand) (int, bool, error) {
	updated, err := s.messages.UpdateMessage(cmd.MessageID, func(m *domain.Message) error {
		m.ToggleLike(cmd.UserID)
		return nil
	})
	if err != nil {
		return 0, false, err
	}

	s.emit(event.MessageUpdated{Message: updated})
	return updated.Likes(), updated.LikedBy(cmd.UserID), nil
}

func (s *FeedService) AddComment(cmd feed.AddCommentCommand) (domain.Comment, error) {
	text := cmd.Text
	if strings.TrimSpace(text) == "" {
		return domain.Comment{}, fmt.Errorf("%w: comment text is required", errors.ErrInvalidInput)
	}
	if len([]rune(text)) > domain.MaxCommentLength {
		return domain.Comment{}, fmt.Errorf("%w: comment must be %d characters or less",
			errors.ErrInvalidInput, domain.MaxCommentLength)
	}

	author, err := s.users.GetUserByID(cmd.UserID)
	if err != nil {
		return domain.Comment{}, err
	}

	comment := domain.Comment{
		ID:         uuid.New(),
		AuthorID:   author.ID,
		AuthorName: author.Username,
		Text:       s.moderator.Mask(text),
		CreatedAt:  time.Now().UTC(),
	}

	updated, err := s.messages.UpdateMessage(cmd.MessageID, func(m *domain.Message) error {
		m.Comments = append(m.Comments, comment)
		return nil
	})
	if err != nil {
		return domain.Comment{}, err
	}

	s.emit(event.MessageUpdated{Message: updated})
	return comment, nil
}

// EditMessage replaces the content of the caller's own message, preserving
// creation time, likes and comments.
func (s *FeedService) EditMessage(cmd feed.EditMessageCommand) (domain.Message, error) {
	if err := validateContent(cmd.Content); err != nil {
		return domain.Message{}, err
	}

	content := s.moderator.Mask(cmd.Content)
	updated, err := s.messages.UpdateMessage(cmd.MessageID, func(m *domain.Message) error {
		if m.Author.ID != cmd.UserID {
			return errors.ErrForbidden
		}
		m.Content = content
		m.Lang = moderation.DetectLanguage(content)
		return nil
	})
	if err != nil {
		return domain.Message{}, err
	}

	if err := s.index.Index(updated.ID, updated.Content); err != nil {
		s.log.Warn("Failed to re-index message", "message_id", updated.ID, "error", err)
	}

	s.emit(event.MessageUpdated{Message: updated})
	return updated, nil
}

func (s *FeedService) DeleteMessage(cmd feed.DeleteMessageCommand) error {
	if err := s.messages.DeleteMessage(cmd.MessageID, cmd.UserID); err != nil {
		return err
	}

	if err := s.index.Remove(cmd.MessageID); err != nil {
		s.log.Warn("Failed to remove message from index", "message_id", cmd.MessageID, "error", err)
	}

	s.emit(event.MessageDeleted{ID: cmd.MessageID})
	return nil
}

// emit hands the event to the fan-out worker without blocking the request.
// A full buffer drops the event; connected clients recover by re-fetching
// the list endpoint.
func (s *FeedService) emit(e event.DomainEvent) {
	select {
	case s.events <- e:
	default:
		s.log.Warn("Event buffer full, broadcast event dropped", "event", e.EventName())
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: content is required", errors.ErrInvalidInput)
	}
	if len([]rune(content)) > domain.MaxContentLength {
		return fmt.Errorf("%w: content must be %d characters or less",
			errors.ErrInvalidInput, domain.MaxContentLength)
	}
	return nil
}
