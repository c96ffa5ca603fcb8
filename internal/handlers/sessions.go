package handlers

import (
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/controller"
	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/repository"
	"github.com/jdupreez/trolley/internal/session"
)

// Sessions tracks which chats are authenticated and owns one controller
// per authenticated chat. Authenticated users are persisted through the
// session store so a restart keeps them signed in.
type Sessions struct {
	mu       sync.Mutex
	logger   *logrus.Logger
	users    repository.UserRepository
	lists    repository.ShoppingListRepository
	items    repository.ItemRepository
	store    *session.Store
	debounce time.Duration
	byChat   map[int64]*controller.Controller
}

// NewSessions creates the session manager.
func NewSessions(users repository.UserRepository, lists repository.ShoppingListRepository, items repository.ItemRepository, store *session.Store, debounce time.Duration, logger *logrus.Logger) *Sessions {
	return &Sessions{
		logger:   logger,
		users:    users,
		lists:    lists,
		items:    items,
		store:    store,
		debounce: debounce,
		byChat:   make(map[int64]*controller.Controller),
	}
}

// Restore rebuilds controllers for the sessions persisted by a previous
// run.
func (s *Sessions) Restore() error {
	users, err := s.store.Load()
	if err != nil {
		return fmt.Errorf("failed to restore sessions: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, user := range users {
		s.byChat[chatID] = controller.New(*user, s.lists, s.items, s.logger,
			controller.WithDebounce(s.debounce))
		s.logger.Infof("Restored session for %s (chat_id=%d)", user.Email, chatID)
	}
	return nil
}

// Login binds a chat to an authenticated user and persists the session.
func (s *Sessions) Login(chatID int64, user *models.User) *controller.Controller {
	ctrl := controller.New(*user, s.lists, s.items, s.logger,
		controller.WithDebounce(s.debounce))

	s.mu.Lock()
	s.byChat[chatID] = ctrl
	s.mu.Unlock()

	if err := s.store.Save(chatID, user); err != nil {
		s.logger.Errorf("Failed to persist session for chat %d: %v", chatID, err)
	}
	return ctrl
}

// Logout forgets a chat's session.
func (s *Sessions) Logout(chatID int64) {
	s.mu.Lock()
	delete(s.byChat, chatID)
	s.mu.Unlock()

	if err := s.store.Clear(chatID); err != nil {
		s.logger.Errorf("Failed to clear session for chat %d: %v", chatID, err)
	}
}

// Controller returns the chat's controller, if the chat is authenticated.
func (s *Sessions) Controller(chatID int64) (*controller.Controller, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.byChat[chatID]
	return ctrl, ok
}

// UpdateUser refreshes both the controller's and the persisted copy of the
// user record after a profile change.
func (s *Sessions) UpdateUser(chatID int64, user *models.User) {
	s.mu.Lock()
	if ctrl, ok := s.byChat[chatID]; ok {
		ctrl.SetUser(*user)
	}
	s.mu.Unlock()

	if err := s.store.Save(chatID, user); err != nil {
		s.logger.Errorf("Failed to persist session for chat %d: %v", chatID, err)
	}
}

// Users exposes the user repository for the auth handlers.
func (s *Sessions) Users() repository.UserRepository {
	return s.users
}

// require sends the sign-in prompt when a chat is not authenticated, the
// protected-route redirect of the bot surface.
func (s *Sessions) require(bot *tgbotapi.BotAPI, message *tgbotapi.Message) (*controller.Controller, bool) {
	ctrl, ok := s.Controller(message.Chat.ID)
	if !ok {
		msg := tgbotapi.NewMessage(message.Chat.ID, "🔒 Please sign in first: /login <email> <password>")
		bot.Send(msg)
		return nil, false
	}
	return ctrl, true
}
