package handlers

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/sorting"
)

// ---------------------------------------------------------------------------
// SearchHandler – /search [query]
// ---------------------------------------------------------------------------

// SearchHandler searches all of the user's items across every list. With
// no query it clears search mode and restores the full list view.
type SearchHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(sessions *Sessions, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{sessions: sessions, logger: logger}
}

// Handle processes the /search command.
func (h *SearchHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}

	query := strings.Join(args, " ")
	if err := ctrl.SearchNow(context.Background(), query); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if strings.TrimSpace(query) == "" {
		return reply(bot, message.Chat.ID, "Search cleared. Showing all lists — /lists")
	}
	return reply(bot, message.Chat.ID, renderView(ctrl))
}

// ---------------------------------------------------------------------------
// SortHandler – /sort <name|category|date>
// ---------------------------------------------------------------------------

// SortHandler selects the display order for items and search results.
type SortHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewSortHandler creates a new SortHandler.
func NewSortHandler(sessions *Sessions, logger *logrus.Logger) *SortHandler {
	return &SortHandler{sessions: sessions, logger: logger}
}

// Handle processes the /sort command.
func (h *SortHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) != 1 {
		return reply(bot, message.Chat.ID,
			fmt.Sprintf("Current sort: *%s*\n\n*Usage:* `/sort name`, `/sort category` or `/sort date`", ctrl.SortKey()))
	}

	ctrl.SetSortKey(sorting.ParseKey(args[0]))
	return reply(bot, message.Chat.ID, fmt.Sprintf("✅ Sorting by *%s*.", ctrl.SortKey()))
}

// ---------------------------------------------------------------------------
// ViewHandler – /view [query string]
// ---------------------------------------------------------------------------

// ViewHandler prints the shareable view state as a query string, or
// restores one: search and sort survive being passed between chats.
type ViewHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewViewHandler creates a new ViewHandler.
func NewViewHandler(sessions *Sessions, logger *logrus.Logger) *ViewHandler {
	return &ViewHandler{sessions: sessions, logger: logger}
}

// Handle processes the /view command.
func (h *ViewHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}

	if len(args) == 0 {
		encoded := ctrl.EncodeQuery().Encode()
		if encoded == "" {
			return reply(bot, message.Chat.ID, "Default view: no search, sorted by date. Nothing to share.")
		}
		return reply(bot, message.Chat.ID,
			fmt.Sprintf("Shareable view state:\n`%s`\n\nRestore it with `/view %s`", encoded, encoded))
	}

	raw := strings.TrimPrefix(strings.Join(args, " "), "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ That view state could not be parsed.")
	}
	if err := ctrl.ApplyQuery(context.Background(), values); err != nil {
		return fmt.Errorf("apply view state: %w", err)
	}

	return reply(bot, message.Chat.ID, renderView(ctrl))
}
