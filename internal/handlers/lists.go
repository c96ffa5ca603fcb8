package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/controller"
	"github.com/jdupreez/trolley/internal/models"
)

// ---------------------------------------------------------------------------
// ListsHandler – /lists
// ---------------------------------------------------------------------------

// ListsHandler renders the current view: the active search results when a
// search is in progress, otherwise every list with its items, both ordered
// by the current sort key.
type ListsHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewListsHandler creates a new ListsHandler.
func NewListsHandler(sessions *Sessions, logger *logrus.Logger) *ListsHandler {
	return &ListsHandler{sessions: sessions, logger: logger}
}

// Handle processes the /lists command.
func (h *ListsHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}

	if err := ctrl.LoadLists(context.Background()); err != nil {
		return reply(bot, message.Chat.ID, "❌ "+ctrl.Err())
	}

	return reply(bot, message.Chat.ID, renderView(ctrl))
}

// ---------------------------------------------------------------------------
// NewListHandler – /newlist <name>
// ---------------------------------------------------------------------------

// NewListHandler creates a shopping list.
type NewListHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewNewListHandler creates a new NewListHandler.
func NewNewListHandler(sessions *Sessions, logger *logrus.Logger) *NewListHandler {
	return &NewListHandler{sessions: sessions, logger: logger}
}

// Handle processes the /newlist command.
func (h *NewListHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}

	name := strings.Join(args, " ")
	list, err := ctrl.CreateList(context.Background(), name)
	if err != nil {
		return fmt.Errorf("create list: %w", err)
	}
	if list == nil {
		return reply(bot, message.Chat.ID, "❌ Please provide a list name.\n\n*Usage:*\n`/newlist Weekly groceries`")
	}

	return reply(bot, message.Chat.ID, fmt.Sprintf("✅ Created list *%s* (id %d).", list.Name, list.ID))
}

// ---------------------------------------------------------------------------
// RenameListHandler – /renamelist <id> <new name>
// ---------------------------------------------------------------------------

// RenameListHandler renames a shopping list in place.
type RenameListHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewRenameListHandler creates a new RenameListHandler.
func NewRenameListHandler(sessions *Sessions, logger *logrus.Logger) *RenameListHandler {
	return &RenameListHandler{sessions: sessions, logger: logger}
}

// Handle processes the /renamelist command.
func (h *RenameListHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) < 2 {
		return reply(bot, message.Chat.ID, "❌ *Usage:* `/renamelist <list id> <new name>`")
	}

	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ The list id must be a number.")
	}

	if !ctrl.BeginRename(listID) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No list with id %d.", listID))
	}
	ctrl.SetRenameDraft(strings.Join(args[1:], " "))
	if err := ctrl.SubmitRename(context.Background()); err != nil {
		return fmt.Errorf("rename list: %w", err)
	}

	list, _ := ctrl.ListByID(listID)
	return reply(bot, message.Chat.ID, fmt.Sprintf("✅ List %d is now *%s*.", listID, list.Name))
}

// ---------------------------------------------------------------------------
// DeleteListHandler – /dellist <id>
// ---------------------------------------------------------------------------

// DeleteListHandler marks a list for deletion and asks for confirmation
// with an inline keyboard. Nothing is deleted until the user confirms.
type DeleteListHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewDeleteListHandler creates a new DeleteListHandler.
func NewDeleteListHandler(sessions *Sessions, logger *logrus.Logger) *DeleteListHandler {
	return &DeleteListHandler{sessions: sessions, logger: logger}
}

// Handle processes the /dellist command.
func (h *DeleteListHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) != 1 {
		return reply(bot, message.Chat.ID, "❌ *Usage:* `/dellist <list id>`")
	}

	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ The list id must be a number.")
	}
	if !ctrl.RequestDeleteList(listID) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No list with id %d.", listID))
	}

	target, _ := ctrl.PendingDelete()
	return askDeleteConfirmation(bot, message.Chat.ID,
		"Delete this shopping list and all its items?", target.Name)
}

// ---------------------------------------------------------------------------
// DeleteCallbackHandler – confirm/cancel inline keyboard
// ---------------------------------------------------------------------------

// DeleteCallbackHandler consumes the pending delete when the user answers
// the confirmation keyboard.
type DeleteCallbackHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewDeleteCallbackHandler creates a new DeleteCallbackHandler.
func NewDeleteCallbackHandler(sessions *Sessions, logger *logrus.Logger) *DeleteCallbackHandler {
	return &DeleteCallbackHandler{sessions: sessions, logger: logger}
}

// HandleCallback processes a "delete:confirm" or "delete:cancel" answer.
func (h *DeleteCallbackHandler) HandleCallback(bot *tgbotapi.BotAPI, query *tgbotapi.CallbackQuery, data string) error {
	if query.Message == nil {
		return nil
	}
	chatID := query.Message.Chat.ID

	ctrl, ok := h.sessions.Controller(chatID)
	if !ok {
		return nil
	}

	target, pending := ctrl.PendingDelete()
	var text string
	switch data {
	case "confirm":
		if !pending {
			text = "Nothing left to delete."
			break
		}
		if err := ctrl.ConfirmDelete(context.Background()); err != nil {
			text = "❌ Delete failed. Please try again."
			break
		}
		text = fmt.Sprintf("🗑 Deleted *%s*.", target.Name)
	case "cancel":
		ctrl.CancelDelete()
		text = "Cancelled. Nothing was deleted."
	default:
		return nil
	}

	edit := tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(edit); err != nil {
		return fmt.Errorf("failed to edit confirmation message: %w", err)
	}
	return nil
}

// askDeleteConfirmation sends the confirmation dialog with Confirm/Cancel
// buttons.
func askDeleteConfirmation(bot *tgbotapi.BotAPI, chatID int64, question, name string) error {
	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("⚠️ %s\n\n*%s*", question, name))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗑 Delete", "delete:confirm"),
			tgbotapi.NewInlineKeyboardButtonData("Cancel", "delete:cancel"),
		),
	)
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send confirmation: %w", err)
	}
	return nil
}

// renderView formats the controller's current view for the chat.
func renderView(ctrl *controller.Controller) string {
	var b strings.Builder

	if ctrl.Searching() {
		results := ctrl.SearchResults()
		fmt.Fprintf(&b, "🔍 *Results for* `%s` (%d item(s), sorted by %s)\n",
			ctrl.SearchQuery(), len(results), ctrl.SortKey())
		for _, item := range results {
			b.WriteString(renderItem(item))
		}
		if len(results) == 0 {
			b.WriteString("_No items match your search._\n")
		}
		return b.String()
	}

	lists := ctrl.Lists()
	if len(lists) == 0 {
		return "You have no shopping lists yet. Create your first one with /newlist!"
	}

	fmt.Fprintf(&b, "🛒 *Your shopping lists* (sorted by %s)\n", ctrl.SortKey())
	for _, list := range lists {
		fmt.Fprintf(&b, "\n*%s* (id %d) — %d item(s)\n", list.Name, list.ID, len(list.Items))
		for _, item := range ctrl.ListItems(list.ID) {
			b.WriteString(renderItem(item))
		}
	}
	return b.String()
}

func renderItem(item models.ShoppingListItem) string {
	line := fmt.Sprintf("  • [%d] %s ×%d", item.ID, item.Name, item.Quantity)
	if item.Category != "" {
		line += " — " + item.Category
	}
	if item.Notes != "" {
		line += fmt.Sprintf(" _(%s)_", item.Notes)
	}
	if item.Image != "" {
		line += " 🖼"
	}
	return line + "\n"
}
