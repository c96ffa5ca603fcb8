package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/controller"
)

var quantityRegex = regexp.MustCompile(`^x(\d+)$`)

// ---------------------------------------------------------------------------
// AddItemHandler – /additem <list id> <name> [xN] [#category] [img=URL]
// ---------------------------------------------------------------------------

// AddItemHandler fills a list's draft form and submits it. An optional
// quantity suffix like "x2", a "#category" tag, and an "img=" URL can be
// appended after the item name.
type AddItemHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewAddItemHandler creates a new AddItemHandler.
func NewAddItemHandler(sessions *Sessions, logger *logrus.Logger) *AddItemHandler {
	return &AddItemHandler{sessions: sessions, logger: logger}
}

// Handle processes the /additem command.
func (h *AddItemHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) < 2 {
		return reply(bot, message.Chat.ID,
			"❌ Please provide a list id and an item name.\n\n*Usage:*\n`/additem 3 Milk x2 #Dairy`\n`/additem 3 Rooibos tea img=https://example.com/tea.jpg`")
	}

	listID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ The list id must be a number.")
	}
	if _, ok := ctrl.ListByID(listID); !ok {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No list with id %d.", listID))
	}

	draft := parseItemArgs(args[1:])
	ctrl.SetDraft(listID, draft)

	item, err := ctrl.SubmitDraft(context.Background(), listID)
	if err != nil {
		if errors.Is(err, controller.ErrInvalidImageURL) {
			return reply(bot, message.Chat.ID, "❌ Please enter a valid image URL (must be http/https and end with jpg, png, gif, etc.)")
		}
		return fmt.Errorf("add item: %w", err)
	}
	if item == nil {
		return reply(bot, message.Chat.ID, "❌ Please provide an item name.")
	}

	return reply(bot, message.Chat.ID,
		fmt.Sprintf("✅ Added *%s* ×%d (id %d).", item.Name, item.Quantity, item.ID))
}

// parseItemArgs builds an item draft from command arguments: trailing
// "xN", "#category" and "img=" tokens are peeled off, the rest is the
// name.
func parseItemArgs(args []string) controller.ItemDraft {
	draft := controller.ItemDraft{Quantity: 1}

	var nameParts []string
	for _, arg := range args {
		if matches := quantityRegex.FindStringSubmatch(arg); matches != nil {
			qty, _ := strconv.Atoi(matches[1])
			draft.Quantity = qty
			continue
		}
		if strings.HasPrefix(arg, "#") && len(arg) > 1 {
			draft.Category = arg[1:]
			continue
		}
		if strings.HasPrefix(arg, "img=") {
			draft.Image = arg[len("img="):]
			continue
		}
		nameParts = append(nameParts, arg)
	}
	draft.Name = strings.Join(nameParts, " ")
	return draft
}

// ---------------------------------------------------------------------------
// EditItemHandler – /edititem <item id> field=value ...
// ---------------------------------------------------------------------------

// EditItemHandler opens the in-place edit for one item, applies the given
// field changes to the draft, and saves. Starting an edit abandons any
// other unsaved edit.
type EditItemHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewEditItemHandler creates a new EditItemHandler.
func NewEditItemHandler(sessions *Sessions, logger *logrus.Logger) *EditItemHandler {
	return &EditItemHandler{sessions: sessions, logger: logger}
}

var itemKeys = map[string]bool{
	"name": true, "qty": true, "category": true, "notes": true, "image": true,
}

// Handle processes the /edititem command.
func (h *EditItemHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) < 2 {
		return reply(bot, message.Chat.ID,
			"❌ *Usage:* `/edititem <item id> name=Bread qty=2 category=Bakery notes=whole wheat`")
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ The item id must be a number.")
	}
	item, found := ctrl.FindItem(itemID)
	if !found {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No item with id %d.", itemID))
	}

	fields, err := parseKeyValues(args[1:], itemKeys)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ "+err.Error())
	}

	if !ctrl.StartEdit(item.ShoppingListID, itemID) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No item with id %d.", itemID))
	}
	edit, _ := ctrl.Editing()
	draft := edit.Draft
	if v, ok := fields["name"]; ok {
		draft.Name = v
	}
	if v, ok := fields["qty"]; ok {
		qty, err := strconv.Atoi(v)
		if err != nil || qty < 1 {
			ctrl.CancelEdit()
			return reply(bot, message.Chat.ID, "❌ qty must be a positive number.")
		}
		draft.Quantity = qty
	}
	if v, ok := fields["category"]; ok {
		draft.Category = v
	}
	if v, ok := fields["notes"]; ok {
		draft.Notes = v
	}
	if v, ok := fields["image"]; ok {
		draft.Image = v
	}
	ctrl.SetEditDraft(draft)

	updated, err := ctrl.SaveEdit(context.Background())
	if err != nil {
		ctrl.CancelEdit()
		if errors.Is(err, controller.ErrInvalidImageURL) {
			return reply(bot, message.Chat.ID, "❌ Please enter a valid image URL (must be http/https and end with jpg, png, gif, etc.)")
		}
		return fmt.Errorf("edit item: %w", err)
	}
	if updated == nil {
		return reply(bot, message.Chat.ID, "❌ The item name cannot be empty.")
	}

	return reply(bot, message.Chat.ID, fmt.Sprintf("✅ Updated *%s*.", updated.Name))
}

// ---------------------------------------------------------------------------
// DeleteItemHandler – /delitem <item id>
// ---------------------------------------------------------------------------

// DeleteItemHandler marks an item for deletion and asks for confirmation.
type DeleteItemHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewDeleteItemHandler creates a new DeleteItemHandler.
func NewDeleteItemHandler(sessions *Sessions, logger *logrus.Logger) *DeleteItemHandler {
	return &DeleteItemHandler{sessions: sessions, logger: logger}
}

// Handle processes the /delitem command.
func (h *DeleteItemHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	if len(args) != 1 {
		return reply(bot, message.Chat.ID, "❌ *Usage:* `/delitem <item id>`")
	}

	itemID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ The item id must be a number.")
	}
	item, found := ctrl.FindItem(itemID)
	if !found {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No item with id %d.", itemID))
	}
	if !ctrl.RequestDeleteItem(item.ShoppingListID, itemID) {
		return reply(bot, message.Chat.ID, fmt.Sprintf("❌ No item with id %d.", itemID))
	}

	return askDeleteConfirmation(bot, message.Chat.ID, "Delete this item?", item.Name)
}

// parseKeyValues parses "key=value" tokens; a token without "=" continues
// the previous value, so values may contain spaces.
func parseKeyValues(args []string, keys map[string]bool) (map[string]string, error) {
	fields := map[string]string{}
	current := ""
	for _, arg := range args {
		if key, value, found := strings.Cut(arg, "="); found && keys[key] {
			current = key
			fields[key] = value
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("unexpected %q: use field=value pairs", arg)
		}
		fields[current] += " " + arg
	}
	return fields, nil
}
