package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// HelpHandler handles the /help command
type HelpHandler struct {
	logger *logrus.Logger
}

func NewHelpHandler(logger *logrus.Logger) *HelpHandler {
	return &HelpHandler{logger: logger}
}

func (h *HelpHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	helpText := `📚 *Trolley Help*

*Account:*
• /register <name> <surname> <email> <password> <cell> - Create account
• /login <email> <password> - Sign in
• /logout - Sign out
• /profile [field=value ...] - Show or update your profile

*Lists:*
• /lists - Show your lists and items
• /newlist <name> - Create a list
• /renamelist <id> <name> - Rename a list
• /dellist <id> - Delete a list (asks for confirmation)

*Items:*
• /additem <list id> <name> [xN] [#category] [img=URL] - Add an item
• /edititem <item id> field=value ... - Edit an item
• /delitem <item id> - Delete an item (asks for confirmation)

*View:*
• /search <text> - Search all your items (empty to clear)
• /sort name|category|date - Change the display order
• /view - Share or restore a search/sort state

_Item fields: name, qty, category, notes, image_`

	msg := tgbotapi.NewMessage(message.Chat.ID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown

	_, err := bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send help message: %w", err)
	}

	h.logger.WithFields(logrus.Fields{
		"chat_id": message.Chat.ID,
		"user_id": message.From.ID,
	}).Info("Sent help message")

	return nil
}
