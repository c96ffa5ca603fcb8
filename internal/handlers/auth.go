package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/jdupreez/trolley/internal/models"
	"github.com/jdupreez/trolley/internal/obfuscate"
	"github.com/jdupreez/trolley/internal/repository"
	"github.com/jdupreez/trolley/internal/validation"
)

// ---------------------------------------------------------------------------
// RegisterHandler – /register <name> <surname> <email> <password> <cell>
// ---------------------------------------------------------------------------

// RegisterHandler creates a new user account in the remote store.
type RegisterHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(sessions *Sessions, logger *logrus.Logger) *RegisterHandler {
	return &RegisterHandler{sessions: sessions, logger: logger}
}

// Handle processes the /register command.
func (h *RegisterHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 5 {
		return reply(bot, message.Chat.ID,
			"❌ Please provide all fields.\n\n*Usage:*\n`/register <name> <surname> <email> <password> <cell number>`")
	}

	data := &models.RegisterData{
		Name:       args[0],
		Surname:    args[1],
		Email:      args[2],
		Password:   args[3],
		CellNumber: args[4],
	}

	if result := validation.Registration(data); !result.Valid {
		return reply(bot, message.Chat.ID, "❌ "+result.Message)
	}

	ctx := context.Background()

	existing, err := h.sessions.Users().GetByEmail(ctx, data.Email)
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return reply(bot, message.Chat.ID, "❌ An account with that email already exists. Try /login.")
	}

	// The store keeps the password in its obfuscated form only.
	data.Password = obfuscate.Encode(data.Password)

	user, err := h.sessions.Users().Register(ctx, data)
	if err != nil {
		return fmt.Errorf("register user: %w", err)
	}

	h.logger.Infof("Registered new user %s (id=%d)", user.Email, user.ID)
	return reply(bot, message.Chat.ID,
		fmt.Sprintf("✅ Welcome, %s! Your account is ready. Sign in with /login %s <password>", user.Name, user.Email))
}

// ---------------------------------------------------------------------------
// LoginHandler – /login <email> <password>
// ---------------------------------------------------------------------------

// LoginHandler authenticates a chat against the remote user collection.
type LoginHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewLoginHandler creates a new LoginHandler.
func NewLoginHandler(sessions *Sessions, logger *logrus.Logger) *LoginHandler {
	return &LoginHandler{sessions: sessions, logger: logger}
}

// Handle processes the /login command.
func (h *LoginHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if len(args) != 2 {
		return reply(bot, message.Chat.ID, "❌ *Usage:* `/login <email> <password>`")
	}
	email, password := args[0], args[1]

	if result := validation.Login(email, password); !result.Valid {
		return reply(bot, message.Chat.ID, "❌ "+result.Message)
	}

	ctx := context.Background()

	user, err := h.sessions.Users().GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user by email: %w", err)
	}
	if user == nil {
		return reply(bot, message.Chat.ID, "❌ User not found. Please /register first.")
	}

	stored, err := obfuscate.Decode(user.Password)
	if err != nil || stored != password {
		return reply(bot, message.Chat.ID, "❌ Invalid credentials.")
	}

	ctrl := h.sessions.Login(message.Chat.ID, user)
	h.logger.Infof("User %s signed in (chat_id=%d)", user.Email, message.Chat.ID)

	// Fetch the lists straight away so /lists renders without a reload.
	if err := ctrl.LoadLists(ctx); err != nil {
		return reply(bot, message.Chat.ID,
			fmt.Sprintf("✅ Signed in as %s, but: %s", user.FullName(), ctrl.Err()))
	}

	return reply(bot, message.Chat.ID,
		fmt.Sprintf("✅ Signed in as %s. You have %d list(s). Try /lists.", user.FullName(), len(ctrl.Lists())))
}

// ---------------------------------------------------------------------------
// LogoutHandler – /logout
// ---------------------------------------------------------------------------

// LogoutHandler ends a chat's session.
type LogoutHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewLogoutHandler creates a new LogoutHandler.
func NewLogoutHandler(sessions *Sessions, logger *logrus.Logger) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, logger: logger}
}

// Handle processes the /logout command.
func (h *LogoutHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	if _, ok := h.sessions.Controller(message.Chat.ID); !ok {
		return reply(bot, message.Chat.ID, "You are not signed in.")
	}
	h.sessions.Logout(message.Chat.ID)
	return reply(bot, message.Chat.ID, "👋 Signed out.")
}

// ---------------------------------------------------------------------------
// ProfileHandler – /profile [field=value ...]
// ---------------------------------------------------------------------------

// ProfileHandler shows the profile, or updates it when field=value pairs
// are given. A password change requires a matching confirm= value.
type ProfileHandler struct {
	sessions *Sessions
	logger   *logrus.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(sessions *Sessions, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{sessions: sessions, logger: logger}
}

var profileKeys = map[string]bool{
	"name": true, "surname": true, "email": true,
	"cell": true, "password": true, "confirm": true,
}

// Handle processes the /profile command.
func (h *ProfileHandler) Handle(bot *tgbotapi.BotAPI, message *tgbotapi.Message, args []string) error {
	ctrl, ok := h.sessions.require(bot, message)
	if !ok {
		return nil
	}
	user := ctrl.User()

	if len(args) == 0 {
		return reply(bot, message.Chat.ID, fmt.Sprintf(
			"👤 *Your profile*\nName: %s\nSurname: %s\nEmail: %s\nCell: %s\n\nUpdate with `/profile email=new@example.com` or `/profile password=secret confirm=secret`",
			user.Name, user.Surname, user.Email, user.CellNumber))
	}

	fields, err := parseKeyValues(args, profileKeys)
	if err != nil {
		return reply(bot, message.Chat.ID, "❌ "+err.Error())
	}

	result := validation.ProfileUpdate(fields["email"], fields["password"], fields["confirm"])
	if !result.Valid {
		return reply(bot, message.Chat.ID, "❌ "+result.Message)
	}

	patch := repository.UserPatch{}
	if v, ok := fields["name"]; ok {
		patch.Name = &v
	}
	if v, ok := fields["surname"]; ok {
		patch.Surname = &v
	}
	if v, ok := fields["email"]; ok {
		patch.Email = &v
	}
	if v, ok := fields["cell"]; ok {
		patch.CellNumber = &v
	}
	if v, ok := fields["password"]; ok && v != "" {
		encoded := obfuscate.Encode(v)
		patch.Password = &encoded
	}

	updated, err := h.sessions.Users().Update(context.Background(), user.ID, patch)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	h.sessions.UpdateUser(message.Chat.ID, updated)
	h.logger.Infof("User %d updated their profile", user.ID)
	return reply(bot, message.Chat.ID, "✅ Profile updated successfully.")
}

// reply sends a Markdown message to the chat.
func reply(bot *tgbotapi.BotAPI, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
