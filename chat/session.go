package chat

import (
	"encoding/json"
	"errors"

	"github.com/docpoint/appointment-server/models"
	"gorm.io/gorm"
)

const maxHistory = 10

// Exchange is one user/assistant turn kept in the session context.
type Exchange struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
	Timestamp string `json:"timestamp"`
}

// Context is the conversation state stored in the chat_sessions row.
type Context struct {
	LastMessage  string     `json:"last_message,omitempty"`
	LastResponse string     `json:"last_response,omitempty"`
	History      []Exchange `json:"conversation_history,omitempty"`
}

// SaveSession overwrites the user's session blob wholesale. The row is the
// sole source of truth; there is no in-process cache to keep in sync.
func SaveSession(g *gorm.DB, userID uint, data string) error {
	if data == "" {
		data = "{}"
	}

	var session models.ChatSession
	err := g.Where("user_id = ?", userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = models.ChatSession{UserID: userID, SessionData: data}
		return g.Create(&session).Error
	}
	if err != nil {
		return err
	}

	session.SessionData = data
	return g.Save(&session).Error
}

// GetSession returns the stored blob, or "{}" when the user has none yet.
func GetSession(g *gorm.DB, userID uint) (string, error) {
	var session models.ChatSession
	err := g.Where("user_id = ?", userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "{}", nil
	}
	if err != nil {
		return "", err
	}
	return session.SessionData, nil
}

// AppendExchange loads the context, records one more exchange (keeping only
// the most recent ones) and stores the context back.
func AppendExchange(g *gorm.DB, userID uint, exchange Exchange) error {
	raw, err := GetSession(g, userID)
	if err != nil {
		return err
	}

	var ctx Context
	if err := json.Unmarshal([]byte(raw), &ctx); err != nil {
		ctx = Context{}
	}

	ctx.LastMessage = exchange.User
	ctx.LastResponse = exchange.Assistant
	ctx.History = append(ctx.History, exchange)
	if len(ctx.History) > maxHistory {
		ctx.History = ctx.History[len(ctx.History)-maxHistory:]
	}

	data, err := json.Marshal(ctx)
	if err != nil {
		return err
	}
	return SaveSession(g, userID, string(data))
}
