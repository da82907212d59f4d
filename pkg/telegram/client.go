package telegram

import (
	"errors"

	"golang-stock-sentiment/pkg/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLength is Telegram's limit for one message, in characters.
const maxMessageLength = 4096

var errNoChat = errors.New("telegram chat id is not configured")

// Notifier sends a formatted message to a chat.
type Notifier interface {
	SendMessage(text string) error
}

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type client struct {
	bot    sender
	chatID int64
}

// NewClient creates a Telegram notifier for one chat. It validates the token against the Bot API.
func NewClient(botToken string, chatID int64) (Notifier, error) {
	if chatID == 0 {
		return nil, errNoChat
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	return &client{bot: bot, chatID: chatID}, nil
}

// SendMessage sends text as Markdown without link previews. Overlong text is cut to the Telegram limit.
func (c *client) SendMessage(text string) error {
	msg := newMessage(c.chatID, text)
	_, err := c.bot.Send(msg)
	return err
}

func newMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, utils.TruncateRunes(text, maxMessageLength))
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	return msg
}
