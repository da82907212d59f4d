package telegram

import (
	"errors"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	sent []tgbotapi.Chattable
	err  error
}

func (s *recordingSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	return tgbotapi.Message{}, s.err
}

func TestSendMessage(t *testing.T) {
	s := &recordingSender{}
	c := &client{bot: s, chatID: 42}

	require.NoError(t, c.SendMessage("*hello*"))
	require.Len(t, s.sent, 1)
	msg := s.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, int64(42), msg.ChatID)
	assert.Equal(t, "*hello*", msg.Text)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.True(t, msg.DisableWebPagePreview)

	s.err = errors.New("flood wait")
	assert.Error(t, c.SendMessage("again"))
}

func TestNewMessageTruncates(t *testing.T) {
	msg := newMessage(1, strings.Repeat("ü", maxMessageLength+10))
	assert.Equal(t, maxMessageLength, len([]rune(msg.Text)))
}

func TestNewClientRequiresChat(t *testing.T) {
	_, err := NewClient("token", 0)
	assert.ErrorIs(t, err, errNoChat)
}
