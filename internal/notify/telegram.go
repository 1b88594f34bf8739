package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier delivers due-review reminders to a Telegram chat.
// It only sends; all practice interaction happens elsewhere.
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %v", err)
	}
	return &TelegramNotifier{api: api, chatID: chatID}, nil
}

// SendReminder tells the learner how many items are waiting for review
func (n *TelegramNotifier) SendReminder(count int) error {
	text := fmt.Sprintf("You have %d words due for review. Time to practice!", count)
	if count == 1 {
		text = "You have 1 word due for review. Time to practice!"
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send reminder: %v", err)
	}
	return nil
}
