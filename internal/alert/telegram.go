// Package alert sends operator notifications to a Telegram admin chat.
// Outbound only: the bot never reads updates.
package alert

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// minInterval throttles repeated alerts so a flapping downstream does not
// flood the admin chat.
const minInterval = 5 * time.Minute

// TelegramNotifier delivers alert messages to a single admin chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	logger *slog.Logger

	mu       sync.Mutex
	lastSent map[string]time.Time
}

type TelegramConfig struct {
	Token  string
	ChatID int64
	Logger *slog.Logger
}

func NewTelegram(cfg TelegramConfig) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}
	cfg.Logger.Info("alert notifier connected", "username", bot.Self.UserName)
	return &TelegramNotifier{
		bot:      bot,
		chatID:   cfg.ChatID,
		logger:   cfg.Logger,
		lastSent: make(map[string]time.Time),
	}, nil
}

// Notify sends text to the admin chat. Identical messages within minInterval
// are dropped. Failures are logged and swallowed: alerting must never take
// down event processing.
func (n *TelegramNotifier) Notify(text string) {
	n.mu.Lock()
	last, seen := n.lastSent[text]
	if seen && time.Since(last) < minInterval {
		n.mu.Unlock()
		return
	}
	n.lastSent[text] = time.Now()
	n.mu.Unlock()

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Warn("alert delivery failed", "err", err)
	}
}
