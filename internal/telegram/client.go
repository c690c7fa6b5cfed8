// Package telegram delivers safety alerts through the Telegram Bot API.
// Delivery is fire-and-forget from the monitoring cycle's point of view:
// sends are retried with linear backoff, and a final failure is returned
// to the caller to be logged, never to interrupt the cycle.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/buildwatch/safesite/internal/models"
)

// Client sends alert notifications to a single Telegram chat.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a Telegram client. Creating the client verifies the
// bot token against the Telegram API.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendAlert delivers a single alert message, retrying with linear backoff.
func (c *Client) SendAlert(alert *models.Alert) error {
	if err := alert.Validate(); err != nil {
		return fmt.Errorf("invalid alert: %w", err)
	}

	msg := tgbotapi.NewMessage(c.chatID, formatAlert(alert))

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed to send alert after %d retries: %w", c.maxRetries, lastErr)
}

// formatAlert renders the outbound message. The triage message already
// carries the severity emoji; the timestamp is appended for operators
// reading the channel later.
func formatAlert(alert *models.Alert) string {
	return fmt.Sprintf("%s\nScore: %d | %s", alert.Message, alert.Score, alert.TriggeredAt.Format("2006-01-02 15:04:05"))
}
