package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"

	"github.com/Freeeeeet/field_booking/internal/model"
)

// TelegramNotifier шлёт администраторам сообщения о событиях бронирования.
// Ошибки доставки только логируются и не влияют на обработку запроса.
type TelegramNotifier struct {
	bot    *bot.Bot
	chatID int64
	logger *zap.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger *zap.Logger) (*TelegramNotifier, error) {
	b, err := bot.New(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{
		bot:    b,
		chatID: chatID,
		logger: logger,
	}, nil
}

// ReservationCreated уведомляет о новой брони
func (n *TelegramNotifier) ReservationCreated(ctx context.Context, res *model.Reservation) {
	text := fmt.Sprintf(
		"Новая бронь #%d\nПлощадка: %d\nДата: %s\nВремя: %s–%s",
		res.ID, res.FieldID, res.Date, res.Start, res.End,
	)
	n.send(ctx, text)
}

// ReservationCanceled уведомляет об отмене брони пользователем
func (n *TelegramNotifier) ReservationCanceled(ctx context.Context, res *model.Reservation) {
	text := fmt.Sprintf(
		"Бронь #%d отменена пользователем\nПлощадка: %d\nДата: %s\nВремя: %s–%s",
		res.ID, res.FieldID, res.Date, res.Start, res.End,
	)
	n.send(ctx, text)
}

func (n *TelegramNotifier) send(ctx context.Context, text string) {
	_, err := n.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: n.chatID,
		Text:   text,
	})
	if err != nil {
		n.logger.Warn("Failed to send telegram notification", zap.Error(err))
	}
}
