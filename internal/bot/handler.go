package bot

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "knox-bundles/internal/errors"
	"knox-bundles/internal/order/message"
)

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}

	traceID := uuid.New().String()
	logger := b.logger.With(zap.String("traceId", traceID), zap.Int64("chatId", msg.Chat.ID))

	switch {
	case msg.WebAppData != nil:
		b.handleSubmission(ctx, msg, logger)
	case msg.IsCommand():
		switch msg.Command() {
		case "start":
			b.reply(msg.Chat.ID, message.Welcome(), logger)
		case "orders":
			b.handleOrders(ctx, msg, logger)
		case "confirm":
			b.handleConfirm(ctx, msg, logger)
		default:
			logger.Debug("ignoring unknown command", zap.String("command", msg.Command()))
		}
	}
}

func (b *Bot) handleSubmission(ctx context.Context, msg *tgbotapi.Message, logger *zap.Logger) {
	order, err := b.workflow.Submit(ctx, msg.WebAppData.Data)
	if err != nil {
		if _, ok := apperrors.IsValidationError(err); ok {
			b.reply(msg.Chat.ID, message.InvalidSubmission(), logger)
			return
		}
		b.replyError(msg.Chat.ID, err, logger)
		return
	}

	b.reply(msg.Chat.ID, message.Confirmation(order), logger)
}

func (b *Bot) handleOrders(ctx context.Context, msg *tgbotapi.Message, logger *zap.Logger) {
	orders, err := b.workflow.ListForOperator(ctx, requesterID(msg))
	if err != nil {
		b.replyError(msg.Chat.ID, err, logger)
		return
	}

	if len(orders) == 0 {
		b.reply(msg.Chat.ID, message.NoOrders(), logger)
		return
	}

	b.reply(msg.Chat.ID, message.OrderList(orders), logger)
}

func (b *Bot) handleConfirm(ctx context.Context, msg *tgbotapi.Message, logger *zap.Logger) {
	reference := msg.CommandArguments()

	order, err := b.workflow.Confirm(ctx, requesterID(msg), reference)
	if err != nil {
		if _, ok := apperrors.IsValidationError(err); ok {
			b.reply(msg.Chat.ID, message.MissingReference(), logger)
			return
		}
		if _, ok := apperrors.IsNotFoundError(err); ok {
			b.reply(msg.Chat.ID, message.NotFound(reference), logger)
			return
		}
		b.replyError(msg.Chat.ID, err, logger)
		return
	}

	b.reply(msg.Chat.ID, message.Confirmed(order), logger)
}

// replyError maps the remaining error kinds to user-visible texts. Raw store
// detail never reaches the chat; unexpected errors get the generic text too.
func (b *Bot) replyError(chatID int64, err error, logger *zap.Logger) {
	if _, ok := apperrors.IsUnauthorizedError(err); ok {
		b.reply(chatID, message.Unauthorized(), logger)
		return
	}
	if _, ok := apperrors.IsStoreError(err); ok {
		b.reply(chatID, message.Unavailable(), logger)
		return
	}

	logger.Error("unexpected workflow error", zap.Error(err))
	b.reply(chatID, message.Unavailable(), logger)
}

func (b *Bot) reply(chatID int64, text string, logger *zap.Logger) {
	out := tgbotapi.NewMessage(chatID, text)
	out.ParseMode = tgbotapi.ModeMarkdown

	if _, err := b.sender.Send(out); err != nil {
		logger.Error("sending reply", zap.Error(err))
	}
}

func requesterID(msg *tgbotapi.Message) string {
	return strconv.FormatInt(msg.Chat.ID, 10)
}
