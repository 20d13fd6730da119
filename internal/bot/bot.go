package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"knox-bundles/internal/domain"
)

// Workflow is the slice of the order workflow the transport needs.
type Workflow interface {
	Submit(ctx context.Context, raw string) (domain.Order, error)
	ListForOperator(ctx context.Context, requesterID string) ([]domain.Order, error)
	Confirm(ctx context.Context, requesterID, reference string) (domain.Order, error)
}

// Sender abstracts BotAPI.Send so handlers can be tested without the network.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	workflow Workflow
	logger   *zap.Logger
}

func New(token string, workflow Workflow, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram client: %w", err)
	}

	return &Bot{
		api:      api,
		sender:   api,
		workflow: workflow,
		logger:   logger,
	}, nil
}

// Run long-polls for updates until the context is canceled. Each update is
// handled synchronously.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}
