package bot

import (
	"context"
	"fmt"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"knox-bundles/internal/domain"
	apperrors "knox-bundles/internal/errors"
)

// Mock implementation

type mockWorkflow struct {
	SubmitFunc          func(ctx context.Context, raw string) (domain.Order, error)
	ListForOperatorFunc func(ctx context.Context, requesterID string) ([]domain.Order, error)
	ConfirmFunc         func(ctx context.Context, requesterID, reference string) (domain.Order, error)
}

func (m *mockWorkflow) Submit(ctx context.Context, raw string) (domain.Order, error) {
	return m.SubmitFunc(ctx, raw)
}

func (m *mockWorkflow) ListForOperator(ctx context.Context, requesterID string) ([]domain.Order, error) {
	return m.ListForOperatorFunc(ctx, requesterID)
}

func (m *mockWorkflow) Confirm(ctx context.Context, requesterID, reference string) (domain.Order, error) {
	return m.ConfirmFunc(ctx, requesterID, reference)
}

type mockSender struct {
	sent []tgbotapi.Chattable
}

func (m *mockSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	m.sent = append(m.sent, c)
	return tgbotapi.Message{}, nil
}

func newTestBot(workflow Workflow) (*Bot, *mockSender) {
	sender := &mockSender{}
	return &Bot{
		sender:   sender,
		workflow: workflow,
		logger:   zap.NewNop(),
	}, sender
}

func (m *mockSender) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.sent)

	msg, ok := m.sent[len(m.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "expected a MessageConfig")
	return msg.Text
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	command := text
	for i, r := range text {
		if r == ' ' {
			command = text[:i]
			break
		}
	}

	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: len(command)},
			},
		},
	}
}

func webAppUpdate(chatID int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Chat:       &tgbotapi.Chat{ID: chatID},
			WebAppData: &tgbotapi.WebAppData{Data: data},
		},
	}
}

// Tests

func TestHandleUpdate_Start(t *testing.T) {
	b, sender := newTestBot(&mockWorkflow{})

	b.handleUpdate(context.Background(), commandUpdate(1, "/start"))

	assert.Contains(t, sender.lastText(t), "Knox Bundles")
}

func TestHandleUpdate_SubmissionRepliesWithReference(t *testing.T) {
	var gotRaw string

	workflow := &mockWorkflow{
		SubmitFunc: func(ctx context.Context, raw string) (domain.Order, error) {
			gotRaw = raw
			return domain.Order{Reference: "KNOX17566425600042", Name: "Amy", Bundle: "Starter", Price: "10"}, nil
		},
	}
	b, sender := newTestBot(workflow)

	payload := `{"name":"Amy","contact":"amy@x.com","bundle":"Starter","price":"10"}`
	b.handleUpdate(context.Background(), webAppUpdate(1, payload))

	assert.Equal(t, payload, gotRaw)
	assert.Contains(t, sender.lastText(t), "KNOX17566425600042")
}

func TestHandleUpdate_SubmissionValidationError(t *testing.T) {
	workflow := &mockWorkflow{
		SubmitFunc: func(ctx context.Context, raw string) (domain.Order, error) {
			return domain.Order{}, apperrors.NewValidationError("validation failed")
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), webAppUpdate(1, `{}`))

	assert.Contains(t, sender.lastText(t), "order form")
}

func TestHandleUpdate_SubmissionStoreError(t *testing.T) {
	workflow := &mockWorkflow{
		SubmitFunc: func(ctx context.Context, raw string) (domain.Order, error) {
			return domain.Order{}, apperrors.NewStoreError("appending order row", fmt.Errorf("googleapi: Error 503"))
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), webAppUpdate(1, `{"name":"Amy"}`))

	text := sender.lastText(t)
	assert.Contains(t, text, "temporarily unavailable")
	assert.NotContains(t, text, "googleapi")
}

func TestHandleUpdate_OrdersPassesRequesterID(t *testing.T) {
	var gotRequester string

	workflow := &mockWorkflow{
		ListForOperatorFunc: func(ctx context.Context, requesterID string) ([]domain.Order, error) {
			gotRequester = requesterID
			return []domain.Order{{Reference: "KNOX1", Name: "Amy", Status: domain.StatusConfirmed}}, nil
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(12345, "/orders"))

	assert.Equal(t, "12345", gotRequester)
	text := sender.lastText(t)
	assert.Contains(t, text, "Amy")
	assert.Contains(t, text, "Confirmed")
}

func TestHandleUpdate_OrdersEmptyLedger(t *testing.T) {
	workflow := &mockWorkflow{
		ListForOperatorFunc: func(ctx context.Context, requesterID string) ([]domain.Order, error) {
			return []domain.Order{}, nil
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(12345, "/orders"))

	assert.Contains(t, sender.lastText(t), "No orders")
}

func TestHandleUpdate_OrdersUnauthorized(t *testing.T) {
	workflow := &mockWorkflow{
		ListForOperatorFunc: func(ctx context.Context, requesterID string) ([]domain.Order, error) {
			return nil, apperrors.NewUnauthorizedError("operator access required")
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(99999, "/orders"))

	text := sender.lastText(t)
	assert.Contains(t, text, "operator")
	// No information about who the real operator is.
	assert.NotContains(t, text, "12345")
}

func TestHandleUpdate_ConfirmSuccess(t *testing.T) {
	var gotReference string

	workflow := &mockWorkflow{
		ConfirmFunc: func(ctx context.Context, requesterID, reference string) (domain.Order, error) {
			gotReference = reference
			return domain.Order{Reference: reference, Name: "Amy", Status: domain.StatusConfirmed}, nil
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(12345, "/confirm KNOX1"))

	assert.Equal(t, "KNOX1", gotReference)
	assert.Contains(t, sender.lastText(t), "Confirmed")
}

func TestHandleUpdate_ConfirmMissingArgument(t *testing.T) {
	workflow := &mockWorkflow{
		ConfirmFunc: func(ctx context.Context, requesterID, reference string) (domain.Order, error) {
			return domain.Order{}, apperrors.NewValidationError("reference is required")
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(12345, "/confirm"))

	assert.Contains(t, sender.lastText(t), "/confirm")
}

func TestHandleUpdate_ConfirmNotFound(t *testing.T) {
	workflow := &mockWorkflow{
		ConfirmFunc: func(ctx context.Context, requesterID, reference string) (domain.Order, error) {
			return domain.Order{}, apperrors.NewNotFoundError("order NOPE not found")
		},
	}
	b, sender := newTestBot(workflow)

	b.handleUpdate(context.Background(), commandUpdate(12345, "/confirm NOPE"))

	assert.Contains(t, sender.lastText(t), "NOPE")
}

func TestHandleUpdate_IgnoresNonMessages(t *testing.T) {
	b, sender := newTestBot(&mockWorkflow{})

	b.handleUpdate(context.Background(), tgbotapi.Update{})
	b.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 1}, Text: "hello"},
	})

	assert.Empty(t, sender.sent)
}

func TestReply_UsesMarkdown(t *testing.T) {
	b, sender := newTestBot(&mockWorkflow{})

	b.reply(1, "*hi*", zap.NewNop())

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0].(tgbotapi.MessageConfig)
	assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
	assert.Equal(t, int64(1), msg.ChatID)
}
