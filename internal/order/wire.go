package order

import (
	"go.uber.org/zap"

	"knox-bundles/internal/config"
	"knox-bundles/internal/order/repository"
	"knox-bundles/internal/order/service"
)

func NewModule(values repository.ValuesAPI, cfg *config.Config, logger *zap.Logger) *service.WorkflowService {
	ledgerRepo := repository.NewSheetLedgerRepository(values, cfg.Sheets.SheetName)

	return service.NewWorkflowService(ledgerRepo, cfg.Telegram.OperatorChatID, logger)
}
