package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Telegram TelegramConfig
	Sheets   SheetsConfig
	WebApp   WebAppConfig
	Log      LogConfig
}

type TelegramConfig struct {
	Token string
	// OperatorChatID is the single chat allowed to run /orders and /confirm.
	OperatorChatID string
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
}

type WebAppConfig struct {
	Port        int
	AssetsDir   string
	BundlesFile string
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.AutomaticEnv()

	viper.SetDefault("SHEETS_CREDENTIALS_FILE", "creds.json")
	viper.SetDefault("SHEET_NAME", "Sheet1")
	viper.SetDefault("WEBAPP_PORT", 8080)
	viper.SetDefault("WEBAPP_ASSETS_DIR", "web")
	viper.SetDefault("BUNDLES_FILE", "web/bundles.json")
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:          viper.GetString("TELEGRAM_TOKEN"),
			OperatorChatID: viper.GetString("OPERATOR_CHAT_ID"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: viper.GetString("SHEETS_CREDENTIALS_FILE"),
			SpreadsheetID:   viper.GetString("SPREADSHEET_ID"),
			SheetName:       viper.GetString("SHEET_NAME"),
		},
		WebApp: WebAppConfig{
			Port:        viper.GetInt("WEBAPP_PORT"),
			AssetsDir:   viper.GetString("WEBAPP_ASSETS_DIR"),
			BundlesFile: viper.GetString("BUNDLES_FILE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate keeps a half-configured process from starting: without a token, an
// operator and a spreadsheet there is no workflow to run.
func (c *Config) validate() error {
	var missing []string

	if c.Telegram.Token == "" {
		missing = append(missing, "TELEGRAM_TOKEN")
	}
	if c.Telegram.OperatorChatID == "" {
		missing = append(missing, "OPERATOR_CHAT_ID")
	}
	if c.Sheets.SpreadsheetID == "" {
		missing = append(missing, "SPREADSHEET_ID")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}

	return nil
}
