package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/utsavgifts/catalogd/internal/sheets"
)

// LoadSheetsConfig loads the spreadsheet configuration. Precedence:
// 1. Viper configuration (config file or CATALOG_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.api_key"); v != "" {
		config.APIKey = v
	}
	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.product_tab"); v != "" {
		config.ProductTab = v
	}
	if v := viper.GetString("sheets.login_tab"); v != "" {
		config.LoginTab = v
	}
	if v := viper.GetString("sheets.log_tab"); v != "" {
		config.LogTab = v
	}

	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")
	}
	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadServerConfig loads the HTTP server settings.
func LoadServerConfig() ServerConfig {
	cfg := ServerConfig{
		Addr:          viper.GetString("server.addr"),
		SessionSecret: viper.GetString("server.session_secret"),
		SecureCookies: viper.GetBool("server.secure_cookies"),
		DatabasePath:  ExpandPath(viper.GetString("server.database_path")),
		LogoURL:       viper.GetString("server.logo_url"),
		HistoryLimit:  viper.GetInt("server.history_limit"),
		PDFMode:       viper.GetString("server.pdf_mode"),
		PublicURL:     viper.GetString("server.public_url"),
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.SessionSecret == "" {
		cfg.SessionSecret = os.Getenv("CATALOG_SESSION_SECRET")
	}
	return cfg
}

// ServerConfig holds the HTTP server settings from configuration.
type ServerConfig struct {
	Addr          string
	SessionSecret string
	DatabasePath  string
	LogoURL       string
	HistoryLimit  int
	SecureCookies bool

	// PDFMode selects the PDF strategy for /api/generate-pdf: "vector"
	// (default) composes directly, "browser" prints the served page with
	// headless Chrome and requires PublicURL.
	PDFMode   string
	PublicURL string
}
