// Package sheets provides Google Sheets API integration: the sheet acts as
// product database, credential list and audit log for the catalog.
package sheets

import (
	"fmt"
	"os"
	"time"

	"github.com/utsavgifts/catalogd/internal/common"
)

// Tab names within the backing spreadsheet.
const (
	DefaultProductTab = "STANDARD"
	DefaultLoginTab   = "login"
	DefaultLogTab     = "log"
)

// Config holds the configuration for the Google Sheets client.
type Config struct {
	SpreadsheetID      string
	APIKey             string
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	ProductTab         string
	LoginTab           string
	LogTab             string
	RetryAttempts      int
	RetryDelay         time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ProductTab:    DefaultProductTab,
		LoginTab:      DefaultLoginTab,
		LogTab:        DefaultLogTab,
		RetryAttempts: 3,
		RetryDelay:    time.Second,
	}
}

// LoadFromEnv loads the configuration from environment variables.
func (c *Config) LoadFromEnv() error {
	c.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	c.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")

	// OAuth2 credentials (required for audit appends)
	c.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	c.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")

	// Service account path (alternative to OAuth2)
	c.ServiceAccountPath = os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH")

	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: missing GOOGLE_SHEETS_SPREADSHEET_ID", common.ErrMissingConfig)
	}

	return c.Validate()
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("%w: spreadsheet id is required", common.ErrInvalidConfig)
	}

	hasAPIKey := c.APIKey != ""
	hasOAuth := c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
	hasServiceAccount := c.ServiceAccountPath != ""

	if !hasAPIKey && !hasOAuth && !hasServiceAccount {
		return fmt.Errorf("%w: no authentication method configured", common.ErrInvalidConfig)
	}

	if hasOAuth && hasServiceAccount {
		return fmt.Errorf("%w: multiple authentication methods configured; use either OAuth2 or service account", common.ErrInvalidConfig)
	}

	if c.ProductTab == "" || c.LoginTab == "" || c.LogTab == "" {
		return fmt.Errorf("%w: all tab names must be set", common.ErrInvalidConfig)
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("%w: retry attempts cannot be negative", common.ErrInvalidConfig)
	}

	if c.RetryDelay < 0 {
		return fmt.Errorf("%w: retry delay cannot be negative", common.ErrInvalidConfig)
	}

	return nil
}

// CanAppend reports whether the configured credentials allow writing
// audit rows. The API-key-only configuration is read-only.
func (c *Config) CanAppend() bool {
	return c.ServiceAccountPath != "" ||
		(c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != "")
}
