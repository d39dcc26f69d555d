package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/service"
)

// Client reads products and credentials from, and appends audit rows to,
// the backing spreadsheet.
type Client struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewClient creates a Google Sheets client.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		httpClient := oauth2.NewClient(ctx, jwtConfig.TokenSource(ctx))
		return sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	}

	if config.ClientID != "" {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))
		return sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	}

	// Read-only access via API key.
	return sheets.NewService(ctx,
		option.WithAPIKey(config.APIKey),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope))
}

// values fetches all rows of a tab, retrying transient API failures.
func (c *Client) values(ctx context.Context, tab string) ([][]any, error) {
	var rows [][]any
	err := common.WithRetry(ctx, func() error {
		resp, getErr := c.service.Spreadsheets.Values.
			Get(c.config.SpreadsheetID, tab).
			Context(ctx).
			Do()
		if getErr != nil {
			return mapAPIError(getErr)
		}
		rows = resp.Values
		return nil
	}, c.retryOpts())
	if err != nil {
		return nil, fmt.Errorf("%w: tab %q: %v", common.ErrSheetTransport, tab, err)
	}
	return rows, nil
}

// mapAPIError classifies Google API failures for the retry loop. Quota
// exhaustion backs off at the maximum delay; other client errors (bad
// spreadsheet ID, missing tab, permission denied) are permanent and
// stop the retries immediately.
func mapAPIError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %v", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return &common.RetryableError{Err: err, Retryable: false}
	}
	return err
}

func (c *Client) retryOpts() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  c.config.RetryAttempts,
		InitialDelay: c.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// cell returns the string value of column i, or empty when the row is
// short or the cell holds a non-string value that renders empty.
func cell(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if s, ok := row[i].(string); ok {
		return s
	}
	return fmt.Sprint(row[i])
}
