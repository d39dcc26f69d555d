package sheets

import (
	"context"
	"fmt"
	"time"

	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/model"
)

// AppendAuditRow appends a timestamped audit row to the log tab. Writes
// are retried with backoff; the audit sink decides whether a final
// failure is surfaced or swallowed.
func (c *Client) AppendAuditRow(ctx context.Context, entry model.AuditEntry) error {
	if !c.config.CanAppend() {
		return fmt.Errorf("%w: audit appends need OAuth2 or service account credentials", common.ErrMissingConfig)
	}

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	valueRange := &sheetsapi.ValueRange{
		Values: [][]any{{
			ts.Format(time.RFC3339),
			entry.Email,
			string(entry.Status),
			entry.Message,
			entry.IPAddress,
		}},
	}

	err := common.WithRetry(ctx, func() error {
		_, appendErr := c.service.Spreadsheets.Values.
			Append(c.config.SpreadsheetID, c.config.LogTab, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if appendErr != nil {
			return mapAPIError(appendErr)
		}
		return nil
	}, c.retryOpts())

	if err != nil {
		return fmt.Errorf("failed to append audit row: %w", err)
	}

	c.logger.Debug("appended audit row", "email", entry.Email, "status", entry.Status)
	return nil
}
