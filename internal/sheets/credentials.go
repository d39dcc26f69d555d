package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/utsavgifts/catalogd/internal/common"
	"github.com/utsavgifts/catalogd/internal/model"
)

// adminMarker in the third credential column grants admin access.
const adminMarker = "SUPREME"

// CheckCredentials compares email and password against the login tab:
// column A is the email, column B the password, column C an optional
// admin marker. A failed match returns common.ErrInvalidCredentials.
func (c *Client) CheckCredentials(ctx context.Context, email, password string) (*model.Session, error) {
	rows, err := c.values(ctx, c.config.LoginTab)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}

	if len(rows) <= 1 {
		return nil, common.ErrInvalidCredentials
	}

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		if cell(row, 0) != email || cell(row, 1) != password {
			continue
		}
		return &model.Session{
			Email:         email,
			Authenticated: true,
			IsAdmin:       cell(row, 2) == adminMarker,
			LoginTime:     time.Now().UTC(),
		}, nil
	}

	return nil, common.ErrInvalidCredentials
}
