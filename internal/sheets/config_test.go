package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		errMsg  string
		config  Config
		wantErr bool
	}{
		{
			name: "api key only is valid",
			config: Config{
				SpreadsheetID: "sheet-id",
				APIKey:        "key",
				ProductTab:    DefaultProductTab,
				LoginTab:      DefaultLoginTab,
				LogTab:        DefaultLogTab,
			},
			wantErr: false,
		},
		{
			name: "missing spreadsheet id",
			config: Config{
				APIKey:     "key",
				ProductTab: DefaultProductTab,
				LoginTab:   DefaultLoginTab,
				LogTab:     DefaultLogTab,
			},
			wantErr: true,
			errMsg:  "spreadsheet id is required",
		},
		{
			name: "partial oauth credentials",
			config: Config{
				SpreadsheetID: "sheet-id",
				ClientID:      "test-client",
				ClientSecret:  "", // Missing secret
				RefreshToken:  "test-token",
				ProductTab:    DefaultProductTab,
				LoginTab:      DefaultLoginTab,
				LogTab:        DefaultLogTab,
			},
			wantErr: true,
			errMsg:  "no authentication method configured",
		},
		{
			name: "oauth and service account together",
			config: Config{
				SpreadsheetID:      "sheet-id",
				ClientID:           "test-client",
				ClientSecret:       "secret",
				RefreshToken:       "token",
				ServiceAccountPath: "/path/to/key.json",
				ProductTab:         DefaultProductTab,
				LoginTab:           DefaultLoginTab,
				LogTab:             DefaultLogTab,
			},
			wantErr: true,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "missing tab name",
			config: Config{
				SpreadsheetID: "sheet-id",
				APIKey:        "key",
				ProductTab:    "",
				LoginTab:      DefaultLoginTab,
				LogTab:        DefaultLogTab,
			},
			wantErr: true,
			errMsg:  "all tab names must be set",
		},
		{
			name: "negative retry delay",
			config: Config{
				SpreadsheetID: "sheet-id",
				APIKey:        "key",
				ProductTab:    DefaultProductTab,
				LoginTab:      DefaultLoginTab,
				LogTab:        DefaultLogTab,
				RetryDelay:    -1 * time.Second,
			},
			wantErr: true,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfigCanAppend(t *testing.T) {
	readonly := DefaultConfig()
	readonly.SpreadsheetID = "sheet-id"
	readonly.APIKey = "key"
	assert.False(t, readonly.CanAppend())

	withSA := readonly
	withSA.APIKey = ""
	withSA.ServiceAccountPath = "/path/to/key.json"
	assert.True(t, withSA.CanAppend())

	withOAuth := readonly
	withOAuth.ClientID = "id"
	withOAuth.ClientSecret = "secret"
	withOAuth.RefreshToken = "token"
	assert.True(t, withOAuth.CanAppend())
}
