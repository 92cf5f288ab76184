package config

import (
	"testing"
	"time"
)

func TestTimeoutConfigDefaults(t *testing.T) {
	config := DefaultConfig()

	if config.Analysis.Timeout != 30*time.Second {
		t.Errorf("Expected Timeout to be 30s, got %v", config.Analysis.Timeout)
	}
	if config.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("Expected Debounce to be 200ms, got %v", config.Watch.Debounce)
	}
}

func TestTimeoutValidation(t *testing.T) {
	tests := []struct {
		name     string
		timeout  time.Duration
		debounce time.Duration
		wantErr  string
	}{
		{name: "valid timeouts", timeout: time.Minute, debounce: time.Second},
		{name: "zero disables timeout", timeout: 0, debounce: 0},
		{name: "negative timeout", timeout: -time.Second, wantErr: "timeout must be non-negative"},
		{name: "negative debounce", debounce: -time.Millisecond, wantErr: "watch debounce must be non-negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.Analysis.Timeout = tt.timeout
			config.Watch.Debounce = tt.debounce

			err := config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Errorf("Expected error %q, got %v", tt.wantErr, err)
			}
		})
	}
}
