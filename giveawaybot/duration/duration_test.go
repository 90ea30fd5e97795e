package duration

import (
	"errors"
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    time.Duration
		wantErr bool
	}{
		{name: "seconds", token: "45s", want: 45 * time.Second},
		{name: "minutes", token: "10m", want: 10 * time.Minute},
		{name: "hours", token: "2h", want: 2 * time.Hour},
		{name: "days", token: "1d", want: 24 * time.Hour},
		{name: "zero", token: "0s", want: 0},
		{name: "large value", token: "365d", want: 365 * 24 * time.Hour},
		{name: "largest unit wins", token: "2h30m", want: 2 * time.Hour},
		{name: "day beats minute", token: "1d30m", want: 24 * time.Hour},
		{name: "no unit", token: "90", wantErr: true},
		{name: "no number", token: "h", wantErr: true},
		{name: "negative", token: "-5m", wantErr: true},
		{name: "garbage", token: "soon", wantErr: true},
		{name: "empty", token: "", wantErr: true},
		{name: "fractional", token: "1.5h", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
				return
			}
			if err != nil {
				var invalidErr *InvalidDurationError
				if !errors.As(err, &invalidErr) {
					t.Errorf("Parse(%q) error type = %T, want *InvalidDurationError", tt.token, err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}
