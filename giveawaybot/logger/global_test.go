package logger

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type recordingHandler struct {
	records *[]slog.Record
}

func (h recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordingHandler) Handle(_ context.Context, r slog.Record) error {
	*h.records = append(*h.records, r)
	return nil
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h recordingHandler) WithGroup(string) slog.Handler { return h }

func capture(t *testing.T) *[]slog.Record {
	t.Helper()
	var records []slog.Record
	prev := slog.Default()
	slog.SetDefault(slog.New(recordingHandler{records: &records}))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &records
}

func recordAttr(r slog.Record, key string) string {
	var value string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			value = a.Value.String()
			return false
		}
		return true
	})
	return value
}

func TestLogCommandDone(t *testing.T) {
	tests := []struct {
		name        string
		took        time.Duration
		err         error
		wantLevel   slog.Level
		wantMessage string
		wantStatus  string
	}{
		{
			name:        "success",
			took:        50 * time.Millisecond,
			wantLevel:   slog.LevelInfo,
			wantMessage: "Command completed",
			wantStatus:  "success",
		},
		{
			name:        "slow",
			took:        3 * time.Second,
			wantLevel:   slog.LevelWarn,
			wantMessage: "Command executed slowly",
			wantStatus:  "slow",
		},
		{
			name:        "failed",
			took:        50 * time.Millisecond,
			err:         errors.New("boom"),
			wantLevel:   slog.LevelError,
			wantMessage: "Command failed",
			wantStatus:  "failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := capture(t)
			LogCommandDone("reroll", tt.took, tt.err, slog.String("user_id", "1"))

			if len(*records) != 1 {
				t.Fatalf("logged %d records, want 1", len(*records))
			}
			r := (*records)[0]
			if r.Level != tt.wantLevel {
				t.Errorf("level = %v, want %v", r.Level, tt.wantLevel)
			}
			if r.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", r.Message, tt.wantMessage)
			}
			if got := recordAttr(r, "status"); got != tt.wantStatus {
				t.Errorf("status = %q, want %q", got, tt.wantStatus)
			}
			if got := recordAttr(r, "type"); got != "cmd" {
				t.Errorf("type = %q, want %q", got, "cmd")
			}
			if got := recordAttr(r, "user_id"); got != "1" {
				t.Errorf("user_id = %q, want passed through", got)
			}
		})
	}
}

func TestLogCommandStart(t *testing.T) {
	records := capture(t)
	LogCommandStart("giveaway", slog.String("user_id", "1"))

	if len(*records) != 1 {
		t.Fatalf("logged %d records, want 1", len(*records))
	}
	r := (*records)[0]
	if r.Message != "Command started" || r.Level != slog.LevelInfo {
		t.Errorf("record = %q at %v, want started at info", r.Message, r.Level)
	}
	if got := recordAttr(r, "name"); got != "giveaway" {
		t.Errorf("name = %q, want %q", got, "giveaway")
	}
}

func TestLogSystemAndError(t *testing.T) {
	records := capture(t)

	LogSystem("Bot is running")
	LogError("Gateway lost", errors.New("eof"))

	if len(*records) != 2 {
		t.Fatalf("logged %d records, want 2", len(*records))
	}
	if got := recordAttr((*records)[0], "type"); got != "sys" {
		t.Errorf("system type = %q, want %q", got, "sys")
	}
	if (*records)[1].Level != slog.LevelError {
		t.Errorf("error level = %v, want error", (*records)[1].Level)
	}
	if got := recordAttr((*records)[1], "type"); got != "error" {
		t.Errorf("error type = %q, want %q", got, "error")
	}
}
