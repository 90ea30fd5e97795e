package giveaway

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/disgoorg/snowflake/v2"
)

func storePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "giveaways.json")
}

func TestStoreRoundTrip(t *testing.T) {
	path := storePath(t)
	role := snowflake.ID(55)

	s := OpenStore(path)
	s.Put(&Record{
		MessageID:    1,
		ChannelID:    10,
		EndsAt:       2000,
		WinnerCount:  2,
		Prize:        "Nitro",
		Reaction:     "🎉",
		RequiredRole: &role,
		HostID:       99,
	})
	s.Put(&Record{
		MessageID:   2,
		ChannelID:   10,
		EndsAt:      1000,
		WinnerCount: 1,
		Prize:       "Sticker",
		Reaction:    "🎊",
		HostID:      99,
	})
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	reopened := OpenStore(path)
	if reopened.Len() != 2 {
		t.Fatalf("reopened Len() = %d, want 2", reopened.Len())
	}

	rec, ok := reopened.Get(1)
	if !ok {
		t.Fatal("Get(1) ok = false, want true")
	}
	if rec.MessageID != 1 || rec.Prize != "Nitro" || rec.WinnerCount != 2 {
		t.Errorf("Get(1) = %+v, want restored record", rec)
	}
	if rec.RequiredRole == nil || *rec.RequiredRole != role {
		t.Errorf("Get(1) RequiredRole = %v, want %v", rec.RequiredRole, role)
	}
	if rec.ForcedWinner != nil {
		t.Errorf("Get(1) ForcedWinner = %v, want nil", rec.ForcedWinner)
	}
}

func TestStoreAllSorted(t *testing.T) {
	s := OpenStore(storePath(t))
	s.Put(&Record{MessageID: 3, EndsAt: 300})
	s.Put(&Record{MessageID: 1, EndsAt: 100})
	s.Put(&Record{MessageID: 5, EndsAt: 100})
	s.Put(&Record{MessageID: 2, EndsAt: 200})

	want := []snowflake.ID{1, 5, 2, 3}
	all := s.All()
	if len(all) != len(want) {
		t.Fatalf("All() len = %d, want %d", len(all), len(want))
	}
	for i, rec := range all {
		if rec.MessageID != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, rec.MessageID, want[i])
		}
	}
}

func TestStoreRemove(t *testing.T) {
	s := OpenStore(storePath(t))
	s.Put(&Record{MessageID: 1, EndsAt: 100})

	if !s.Remove(1) {
		t.Error("Remove(1) = false, want true")
	}
	if s.Remove(1) {
		t.Error("second Remove(1) = true, want false")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestOpenStoreMissingFile(t *testing.T) {
	s := OpenStore(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if err := s.Save(); err != nil {
		t.Errorf("Save() on fresh store error = %v", err)
	}
}

func TestOpenStoreCorruptFile(t *testing.T) {
	path := storePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := OpenStore(path)
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt document", s.Len())
	}

	// Saving afterwards must replace the corrupt document with a valid one.
	s.Put(&Record{MessageID: 1, EndsAt: 100})
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if reopened := OpenStore(path); reopened.Len() != 1 {
		t.Errorf("reopened Len() = %d, want 1", reopened.Len())
	}
}

func TestOpenStoreSkipsMalformedKeys(t *testing.T) {
	path := storePath(t)
	doc := `{
		"123": {"channel_id": "10", "end_time": 100, "winner_count": 1, "prize": "p", "reaction": "🎉", "host_id": "9"},
		"not-a-snowflake": {"channel_id": "10", "end_time": 100, "winner_count": 1, "prize": "p", "reaction": "🎉", "host_id": "9"}
	}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	s := OpenStore(path)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	rec, ok := s.Get(123)
	if !ok || rec.MessageID != 123 {
		t.Errorf("Get(123) = %+v, %v, want keyed record", rec, ok)
	}
}
