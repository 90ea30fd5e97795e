package giveaway

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
)

// fakePlatform implements Courier and Directory in memory so engine tests can
// drive the full lifecycle without a gateway.
type fakePlatform struct {
	channels    map[snowflake.ID]*ChannelInfo
	members     map[string]snowflake.ID
	roles       map[string]snowflake.ID
	memberRoles map[snowflake.ID][]snowflake.ID
	messages    map[snowflake.ID]*discord.Message
	reactors    map[string][]discord.User

	sent    []discord.MessageCreate
	sentTo  []snowflake.ID
	edits   []snowflake.ID
	deleted []snowflake.ID
	reacted []string

	nextMessageID snowflake.ID
	sendErr       error
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{
		channels:      make(map[snowflake.ID]*ChannelInfo),
		members:       make(map[string]snowflake.ID),
		roles:         make(map[string]snowflake.ID),
		memberRoles:   make(map[snowflake.ID][]snowflake.ID),
		messages:      make(map[snowflake.ID]*discord.Message),
		reactors:      make(map[string][]discord.User),
		nextMessageID: 1000,
	}
}

func (f *fakePlatform) Channel(_ context.Context, id snowflake.ID) (*ChannelInfo, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, errors.New("unknown channel")
	}
	return ch, nil
}

func (f *fakePlatform) ResolveChannel(_ context.Context, _ snowflake.ID, query string) (*ChannelInfo, error) {
	for _, ch := range f.channels {
		if ch.Name == query {
			return ch, nil
		}
	}
	return nil, errors.New("no matching channel")
}

func (f *fakePlatform) ResolveMember(_ context.Context, _ snowflake.ID, query string) (snowflake.ID, error) {
	if id, ok := f.members[query]; ok {
		return id, nil
	}
	return 0, errors.New("no matching member")
}

func (f *fakePlatform) ResolveRole(_ context.Context, _ snowflake.ID, query string) (snowflake.ID, error) {
	if id, ok := f.roles[query]; ok {
		return id, nil
	}
	return 0, errors.New("no matching role")
}

func (f *fakePlatform) MemberHasRole(_ context.Context, _, userID, roleID snowflake.ID) (bool, error) {
	for _, id := range f.memberRoles[userID] {
		if id == roleID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlatform) Send(_ context.Context, channelID snowflake.ID, msg discord.MessageCreate) (snowflake.ID, error) {
	if f.sendErr != nil {
		return 0, f.sendErr
	}
	f.sent = append(f.sent, msg)
	f.sentTo = append(f.sentTo, channelID)
	f.nextMessageID++
	return f.nextMessageID, nil
}

func (f *fakePlatform) Edit(_ context.Context, _, messageID snowflake.ID, _ discord.MessageUpdate) error {
	f.edits = append(f.edits, messageID)
	return nil
}

func (f *fakePlatform) Delete(_ context.Context, _, messageID snowflake.ID) error {
	f.deleted = append(f.deleted, messageID)
	return nil
}

func (f *fakePlatform) React(_ context.Context, _, _ snowflake.ID, emoji string) error {
	f.reacted = append(f.reacted, emoji)
	return nil
}

func (f *fakePlatform) Message(_ context.Context, _, messageID snowflake.ID) (*discord.Message, error) {
	msg, ok := f.messages[messageID]
	if !ok {
		return nil, errors.New("unknown message")
	}
	return msg, nil
}

func (f *fakePlatform) Reactors(_ context.Context, _, _ snowflake.ID, emoji string) ([]discord.User, error) {
	return f.reactors[emoji], nil
}

// setMessage registers a message carrying the given reaction emojis.
func (f *fakePlatform) setMessage(id snowflake.ID, emojis ...string) {
	reactions := make([]discord.MessageReaction, len(emojis))
	for i := range emojis {
		reactions[i] = discord.MessageReaction{Emoji: discord.Emoji{Name: emojis[i]}}
	}
	f.messages[id] = &discord.Message{ID: id, Reactions: reactions}
}

func newTestEngine(t *testing.T) (*Engine, *fakePlatform, *Store) {
	t.Helper()
	fake := newFakePlatform()
	fake.channels[3] = &ChannelInfo{ID: 3, GuildID: 2, Name: "giveaways"}
	store := OpenStore(filepath.Join(t.TempDir(), "giveaways.json"))
	engine := NewEngine(store, NewSessionStore(time.Minute), NewSelector(rand.NewSource(1)), fake, fake)
	return engine, fake, store
}

func TestEngineCommitWithDefaults(t *testing.T) {
	engine, fake, store := newTestEngine(t)
	ctx := context.Background()

	if _, created := engine.Begin(1, 2, 3); !created {
		t.Fatal("Begin() created = false, want true")
	}

	if _, promptNeeded, err := engine.SelectField(1, FieldDuration); err != nil || !promptNeeded {
		t.Fatalf("SelectField(duration) = %v, %v, want prompt", promptNeeded, err)
	}
	if _, _, err := engine.SubmitValue(ctx, 1, "1h"); err != nil {
		t.Fatalf("SubmitValue(1h) error = %v", err)
	}

	rec, err := engine.Commit(ctx, 1)
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if rec.ChannelID != 3 || rec.WinnerCount != 1 || rec.Prize != "Mystery prize" || rec.Reaction != "🎉" {
		t.Errorf("Commit() record = %+v, want defaults", rec)
	}
	if rec.RequiredRole != nil || rec.ForcedWinner != nil {
		t.Errorf("Commit() optionals = %v, %v, want nil", rec.RequiredRole, rec.ForcedWinner)
	}
	wantEnd := time.Now().Add(time.Hour).Unix()
	if rec.EndsAt < wantEnd-5 || rec.EndsAt > wantEnd+5 {
		t.Errorf("Commit() EndsAt = %d, want about %d", rec.EndsAt, wantEnd)
	}

	if _, ok := store.Get(rec.MessageID); !ok {
		t.Error("committed record missing from store")
	}
	if _, ok := engine.Draft(1); ok {
		t.Error("session survived commit")
	}
	if len(fake.sent) != 1 {
		t.Fatalf("sent %d messages, want 1 announcement", len(fake.sent))
	}
	if len(fake.reacted) != 1 || fake.reacted[0] != "🎉" {
		t.Errorf("reacted = %v, want [🎉]", fake.reacted)
	}
}

func TestEngineCommitRequiresDuration(t *testing.T) {
	engine, _, store := newTestEngine(t)

	engine.Begin(1, 2, 3)
	_, err := engine.Commit(context.Background(), 1)

	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Field != FieldDuration {
		t.Fatalf("Commit() error = %v, want duration ValidationError", err)
	}
	if _, ok := engine.Draft(1); !ok {
		t.Error("failed commit evicted the session")
	}
	if store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", store.Len())
	}
}

func TestEngineCommitAnnounceFailureKeepsDraft(t *testing.T) {
	engine, fake, store := newTestEngine(t)
	ctx := context.Background()

	engine.Begin(1, 2, 3)
	engine.SelectField(1, FieldDuration)
	if _, _, err := engine.SubmitValue(ctx, 1, "1h"); err != nil {
		t.Fatal(err)
	}

	fake.sendErr = errors.New("boom")
	_, err := engine.Commit(ctx, 1)

	var pErr *PlatformError
	if !errors.As(err, &pErr) {
		t.Fatalf("Commit() error = %v, want *PlatformError", err)
	}
	d, ok := engine.Draft(1)
	if !ok || d.DurationToken != "1h" {
		t.Error("draft lost after failed announcement")
	}
	if store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", store.Len())
	}
}

func TestEngineInvalidValueLeavesDraftUntouched(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	engine.Begin(1, 2, 3)
	engine.SelectField(1, FieldWinnerCount)

	_, f, err := engine.SubmitValue(ctx, 1, "-3")
	var vErr *ValidationError
	if !errors.As(err, &vErr) || f != FieldWinnerCount {
		t.Fatalf("SubmitValue(-3) = %v, %v, want winner-count ValidationError", f, err)
	}

	d, _ := engine.Draft(1)
	if d.WinnerCount != 1 {
		t.Errorf("WinnerCount = %d, want untouched default 1", d.WinnerCount)
	}
	if engine.HasPending(1) {
		t.Error("pending state survived an invalid value")
	}

	// A second message is no longer a field value.
	if _, _, err := engine.SubmitValue(ctx, 1, "5"); !errors.Is(err, ErrNoSession) {
		t.Errorf("SubmitValue without pending error = %v, want ErrNoSession", err)
	}
}

func TestEngineFieldValues(t *testing.T) {
	engine, fake, _ := newTestEngine(t)
	ctx := context.Background()
	fake.channels[7] = &ChannelInfo{ID: 7, GuildID: 2, Name: "general"}
	fake.members["<@500>"] = 500
	fake.roles["vip"] = 600

	engine.Begin(1, 2, 3)

	steps := []struct {
		field Field
		raw   string
		check func(d Draft) bool
	}{
		{FieldChannel, "general", func(d Draft) bool { return d.ChannelID == 7 }},
		{FieldWinnerCount, "3", func(d Draft) bool { return d.WinnerCount == 3 }},
		{FieldReaction, "🎁", func(d Draft) bool { return d.Reaction == "🎁" }},
		{FieldPrize, "Nitro", func(d Draft) bool { return d.Prize == "Nitro" }},
		{FieldForcedWinner, "<@500>", func(d Draft) bool { return d.ForcedWinner == 500 }},
		{FieldRequiredRole, "vip", func(d Draft) bool { return d.RequiredRole == 600 }},
	}
	for _, step := range steps {
		if _, _, err := engine.SelectField(1, step.field); err != nil {
			t.Fatalf("SelectField(%v) error = %v", step.field, err)
		}
		d, _, err := engine.SubmitValue(ctx, 1, step.raw)
		if err != nil {
			t.Fatalf("SubmitValue(%v, %q) error = %v", step.field, step.raw, err)
		}
		if !step.check(d) {
			t.Errorf("SubmitValue(%v, %q) draft = %+v", step.field, step.raw, d)
		}
	}
}

func TestEngineRemoveFieldsApplyImmediately(t *testing.T) {
	engine, fake, _ := newTestEngine(t)
	ctx := context.Background()
	fake.members["<@500>"] = 500

	engine.Begin(1, 2, 3)
	engine.SelectField(1, FieldForcedWinner)
	if _, _, err := engine.SubmitValue(ctx, 1, "<@500>"); err != nil {
		t.Fatal(err)
	}

	d, promptNeeded, err := engine.SelectField(1, FieldRemoveForcedWinner)
	if err != nil || promptNeeded {
		t.Fatalf("SelectField(remove) = %v, %v, want no prompt", promptNeeded, err)
	}
	if d.ForcedWinner != 0 {
		t.Errorf("ForcedWinner = %v, want cleared", d.ForcedWinner)
	}
	if engine.HasPending(1) {
		t.Error("remove field left pending state behind")
	}
}

func TestEngineBeginResumesExistingDraft(t *testing.T) {
	engine, _, _ := newTestEngine(t)
	ctx := context.Background()

	engine.Begin(1, 2, 3)
	engine.SelectField(1, FieldPrize)
	if _, _, err := engine.SubmitValue(ctx, 1, "Nitro"); err != nil {
		t.Fatal(err)
	}

	d, created := engine.Begin(1, 2, 3)
	if created {
		t.Error("Begin() on existing session created = true, want false")
	}
	if d.Prize != "Nitro" {
		t.Errorf("resumed Prize = %q, want %q", d.Prize, "Nitro")
	}
}

func TestEngineCancel(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	engine.Begin(1, 2, 3)
	if !engine.Cancel(1) {
		t.Error("Cancel() = false, want true")
	}
	if _, ok := engine.Draft(1); ok {
		t.Error("draft survived cancel")
	}
	if engine.Cancel(1) {
		t.Error("second Cancel() = true, want false")
	}
}

func TestEngineCancelGiveaway(t *testing.T) {
	engine, fake, store := newTestEngine(t)
	ctx := context.Background()

	store.Put(&Record{MessageID: 50, ChannelID: 3, EndsAt: time.Now().Add(time.Hour).Unix(), Prize: "Nitro"})

	rec, err := engine.CancelGiveaway(ctx, 50)
	if err != nil {
		t.Fatalf("CancelGiveaway() error = %v", err)
	}
	if rec.Prize != "Nitro" {
		t.Errorf("CancelGiveaway() record = %+v", rec)
	}
	if store.Len() != 0 {
		t.Errorf("store Len() = %d, want 0", store.Len())
	}
	if len(fake.edits) != 1 || fake.edits[0] != 50 {
		t.Errorf("edits = %v, want announcement marked cancelled", fake.edits)
	}

	var rErr *ResolutionError
	if _, err := engine.CancelGiveaway(ctx, 50); !errors.As(err, &rErr) {
		t.Errorf("second CancelGiveaway() error = %v, want *ResolutionError", err)
	}
}

func TestEngineReroll(t *testing.T) {
	engine, fake, _ := newTestEngine(t)
	ctx := context.Background()

	fake.setMessage(50, "🎉")
	fake.reactors["🎉"] = []discord.User{
		{ID: 200, Bot: true},
		{ID: 201},
		{ID: 202},
	}

	winner, err := engine.Reroll(ctx, 3, 50)
	if err != nil {
		t.Fatalf("Reroll() error = %v", err)
	}
	if winner != 201 && winner != 202 {
		t.Errorf("Reroll() winner = %v, want a non-bot reactor", winner)
	}
}

func TestEngineRerollNoParticipants(t *testing.T) {
	engine, fake, _ := newTestEngine(t)
	ctx := context.Background()

	fake.setMessage(50, "🎉")
	fake.reactors["🎉"] = []discord.User{{ID: 200, Bot: true}}

	if _, err := engine.Reroll(ctx, 3, 50); !errors.Is(err, ErrNoParticipants) {
		t.Errorf("Reroll() error = %v, want ErrNoParticipants", err)
	}
}

func TestEngineRerollMissingMessage(t *testing.T) {
	engine, _, _ := newTestEngine(t)

	var rErr *ResolutionError
	if _, err := engine.Reroll(context.Background(), 3, 999); !errors.As(err, &rErr) {
		t.Errorf("Reroll() error = %v, want *ResolutionError", err)
	}
}
