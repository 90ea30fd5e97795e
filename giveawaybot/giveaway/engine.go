package giveaway

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/giveaway-bot/giveawaybot/config"
	"github.com/disgoorg/giveaway-bot/giveawaybot/duration"
	"github.com/disgoorg/snowflake/v2"
)

// Engine orchestrates the giveaway lifecycle: the per-actor configuration
// state machine, commit, reroll, cancellation and finalization. A single
// mutex serializes every entry point — interactive edits, scheduler ticks
// and command handlers take turns, so the shared draft and record maps are
// never written from two control paths at once.
type Engine struct {
	mu        sync.Mutex
	store     *Store
	sessions  *SessionStore
	selector  *Selector
	courier   Courier
	directory Directory
}

// NewEngine wires the engine's collaborators together.
func NewEngine(store *Store, sessions *SessionStore, selector *Selector, courier Courier, directory Directory) *Engine {
	return &Engine{
		store:     store,
		sessions:  sessions,
		selector:  selector,
		courier:   courier,
		directory: directory,
	}
}

// Begin opens (or resumes) the actor's configuration session. The returned
// draft is a copy for rendering; the second return reports whether a fresh
// draft was created.
func (e *Engine) Begin(actor, guildID, originChannelID snowflake.ID) (Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, created := e.sessions.GetOrCreate(actor, func() *Draft {
		return NewDraft(actor, guildID, originChannelID)
	})
	return *sess.Draft, created
}

// Draft returns a copy of the actor's current draft for rendering.
func (e *Engine) Draft(actor snowflake.ID) (Draft, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions.Get(actor)
	if !ok {
		return Draft{}, false
	}
	return *sess.Draft, true
}

// BindMenu records the message the actor's configuration menu lives on.
func (e *Engine) BindMenu(actor, channelID, messageID snowflake.ID) {
	e.sessions.BindMenu(actor, channelID, messageID)
}

// OwnsMenu reports whether the menu message belongs to the actor's session.
func (e *Engine) OwnsMenu(actor, messageID snowflake.ID) bool {
	return e.sessions.OwnsMenu(actor, messageID)
}

// MenuRef returns where the actor's configuration menu is rendered.
func (e *Engine) MenuRef(actor snowflake.ID) (channelID, messageID snowflake.ID, ok bool) {
	sess, ok := e.sessions.Get(actor)
	if !ok || sess.MenuMessageID == 0 {
		return 0, 0, false
	}
	return sess.MenuChannelID, sess.MenuMessageID, true
}

// HasPending reports whether the actor's next message is a field value.
func (e *Engine) HasPending(actor snowflake.ID) bool {
	return e.sessions.HasPending(actor)
}

// SelectField handles the actor picking a field from the menu. Remove
// variants clear their field at once; every other field transitions the
// session to awaiting the actor's next message. The returned bool reports
// whether the actor should be prompted for a value.
func (e *Engine) SelectField(actor snowflake.ID, f Field) (Draft, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	sess, ok := e.sessions.Get(actor)
	if !ok {
		return Draft{}, false, ErrNoSession
	}

	if f.Immediate() {
		switch f {
		case FieldRemoveForcedWinner:
			sess.Draft.ForcedWinner = 0
		case FieldRemoveRequiredRole:
			sess.Draft.RequiredRole = 0
		}
		return *sess.Draft, false, nil
	}

	e.sessions.Await(actor, f)
	return *sess.Draft, true, nil
}

// SubmitValue consumes the actor's reply as the value for the awaited field.
// The pending state is cleared whatever the outcome; an invalid value comes
// back as a *ValidationError with the draft untouched, and the actor picks
// the field again to retry.
func (e *Engine) SubmitValue(ctx context.Context, actor snowflake.ID, raw string) (Draft, Field, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	f, ok := e.sessions.TakePending(actor)
	if !ok {
		return Draft{}, 0, ErrNoSession
	}
	sess, ok := e.sessions.Get(actor)
	if !ok {
		return Draft{}, f, ErrNoSession
	}

	d := sess.Draft
	raw = strings.TrimSpace(raw)

	switch f {
	case FieldDuration:
		if _, err := duration.Parse(raw); err != nil {
			return *d, f, &ValidationError{Field: f, Reason: "use a number followed by s, m, h or d, e.g. `2h`"}
		}
		d.DurationToken = raw

	case FieldChannel:
		ch, err := e.directory.ResolveChannel(ctx, d.GuildID, raw)
		if err != nil {
			return *d, f, &ValidationError{Field: f, Reason: "no matching channel in this server"}
		}
		d.ChannelID = ch.ID

	case FieldWinnerCount:
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return *d, f, &ValidationError{Field: f, Reason: "must be a positive number"}
		}
		d.WinnerCount = n

	case FieldReaction:
		// Deliberately lenient: the token is not verified as a renderable
		// emoji, only as non-empty text.
		if raw == "" {
			return *d, f, &ValidationError{Field: f, Reason: "cannot be empty"}
		}
		d.Reaction = raw

	case FieldPrize:
		if raw == "" {
			return *d, f, &ValidationError{Field: f, Reason: "cannot be empty"}
		}
		d.Prize = raw

	case FieldForcedWinner:
		id, err := e.directory.ResolveMember(ctx, d.GuildID, raw)
		if err != nil {
			return *d, f, &ValidationError{Field: f, Reason: "no matching member in this server"}
		}
		d.ForcedWinner = id

	case FieldRequiredRole:
		id, err := e.directory.ResolveRole(ctx, d.GuildID, raw)
		if err != nil {
			return *d, f, &ValidationError{Field: f, Reason: "no matching role in this server"}
		}
		d.RequiredRole = id
	}

	return *d, f, nil
}

// Commit validates the draft, announces the giveaway, persists the record
// and evicts the session. Duration is the only mandatory field; everything
// else falls back to its default. A failed announcement keeps the draft so
// the actor can retry.
func (e *Engine) Commit(ctx context.Context, actor snowflake.ID) (*Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sess, ok := e.sessions.Get(actor)
	if !ok {
		return nil, ErrNoSession
	}
	d := sess.Draft

	if d.DurationToken == "" {
		return nil, &ValidationError{Field: FieldDuration, Reason: "set a duration before validating"}
	}
	length, err := duration.Parse(d.DurationToken)
	if err != nil {
		return nil, &ValidationError{Field: FieldDuration, Reason: "set a valid duration before validating"}
	}

	if _, err := e.directory.Channel(ctx, d.ChannelID); err != nil {
		return nil, &ResolutionError{Kind: "channel", ID: d.ChannelID}
	}

	ends := time.Now().Add(length).UTC()
	msgID, err := e.courier.Send(ctx, d.ChannelID, announcementMessage(d, ends))
	if err != nil {
		return nil, &PlatformError{Op: "announce", Err: err}
	}

	if err := e.courier.React(ctx, d.ChannelID, msgID, d.Reaction); err != nil {
		// Participants can still react by hand; not worth failing the commit.
		slog.Warn("Could not attach giveaway reaction",
			slog.String("message_id", msgID.String()),
			slog.Any("error", err))
	}

	rec := &Record{
		MessageID:   msgID,
		ChannelID:   d.ChannelID,
		EndsAt:      ends.Unix(),
		WinnerCount: d.WinnerCount,
		Prize:       d.Prize,
		Reaction:    d.Reaction,
		HostID:      d.HostID,
	}
	if d.RequiredRole != 0 {
		role := d.RequiredRole
		rec.RequiredRole = &role
	}
	if d.ForcedWinner != 0 {
		winner := d.ForcedWinner
		rec.ForcedWinner = &winner
	}

	e.store.Put(rec)
	if err := e.store.Save(); err != nil {
		slog.Warn("Could not persist giveaway store after commit",
			slog.String("type", "db"),
			slog.Any("error", err))
	}
	e.sessions.Evict(actor)

	slog.Info("Giveaway committed",
		slog.String("message_id", rec.MessageID.String()),
		slog.String("channel_id", rec.ChannelID.String()),
		slog.Time("ends_at", rec.EndTime()),
		slog.Int("winner_count", rec.WinnerCount))
	return rec, nil
}

// Cancel discards the actor's draft with no side effects on the store.
func (e *Engine) Cancel(actor snowflake.ID) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessions.Evict(actor)
}

// Active returns a snapshot of every committed giveaway, soonest first.
func (e *Engine) Active() []*Record {
	return e.store.All()
}

// CancelGiveaway removes a committed giveaway before its end time and marks
// the announcement as cancelled (best effort).
func (e *Engine) CancelGiveaway(ctx context.Context, id snowflake.ID) (*Record, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, ok := e.store.Get(id)
	if !ok {
		return nil, &ResolutionError{Kind: "giveaway", ID: id}
	}
	e.store.Remove(id)
	if err := e.store.Save(); err != nil {
		slog.Warn("Could not persist giveaway store after cancellation",
			slog.String("type", "db"),
			slog.Any("error", err))
	}

	if err := e.courier.Edit(ctx, rec.ChannelID, rec.MessageID, cancelledMessageUpdate(rec)); err != nil {
		slog.Warn("Could not mark giveaway announcement as cancelled",
			slog.String("message_id", rec.MessageID.String()),
			slog.Any("error", err))
	}

	slog.Info("Giveaway cancelled",
		slog.String("message_id", rec.MessageID.String()))
	return rec, nil
}

// Reroll draws one new winner from the current non-bot reactors of the given
// message, accepting any of the recognized celebratory reactions.
func (e *Engine) Reroll(ctx context.Context, channelID, messageID snowflake.ID) (snowflake.ID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	msg, err := e.courier.Message(ctx, channelID, messageID)
	if err != nil {
		return 0, &ResolutionError{Kind: "message", ID: messageID}
	}

	seen := make(map[snowflake.ID]struct{})
	var pool []snowflake.ID
	for _, emoji := range config.CelebrationReactions {
		if !messageHasReaction(msg, emoji) {
			continue
		}
		users, err := e.courier.Reactors(ctx, channelID, messageID, emoji)
		if err != nil {
			slog.Warn("Could not enumerate reactors for reroll",
				slog.String("message_id", messageID.String()),
				slog.String("emoji", emoji),
				slog.Any("error", err))
			continue
		}
		for _, u := range users {
			if u.Bot {
				continue
			}
			if _, dup := seen[u.ID]; dup {
				continue
			}
			seen[u.ID] = struct{}{}
			pool = append(pool, u.ID)
		}
	}

	winner, ok := e.selector.PickOne(pool)
	if !ok {
		return 0, ErrNoParticipants
	}
	return winner, nil
}
