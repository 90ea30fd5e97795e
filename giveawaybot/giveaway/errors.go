package giveaway

import (
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
)

// ErrNoSession is returned when an actor interacts with the configuration
// flow without an open session.
var ErrNoSession = errors.New("no active giveaway configuration")

// ErrNoParticipants is returned by reroll when no eligible reactor exists.
var ErrNoParticipants = errors.New("no eligible participants")

// ValidationError reports a bad actor-supplied field value. The draft is
// left untouched and the actor is re-prompted.
type ValidationError struct {
	Field  Field
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field.Label(), e.Reason)
}

// ResolutionError reports a referenced channel, member, role or message that
// no longer exists. The operation that hit it is abandoned, never retried.
type ResolutionError struct {
	Kind string
	ID   snowflake.ID
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("%s %s no longer exists", e.Kind, e.ID)
}

// PersistenceError reports a store read or write failure. It is logged as a
// warning; the operation proceeds in memory and the next save tries again.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("giveaway store %s: %s", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PlatformError reports a transient failure talking to Discord. It is logged
// at the boundary that cannot act on it and never crashes the lifecycle.
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform %s: %s", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }
