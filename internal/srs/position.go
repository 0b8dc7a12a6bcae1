package srs

import "time"

// DefaultRestoreStaleness is how long a pending restore stays honored.
const DefaultRestoreStaleness = 5 * time.Second

// PositionPreserver keeps the currently displayed item selected across list
// recomputations triggered by external edits.
//
// It is a two-state machine, Idle and PendingRestore. An edit to the focused
// item arms a pending restore before the list is recomputed; the next
// Resolve call either re-selects the item by id, falls back to the clamped
// previous index when the item vanished, or discards the request entirely
// when it has gone stale. Plain navigation never arms it.
//
// PositionPreserver is not safe for concurrent use; it belongs to a single
// interaction surface.
type PositionPreserver struct {
	staleness time.Duration
	pending   *pendingRestore
}

type pendingRestore struct {
	itemID        string
	fallbackIndex int
	requestedAt   time.Time
}

// NewPositionPreserver creates a preserver with the given staleness window.
// A non-positive window selects DefaultRestoreStaleness.
func NewPositionPreserver(staleness time.Duration) *PositionPreserver {
	if staleness <= 0 {
		staleness = DefaultRestoreStaleness
	}
	return &PositionPreserver{staleness: staleness}
}

// Pending reports whether a restore request is armed.
func (p *PositionPreserver) Pending() bool {
	return p.pending != nil
}

// NoteEdit arms a restore for the focused item. Call it immediately before
// the item list is recomputed due to an external edit.
func (p *PositionPreserver) NoteEdit(itemID string, index int, now time.Time) {
	p.pending = &pendingRestore{
		itemID:        itemID,
		fallbackIndex: index,
		requestedAt:   now,
	}
}

// Resolve consumes the pending request against the recomputed list of item
// ids. It returns the index to select and whether a restore applied. The
// preserver always returns to Idle, whatever the outcome.
func (p *PositionPreserver) Resolve(ids []string, now time.Time) (int, bool) {
	req := p.pending
	p.pending = nil

	if req == nil {
		return 0, false
	}
	if now.Sub(req.requestedAt) > p.staleness {
		return 0, false
	}
	if len(ids) == 0 {
		return 0, false
	}

	for i, id := range ids {
		if id == req.itemID {
			return i, true
		}
	}

	// Item no longer in the list: clamp the previous position.
	idx := req.fallbackIndex
	if idx < 0 {
		idx = 0
	}
	if idx > len(ids)-1 {
		idx = len(ids) - 1
	}
	return idx, true
}
