package notifications

import (
	"context"
	"sort"
	"sync"
	"time"

	pkgerrors "github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/errors"
	"github.com/google/uuid"
)

const defaultFeedSize = 50

// Notification is a notice retained in the feed.
type Notification struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Severity  Severity   `json:"severity"`
	CreatedAt time.Time  `json:"createdAt"`
	ReadAt    *time.Time `json:"readAt,omitempty"`
}

// ListParams configures pagination for the feed.
type ListParams struct {
	Limit      int
	Cursor     string
	UnreadOnly bool
}

// ListResult wraps returned notifications and the cursor for the next page.
type ListResult struct {
	Items  []Notification `json:"items"`
	Cursor string         `json:"cursor"`
}

// Feed keeps the most recent notices in memory so UI components that were not
// mounted when a notice fired can still show it.
type Feed struct {
	mu    sync.Mutex
	size  int
	items []Notification
	now   func() time.Time
}

func NewFeed(size int) *Feed {
	if size <= 0 {
		size = defaultFeedSize
	}
	return &Feed{
		size: size,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Notify appends a notice, evicting the oldest once the feed is full.
func (f *Feed) Notify(_ context.Context, notice Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = append(f.items, Notification{
		ID:        uuid.New(),
		Title:     notice.Title,
		Message:   notice.Message,
		Severity:  notice.Severity,
		CreatedAt: f.now(),
	})
	if overflow := len(f.items) - f.size; overflow > 0 {
		f.items = append([]Notification(nil), f.items[overflow:]...)
	}
}

// List returns notices newest first.
func (f *Feed) List(_ context.Context, params ListParams) (*ListResult, error) {
	after, err := parseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	limit := normalizeLimit(params.Limit)

	f.mu.Lock()
	ordered := make([]Notification, 0, len(f.items))
	for _, n := range f.items {
		if params.UnreadOnly && n.ReadAt != nil {
			continue
		}
		if after != nil && !after.before(n) {
			continue
		}
		ordered = append(ordered, copyNotification(n))
	}
	f.mu.Unlock()

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID.String() > ordered[j].ID.String()
		}
		return ordered[i].CreatedAt.After(ordered[j].CreatedAt)
	})

	result := &ListResult{Items: ordered}
	if len(ordered) > limit {
		result.Items = ordered[:limit]
		last := result.Items[limit-1]
		result.Cursor = encodeCursor(cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (f *Feed) MarkRead(_ context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.items {
		if f.items[i].ID != id {
			continue
		}
		if f.items[i].ReadAt == nil {
			now := f.now()
			f.items[i].ReadAt = &now
		}
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
}

// MarkAllRead marks every unread notice and returns how many changed.
func (f *Feed) MarkAllRead(_ context.Context) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	count := 0
	for i := range f.items {
		if f.items[i].ReadAt == nil {
			readAt := now
			f.items[i].ReadAt = &readAt
			count++
		}
	}
	return count
}

func copyNotification(n Notification) Notification {
	if n.ReadAt != nil {
		readAt := *n.ReadAt
		n.ReadAt = &readAt
	}
	return n
}
