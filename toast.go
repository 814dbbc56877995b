package placefinder

import (
	"sync"
	"time"
)

// DefaultToastTTL is how long a notification stays visible.
const DefaultToastTTL = 4 * time.Second

// ToastKind distinguishes success from error notifications.
type ToastKind string

// ToastKind constants.
const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// Toast is a transient notification.
type Toast struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"type"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ToastQueue is a time-ordered queue of notifications with expiry.
// Every toast lives for the same TTL, so insertion order is expiry order.
type ToastQueue struct {
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time

	mu     sync.Mutex
	ttl    time.Duration
	nextID int64
	items  []Toast
}

// NewToastQueue returns a queue whose toasts expire after ttl.
func NewToastQueue(ttl time.Duration) *ToastQueue {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastQueue{Now: time.Now, ttl: ttl}
}

// Push appends a toast and returns it.
func (q *ToastQueue) Push(message string, kind ToastKind) Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextID++
	t := Toast{
		ID:        q.nextID,
		Message:   message,
		Kind:      kind,
		ExpiresAt: q.Now().Add(q.ttl),
	}
	q.items = append(q.items, t)
	return t
}

// Active drops expired toasts and returns the rest, oldest first.
func (q *ToastQueue) Active() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.prune()
	out := make([]Toast, len(q.items))
	copy(out, q.items)
	return out
}

// NextExpiry returns the expiry time of the oldest live toast.
func (q *ToastQueue) NextExpiry() (time.Time, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.prune()
	if len(q.items) == 0 {
		return time.Time{}, false
	}
	return q.items[0].ExpiresAt, true
}

// TTL returns the lifetime of a toast.
func (q *ToastQueue) TTL() time.Duration {
	return q.ttl
}

func (q *ToastQueue) prune() {
	now := q.Now()
	i := 0
	for i < len(q.items) && !now.Before(q.items[i].ExpiresAt) {
		i++
	}
	if i > 0 {
		q.items = append(q.items[:0], q.items[i:]...)
	}
}
