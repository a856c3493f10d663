package inquiry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-trainer/internal/storage"

	"github.com/google/uuid"
)

const (
	// DefaultKey is the storage key the submission list lives under.
	DefaultKey = "gymInquiry_submissions_v1"
	// MaxEntries caps the stored list; older entries fall off the end.
	MaxEntries = 50
)

// ErrUnreadableLog means the stored list exists but cannot be decoded. It is
// left in place rather than overwritten.
var ErrUnreadableLog = errors.New("stored inquiry list is unreadable")

// Log keeps submitted inquiries newest first.
type Log struct {
	store storage.Store
	key   string
	limit int
	now   func() time.Time
}

// NewLog creates a Log over store. An empty key uses DefaultKey.
func NewLog(store storage.Store, key string) *Log {
	if key == "" {
		key = DefaultKey
	}
	return &Log{store: store, key: key, limit: MaxEntries, now: time.Now}
}

// Submit validates q, stamps it and prepends it to the list. The stored
// phone keeps only digits and '+'.
func (l *Log) Submit(ctx context.Context, q Inquiry) (Inquiry, error) {
	if errs := q.Validate(); errs != nil {
		return Inquiry{}, errs
	}

	q.ID = uuid.NewString()
	q.FullName = strings.TrimSpace(q.FullName)
	q.Email = strings.TrimSpace(q.Email)
	q.Message = strings.TrimSpace(q.Message)
	q.Phone = normalizePhone(q.Phone)
	q.CreatedAt = l.now().UTC()

	list, err := l.List(ctx)
	if err != nil {
		return Inquiry{}, err
	}

	list = append([]Inquiry{q}, list...)
	if len(list) > l.limit {
		list = list[:l.limit]
	}

	data, err := json.Marshal(list)
	if err != nil {
		return Inquiry{}, fmt.Errorf("failed to encode inquiries: %w", err)
	}
	if err := l.store.Put(ctx, l.key, data); err != nil {
		return Inquiry{}, fmt.Errorf("failed to save inquiry: %w", err)
	}
	return q, nil
}

// List returns stored inquiries, newest first.
func (l *Log) List(ctx context.Context) ([]Inquiry, error) {
	data, err := l.store.Get(ctx, l.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read inquiries: %w", err)
	}

	var list []Inquiry
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrUnreadableLog, l.key, err)
	}
	return list, nil
}
