package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
)

type RequestsRepo struct{ s *Store }

func requestExt(q request.Request) string { return q.ExternalID }

func (r *RequestsRepo) List(_ context.Context, f request.ListFilter) ([]request.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]request.Request, 0)
	for _, q := range r.s.requests {
		if f.RequesterAccountID != nil && (q.RequesterAccountID == nil || *q.RequesterAccountID != *f.RequesterAccountID) {
			continue
		}
		if f.Status != nil && q.Status != *f.Status {
			continue
		}
		out = append(out, q)
	}
	slices.SortFunc(out, func(a, b request.Request) int {
		return cmp.Or(cmp.Compare(b.Date, a.Date), b.CreatedAt.Compare(a.CreatedAt))
	})
	return out, nil
}

func (r *RequestsRepo) GetByID(_ context.Context, id string) (request.Request, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := byRef(r.s.requests, id, requestExt)
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	return q, nil
}

func (r *RequestsRepo) Create(_ context.Context, q request.Request) error {
	r.s.mu.Lock()
	r.s.requests[q.ID] = q
	r.s.mu.Unlock()
	return nil
}

func (r *RequestsRepo) UpdateStatus(_ context.Context, id string, from, to request.Status) (request.Request, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := byRef(r.s.requests, id, requestExt)
	if !ok {
		return request.Request{}, request.ErrNotFound
	}
	if q.Status != from {
		return request.Request{}, request.ErrStale
	}

	now := time.Now().UTC()
	q.Status = to
	q.DecidedAt = &now
	r.s.requests[q.ID] = q
	return q, nil
}

func (r *RequestsRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	q, ok := byRef(r.s.requests, id, requestExt)
	if !ok {
		return request.ErrNotFound
	}
	delete(r.s.requests, q.ID)
	return nil
}

type NotificationsRepo struct{ s *Store }

func (r *NotificationsRepo) ListByAccount(_ context.Context, accountID string) ([]notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]notification.Notification, 0)
	for _, n := range r.s.notifications {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	slices.SortFunc(out, func(a, b notification.Notification) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return out, nil
}

func (r *NotificationsRepo) MarkRead(_ context.Context, id, accountID string) (notification.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := byRef(r.s.notifications, id, func(n notification.Notification) string { return n.ExternalID })
	if !ok || n.AccountID != accountID {
		return notification.Notification{}, notification.ErrNotFound
	}
	n.Read = true
	r.s.notifications[n.ID] = n
	return n, nil
}

func (r *NotificationsRepo) MarkAllRead(_ context.Context, accountID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var updated int64
	for id, n := range r.s.notifications {
		if n.AccountID == accountID && !n.Read {
			n.Read = true
			r.s.notifications[id] = n
			updated++
		}
	}
	return updated, nil
}

func (r *NotificationsRepo) CreateMany(_ context.Context, items []notification.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, n := range items {
		r.s.notifications[n.ID] = n
	}
	return nil
}
