package client

import (
	"context"
	"sync"
)

// State is a snapshot of a query. Loaded stays false until a fetch succeeds;
// a signed-out session never gets past the zero state.
type State[T any] struct {
	Data    T
	Loading bool
	Loaded  bool
	Err     error
}

// Query wraps one fetch and remembers its latest result.
type Query[T any] struct {
	session Session
	fetch   func(context.Context) (T, error)

	mu    sync.Mutex
	state State[T]
}

func NewQuery[T any](session Session, fetch func(context.Context) (T, error)) *Query[T] {
	return &Query[T]{session: session, fetch: fetch}
}

func (q *Query[T]) State() State[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Load fetches once; later calls return the cached state.
func (q *Query[T]) Load(ctx context.Context) (State[T], error) {
	if s := q.State(); s.Loaded {
		return s, nil
	}
	return q.Refetch(ctx)
}

// Refetch always hits the network unless there is no token, in which case
// it resets to the not-loaded state without a request.
func (q *Query[T]) Refetch(ctx context.Context) (State[T], error) {
	if q.session.Token() == "" {
		q.mu.Lock()
		q.state = State[T]{}
		q.mu.Unlock()
		return State[T]{}, nil
	}

	q.mu.Lock()
	q.state.Loading = true
	q.mu.Unlock()

	data, err := q.fetch(ctx)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.state.Loading = false
	if err != nil {
		// keep the last good data around
		q.state.Err = err
		return q.state, err
	}
	q.state = State[T]{Data: data, Loaded: true}
	return q.state, nil
}

func (c *Client) StudentsQuery() *Query[List[Student]] {
	return NewQuery(c.session, c.Students)
}

func (c *Client) StudentMeQuery() *Query[Student] {
	return NewQuery(c.session, c.StudentMe)
}

func (c *Client) TeachersQuery() *Query[List[Teacher]] {
	return NewQuery(c.session, c.Teachers)
}

func (c *Client) EventsQuery(q EventsQuery) *Query[List[Event]] {
	return NewQuery(c.session, func(ctx context.Context) (List[Event], error) {
		return c.Events(ctx, q)
	})
}

func (c *Client) MarksQuery(studentID string) *Query[List[Mark]] {
	return NewQuery(c.session, func(ctx context.Context) (List[Mark], error) {
		return c.Marks(ctx, studentID)
	})
}

func (c *Client) AttendanceQuery(studentID string) *Query[List[AttendanceRecord]] {
	return NewQuery(c.session, func(ctx context.Context) (List[AttendanceRecord], error) {
		return c.Attendance(ctx, AttendanceQuery{StudentID: studentID})
	})
}

func (c *Client) ClubsQuery() *Query[List[Club]] {
	return NewQuery(c.session, c.Clubs)
}

// TimetableQuery loads the given role's timetable, or the caller's own when
// role is empty.
func (c *Client) TimetableQuery(role TimetableRole) *Query[TimetableList] {
	if role == "" {
		return NewQuery(c.session, c.Timetable)
	}
	return NewQuery(c.session, func(ctx context.Context) (TimetableList, error) {
		return c.TimetableFor(ctx, role)
	})
}

// RequestsHook is the admin request queue with approve and reject actions.
type RequestsHook struct {
	*Query[RequestList]
	c *Client
}

func (c *Client) RequestsHook(status RequestStatus) *RequestsHook {
	return &RequestsHook{
		Query: NewQuery(c.session, func(ctx context.Context) (RequestList, error) {
			return c.Requests(ctx, status)
		}),
		c: c,
	}
}

func (h *RequestsHook) Approve(ctx context.Context, id string) (Request, error) {
	return h.decide(ctx, id, RequestApproved)
}

func (h *RequestsHook) Reject(ctx context.Context, id string) (Request, error) {
	return h.decide(ctx, id, RequestRejected)
}

func (h *RequestsHook) decide(ctx context.Context, id string, to RequestStatus) (Request, error) {
	if !h.c.signedIn() {
		return Request{}, ErrNoSession
	}
	updated, err := h.c.DecideRequest(ctx, id, to)
	if err != nil {
		return Request{}, err
	}
	_, err = h.Refetch(ctx)
	return updated, err
}

type FeesHook struct {
	*Query[FeeList]
	c *Client
}

func (c *Client) FeesHook() *FeesHook {
	return &FeesHook{Query: NewQuery(c.session, c.Fees), c: c}
}

func (h *FeesHook) Pay(ctx context.Context, id string) (Fee, error) {
	if !h.c.signedIn() {
		return Fee{}, ErrNoSession
	}
	paid, err := h.c.PayFee(ctx, id)
	if err != nil {
		return Fee{}, err
	}
	_, err = h.Refetch(ctx)
	return paid, err
}

type NotificationsHook struct {
	*Query[NotificationList]
	c *Client
}

func (c *Client) NotificationsHook() *NotificationsHook {
	return &NotificationsHook{Query: NewQuery(c.session, c.Notifications), c: c}
}

func (h *NotificationsHook) MarkRead(ctx context.Context, id string) (Notification, error) {
	if !h.c.signedIn() {
		return Notification{}, ErrNoSession
	}
	n, err := h.c.MarkNotificationRead(ctx, id)
	if err != nil {
		return Notification{}, err
	}
	_, err = h.Refetch(ctx)
	return n, err
}

func (h *NotificationsHook) MarkAllRead(ctx context.Context) (int, error) {
	if !h.c.signedIn() {
		return 0, ErrNoSession
	}
	updated, err := h.c.MarkAllNotificationsRead(ctx)
	if err != nil {
		return 0, err
	}
	_, err = h.Refetch(ctx)
	return updated, err
}

type AnnouncementsHook struct {
	*Query[List[Announcement]]
	c *Client
}

func (c *Client) AnnouncementsHook() *AnnouncementsHook {
	return &AnnouncementsHook{Query: NewQuery(c.session, c.Announcements), c: c}
}

func (h *AnnouncementsHook) Create(ctx context.Context, req AnnouncementCreate) (Announcement, error) {
	if !h.c.signedIn() {
		return Announcement{}, ErrNoSession
	}
	a, err := h.c.CreateAnnouncement(ctx, req)
	if err != nil {
		return Announcement{}, err
	}
	_, err = h.Refetch(ctx)
	return a, err
}

func (h *AnnouncementsHook) Remove(ctx context.Context, id string) error {
	if !h.c.signedIn() {
		return ErrNoSession
	}
	if err := h.c.DeleteAnnouncement(ctx, id); err != nil {
		return err
	}
	_, err := h.Refetch(ctx)
	return err
}
