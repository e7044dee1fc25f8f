package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
)

// List is the common list envelope.
type List[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

type FeeList struct {
	List[Fee]
	PendingTotal int64 `json:"pendingTotal"`
	PaidTotal    int64 `json:"paidTotal"`
}

type RequestList struct {
	List[Request]
	Pending int `json:"pending"`
}

type NotificationList struct {
	List[Notification]
	Unread int `json:"unread"`
}

type TimetableList struct {
	List[TimetableRow]
	Role TimetableRole `json:"role"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Login signs in and, when the session can hold it, stores the token.
func (c *Client) Login(ctx context.Context, email, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, account.LoginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return LoginResult{}, err
	}
	if s, ok := c.session.(interface {
		Set(string, User)
	}); ok {
		s.Set(out.Token, out.User)
	}
	return out, nil
}

func (c *Client) Me(ctx context.Context) (Me, error) {
	return call[Me](ctx, c, http.MethodGet, "/auth/me", nil, nil)
}

// Logout revokes the token server side and clears the session.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil); err != nil {
		return err
	}
	if s, ok := c.session.(interface{ Clear() }); ok {
		s.Clear()
	}
	return nil
}

func (c *Client) Students(ctx context.Context) (List[Student], error) {
	return call[List[Student]](ctx, c, http.MethodGet, "/students", nil, nil)
}

func (c *Client) StudentMe(ctx context.Context) (Student, error) {
	return call[Student](ctx, c, http.MethodGet, "/students/me", nil, nil)
}

func (c *Client) Student(ctx context.Context, id string) (Student, error) {
	return call[Student](ctx, c, http.MethodGet, "/students/"+escape(id), nil, nil)
}

func (c *Client) UpdateStudent(ctx context.Context, id string, req StudentUpdate) (Student, error) {
	return call[Student](ctx, c, http.MethodPut, "/students/"+escape(id), nil, req)
}

func (c *Client) Teachers(ctx context.Context) (List[Teacher], error) {
	return call[List[Teacher]](ctx, c, http.MethodGet, "/teachers", nil, nil)
}

func (c *Client) TeacherMe(ctx context.Context) (Teacher, error) {
	return call[Teacher](ctx, c, http.MethodGet, "/teachers/me", nil, nil)
}

func (c *Client) Teacher(ctx context.Context, id string) (Teacher, error) {
	return call[Teacher](ctx, c, http.MethodGet, "/teachers/"+escape(id), nil, nil)
}

// Marks lists marks, optionally narrowed to one student (uuid or display id).
func (c *Client) Marks(ctx context.Context, studentID string) (List[Mark], error) {
	return call[List[Mark]](ctx, c, http.MethodGet, "/marks", studentQuery(studentID), nil)
}

func (c *Client) CreateMark(ctx context.Context, req MarkCreate) (Mark, error) {
	return call[Mark](ctx, c, http.MethodPost, "/marks", nil, req)
}

func (c *Client) UpdateMark(ctx context.Context, id string, req MarkUpdate) (Mark, error) {
	return call[Mark](ctx, c, http.MethodPut, "/marks/"+escape(id), nil, req)
}

type AttendanceQuery struct {
	StudentID string
	Date      string
}

func (c *Client) Attendance(ctx context.Context, q AttendanceQuery) (List[AttendanceRecord], error) {
	v := studentQuery(q.StudentID)
	if q.Date != "" {
		v.Set("date", q.Date)
	}
	return call[List[AttendanceRecord]](ctx, c, http.MethodGet, "/attendance", v, nil)
}

func (c *Client) CreateAttendance(ctx context.Context, req AttendanceCreate) (AttendanceRecord, error) {
	return call[AttendanceRecord](ctx, c, http.MethodPost, "/attendance", nil, req)
}

func (c *Client) UpdateAttendance(ctx context.Context, id string, status AttendanceStatus) (AttendanceRecord, error) {
	return call[AttendanceRecord](ctx, c, http.MethodPatch, "/attendance/"+escape(id), nil, attendance.UpdateRequest{Status: status})
}

func (c *Client) Fees(ctx context.Context) (FeeList, error) {
	return call[FeeList](ctx, c, http.MethodGet, "/fees", nil, nil)
}

// AllFees is the admin view; status may be empty.
func (c *Client) AllFees(ctx context.Context, status FeeStatus) (FeeList, error) {
	v := url.Values{}
	if status != "" {
		v.Set("status", string(status))
	}
	return call[FeeList](ctx, c, http.MethodGet, "/fees/all", v, nil)
}

func (c *Client) PayFee(ctx context.Context, id string) (Fee, error) {
	return call[Fee](ctx, c, http.MethodPatch, "/fees/"+escape(id)+"/pay", nil, nil)
}

type EventsQuery struct {
	Club   string
	Status EventStatus
}

func (c *Client) Events(ctx context.Context, q EventsQuery) (List[Event], error) {
	v := url.Values{}
	if q.Club != "" {
		v.Set("club", q.Club)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return call[List[Event]](ctx, c, http.MethodGet, "/events", v, nil)
}

func (c *Client) Event(ctx context.Context, id string) (Event, error) {
	return call[Event](ctx, c, http.MethodGet, "/events/"+escape(id), nil, nil)
}

func (c *Client) CreateEvent(ctx context.Context, req EventCreate) (Event, error) {
	return call[Event](ctx, c, http.MethodPost, "/events", nil, req)
}

func (c *Client) UpdateEvent(ctx context.Context, id string, req EventUpdate) (Event, error) {
	return call[Event](ctx, c, http.MethodPut, "/events/"+escape(id), nil, req)
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+escape(id), nil, nil, nil)
}

func (c *Client) Clubs(ctx context.Context) (List[Club], error) {
	return call[List[Club]](ctx, c, http.MethodGet, "/clubs", nil, nil)
}

func (c *Client) Club(ctx context.Context, id string) (Club, error) {
	return call[Club](ctx, c, http.MethodGet, "/clubs/"+escape(id), nil, nil)
}

func (c *Client) CreateClub(ctx context.Context, req ClubCreate) (Club, error) {
	return call[Club](ctx, c, http.MethodPost, "/clubs", nil, req)
}

func (c *Client) UpdateClub(ctx context.Context, id string, req ClubUpdate) (Club, error) {
	return call[Club](ctx, c, http.MethodPut, "/clubs/"+escape(id), nil, req)
}

func (c *Client) DeleteClub(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/clubs/"+escape(id), nil, nil, nil)
}

func (c *Client) Announcements(ctx context.Context) (List[Announcement], error) {
	return call[List[Announcement]](ctx, c, http.MethodGet, "/announcements", nil, nil)
}

func (c *Client) Announcement(ctx context.Context, id string) (Announcement, error) {
	return call[Announcement](ctx, c, http.MethodGet, "/announcements/"+escape(id), nil, nil)
}

func (c *Client) CreateAnnouncement(ctx context.Context, req AnnouncementCreate) (Announcement, error) {
	return call[Announcement](ctx, c, http.MethodPost, "/announcements", nil, req)
}

func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/announcements/"+escape(id), nil, nil, nil)
}

// Requests is the admin listing; status may be empty.
func (c *Client) Requests(ctx context.Context, status RequestStatus) (RequestList, error) {
	v := url.Values{}
	if status != "" {
		v.Set("status", string(status))
	}
	return call[RequestList](ctx, c, http.MethodGet, "/requests", v, nil)
}

func (c *Client) MyRequests(ctx context.Context) (RequestList, error) {
	return call[RequestList](ctx, c, http.MethodGet, "/requests/mine", nil, nil)
}

func (c *Client) CreateRequest(ctx context.Context, req RequestCreate) (Request, error) {
	return call[Request](ctx, c, http.MethodPost, "/requests", nil, req)
}

func (c *Client) DecideRequest(ctx context.Context, id string, status RequestStatus) (Request, error) {
	return call[Request](ctx, c, http.MethodPatch, "/requests/"+escape(id), nil, request.UpdateStatusRequest{Status: status})
}

func (c *Client) DeleteRequest(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/requests/"+escape(id), nil, nil, nil)
}

func (c *Client) Notifications(ctx context.Context) (NotificationList, error) {
	return call[NotificationList](ctx, c, http.MethodGet, "/notifications", nil, nil)
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) (Notification, error) {
	return call[Notification](ctx, c, http.MethodPatch, "/notifications/"+escape(id)+"/read", nil, nil)
}

// MarkAllNotificationsRead returns how many notifications changed.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) (int, error) {
	var out struct {
		Updated int `json:"updated"`
	}
	err := c.do(ctx, http.MethodPatch, "/notifications/read-all", nil, nil, &out)
	return out.Updated, err
}

// Timetable returns the caller's own timetable.
func (c *Client) Timetable(ctx context.Context) (TimetableList, error) {
	return call[TimetableList](ctx, c, http.MethodGet, "/timetable", nil, nil)
}

func (c *Client) TimetableFor(ctx context.Context, role TimetableRole) (TimetableList, error) {
	return call[TimetableList](ctx, c, http.MethodGet, "/timetable/"+escape(string(role)), nil, nil)
}

func (c *Client) UpsertTimetable(ctx context.Context, role TimetableRole, day string, slots []TimetableSlot) (TimetableRow, error) {
	path := "/timetable/" + escape(string(role)) + "/" + escape(day)
	return call[TimetableRow](ctx, c, http.MethodPut, path, nil, timetable.UpsertRequest{Slots: slots})
}

func studentQuery(id string) url.Values {
	v := url.Values{}
	if id != "" {
		v.Set("studentId", id)
	}
	return v
}
