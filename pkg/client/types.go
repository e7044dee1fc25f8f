package client

import (
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/account"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/announcement"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/attendance"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/club"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/event"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/fee"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/mark"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/notification"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/request"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/student"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/teacher"
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/domain/timetable"
)

// Wire types, re-exported so callers outside this module can name them.
type (
	User = account.Public
	Me   = account.Me

	Student       = student.Student
	StudentUpdate = student.UpdateRequest
	Teacher       = teacher.Teacher

	Mark       = mark.Mark
	MarkCreate = mark.CreateRequest
	MarkUpdate = mark.UpdateRequest

	AttendanceRecord = attendance.Record
	AttendanceCreate = attendance.CreateRequest
	AttendanceStatus = attendance.Status

	Fee       = fee.Fee
	FeeStatus = fee.Status

	Event       = event.Event
	EventCreate = event.CreateEventRequest
	EventUpdate = event.UpdateEventRequest
	EventStatus = event.Status

	Club       = club.Club
	ClubCreate = club.CreateRequest
	ClubUpdate = club.UpdateRequest

	Announcement       = announcement.Announcement
	AnnouncementCreate = announcement.CreateRequest

	Request       = request.Request
	RequestCreate = request.CreateRequest
	RequestStatus = request.Status

	Notification = notification.Notification

	TimetableRole = timetable.Role
	TimetableRow  = timetable.Row
	TimetableSlot = timetable.Slot
)

const (
	AttendancePresent = attendance.StatusPresent
	AttendanceAbsent  = attendance.StatusAbsent

	FeePending = fee.StatusPending
	FeePaid    = fee.StatusPaid

	EventUpcoming  = event.StatusUpcoming
	EventOngoing   = event.StatusOngoing
	EventPast      = event.StatusPast

	RequestPending  = request.StatusPending
	RequestApproved = request.StatusApproved
	RequestRejected = request.StatusRejected

	TimetableStudent = timetable.RoleStudent
	TimetableTeacher = timetable.RoleTeacher
)
