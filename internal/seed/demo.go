package seed

import (
	"time"

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
	"github.com/aryanbhojgaria/oc-2-day-octo/internal/rbac"
)

// Demo credentials. The role accounts are the ones the dashboards log in
// with; the student and parent accounts are linked to STU001.
const (
	AdminEmail   = "admin@oc-2-day.edu"
	TeacherEmail = "teacher@oc-2-day.edu"
	StudentEmail = "student@oc-2-day.edu"
	ParentEmail  = "parent@oc-2-day.edu"
	ClubEmail    = "club@oc-2-day.edu"

	AdminPassword   = "admin@2026"
	TeacherPassword = "teach@2026"
	StudentPassword = "stud@2026"
	ParentPassword  = "parent@2026"
	ClubPassword    = "club@2026"
)

func accountID(email string) string { return stableID("account:" + email) }

func ptr[T any](v T) *T { return &v }

// Demo builds the demo dataset. Passwords are hashed with opts.HashCost.
func Demo(opts Options) (Dataset, error) {
	now := time.Now().UTC()
	var d Dataset

	type cred struct {
		email, password string
		role            rbac.Role
	}
	creds := []cred{
		{AdminEmail, AdminPassword, rbac.Admin},
		{TeacherEmail, TeacherPassword, rbac.Teacher},
		{StudentEmail, StudentPassword, rbac.Student},
		{ParentEmail, ParentPassword, rbac.Parent},
		{ClubEmail, ClubPassword, rbac.Club},
		{"priya.sharma@octocampus.edu", StudentPassword, rbac.Student},
		{"rohan.gupta@octocampus.edu", StudentPassword, rbac.Student},
		{"ananya.iyer@octocampus.edu", StudentPassword, rbac.Student},
		{"neha.verma@octocampus.edu", StudentPassword, rbac.Student},
		{"rahul.singh@octocampus.edu", StudentPassword, rbac.Student},
		{"kavya.nair@octocampus.edu", StudentPassword, rbac.Student},
		{"aditya.rao@octocampus.edu", StudentPassword, rbac.Student},
		{"sneha.patil@octocampus.edu", StudentPassword, rbac.Student},
		{"rajesh.kumar@octocampus.edu", TeacherPassword, rbac.Teacher},
		{"sunita.patel@octocampus.edu", TeacherPassword, rbac.Teacher},
		{"vikram.rathore@octocampus.edu", TeacherPassword, rbac.Teacher},
		{"shreya.ghosh@octocampus.edu", TeacherPassword, rbac.Teacher},
		{"amit.desai@octocampus.edu", TeacherPassword, rbac.Teacher},
	}

	// bcrypt is slow; hash each distinct password once
	hashes := map[string]string{}
	for _, c := range creds {
		if _, ok := hashes[c.password]; ok {
			continue
		}
		h, err := hash(c.password, opts)
		if err != nil {
			return Dataset{}, err
		}
		hashes[c.password] = h
	}

	for i, c := range creds {
		created := now.Add(time.Duration(i) * time.Millisecond)
		d.Accounts = append(d.Accounts, account.Account{
			ID:           accountID(c.email),
			Email:        c.email,
			PasswordHash: hashes[c.password],
			Role:         c.role,
			CreatedAt:    created,
			UpdatedAt:    created,
		})
	}

	type stu struct {
		ext, name, email, dept string
		year                   int
		hostel                 bool
		attendance             int
		cgpa                   float64
		photo                  string
	}
	students := []stu{
		{"STU001", "Arjun Mehta", StudentEmail, "Computer Science", 3, true, 87, 8.4, "/avatars/student1.jpg"},
		{"STU002", "Priya Sharma", "priya.sharma@octocampus.edu", "Electronics", 2, false, 92, 9.1, "/avatars/student2.jpg"},
		{"STU003", "Rohan Gupta", "rohan.gupta@octocampus.edu", "Mechanical", 4, true, 78, 7.6, "/avatars/student3.jpg"},
		{"STU004", "Ananya Iyer", "ananya.iyer@octocampus.edu", "Computer Science", 1, true, 95, 9.3, "/avatars/student4.jpg"},
		{"STU005", "Neha Verma", "neha.verma@octocampus.edu", "Information Technology", 3, false, 88, 8.7, "/avatars/student1.jpg"},
		{"STU006", "Rahul Singh", "rahul.singh@octocampus.edu", "Mechanical", 2, true, 76, 7.2, "/avatars/student2.jpg"},
		{"STU007", "Kavya Nair", "kavya.nair@octocampus.edu", "Electronics", 4, true, 98, 9.6, "/avatars/student3.jpg"},
		{"STU008", "Aditya Rao", "aditya.rao@octocampus.edu", "Civil Engineering", 1, false, 82, 8.1, "/avatars/student4.jpg"},
		{"STU009", "Sneha Patil", "sneha.patil@octocampus.edu", "Computer Science", 3, true, 91, 8.9, "/avatars/student1.jpg"},
	}
	for _, s := range students {
		row := student.Student{
			ID:         stableID("student:" + s.ext),
			ExternalID: s.ext,
			AccountID:  ptr(accountID(s.email)),
			Name:       s.name,
			Department: s.dept,
			Year:       s.year,
			Hostel:     s.hostel,
			Attendance: s.attendance,
			CGPA:       s.cgpa,
			Photo:      s.photo,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if s.ext == "STU001" {
			row.GuardianAccountID = ptr(accountID(ParentEmail))
		}
		d.Students = append(d.Students, row)
	}

	type tch struct {
		ext, name, email, dept, subject string
		experience                      int
	}
	teachers := []tch{
		{"TCH001", "Dr. Kavitha Nair", TeacherEmail, "Computer Science", "Data Structures", 12},
		{"TCH002", "Prof. Rajesh Kumar", "rajesh.kumar@octocampus.edu", "Electronics", "Digital Circuits", 18},
		{"TCH003", "Dr. Sunita Patel", "sunita.patel@octocampus.edu", "Mechanical", "Thermodynamics", 9},
		{"TCH004", "Prof. Vikram Rathore", "vikram.rathore@octocampus.edu", "Civil Engineering", "Structural Analysis", 15},
		{"TCH005", "Dr. Shreya Ghosh", "shreya.ghosh@octocampus.edu", "Information Technology", "Web Technologies", 8},
		{"TCH006", "Dr. Amit Desai", "amit.desai@octocampus.edu", "Computer Science", "Artificial Intelligence", 14},
	}
	for _, t := range teachers {
		d.Teachers = append(d.Teachers, teacher.Teacher{
			ID:         stableID("teacher:" + t.ext),
			ExternalID: t.ext,
			AccountID:  ptr(accountID(t.email)),
			Name:       t.name,
			Department: t.dept,
			Subject:    t.subject,
			Experience: t.experience,
			CreatedAt:  now,
		})
	}

	stu001 := stableID("student:STU001")

	type mk struct {
		subject          string
		i1, i2, assignmt int
	}
	for _, m := range []mk{
		{"Data Structures", 42, 45, 18},
		{"Operating Systems", 38, 40, 17},
		{"DBMS", 44, 46, 19},
		{"Computer Networks", 35, 37, 15},
		{"Mathematics III", 40, 42, 16},
	} {
		row := mark.Mark{
			ID:         stableID("mark:STU001:" + m.subject),
			StudentID:  stu001,
			Subject:    m.subject,
			Internal1:  m.i1,
			Internal2:  m.i2,
			Assignment: m.assignmt,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		row.Recalculate()
		d.Marks = append(d.Marks, row)
	}

	type att struct {
		date, subject string
		status        attendance.Status
	}
	present, absent := attendance.StatusPresent, attendance.StatusAbsent
	for _, a := range []att{
		{"2026-02-20", "Data Structures", present},
		{"2026-02-20", "Operating Systems", present},
		{"2026-02-20", "DBMS Lab", present},
		{"2026-02-21", "Mathematics III", absent},
		{"2026-02-21", "Computer Networks", present},
		{"2026-02-22", "DBMS", present},
		{"2026-02-22", "Data Structures", present},
		{"2026-02-23", "Computer Networks", present},
		{"2026-02-23", "Mathematics III", present},
		{"2026-02-24", "Data Structures", present},
		{"2026-02-24", "DBMS", present},
		{"2026-02-24", "Mathematics III", present},
		{"2026-02-25", "Data Structures", present},
		{"2026-02-25", "DBMS", absent},
		{"2026-02-25", "Computer Networks", present},
		{"2026-02-26", "Mathematics III", present},
		{"2026-02-26", "Data Structures", present},
	} {
		d.Attendance = append(d.Attendance, attendance.Record{
			ID:        stableID("attendance:STU001:" + a.date + ":" + a.subject),
			StudentID: stu001,
			Date:      a.date,
			Subject:   a.subject,
			Status:    a.status,
			CreatedAt: now,
		})
	}

	studentAccount := accountID(StudentEmail)
	type fe struct {
		ext, typ string
		amount   int64
		due      string
		status   fee.Status
	}
	for _, f := range []fe{
		{"FEE001", "Tuition Fee", 75000, "2026-03-15", fee.StatusPending},
		{"FEE002", "Hostel Fee", 45000, "2026-04-10", fee.StatusPending},
		{"FEE003", "Exam Fee", 5000, "2026-03-01", fee.StatusPaid},
		{"FEE004", "Library Fee", 2000, "2026-02-28", fee.StatusPaid},
		{"FEE005", "Mess Fee", 18000, "2026-03-20", fee.StatusPending},
		{"FEE006", "Lab Equipment Fee", 3500, "2026-04-15", fee.StatusPending},
		{"FEE007", "Sports Subscription", 1500, "2026-02-10", fee.StatusPaid},
		{"FEE008", "Alumni Association", 1000, "2026-05-01", fee.StatusPending},
	} {
		row := fee.Fee{
			ID:         stableID("fee:" + f.ext),
			ExternalID: f.ext,
			AccountID:  studentAccount,
			Type:       f.typ,
			Amount:     f.amount,
			DueDate:    f.due,
			Status:     f.status,
			CreatedAt:  now,
		}
		if f.status == fee.StatusPaid {
			row.PaidAt = ptr(now)
		}
		d.Fees = append(d.Fees, row)
	}

	type ev struct {
		ext, title, club, date, desc string
		status                       event.Status
		regs                         int
	}
	for _, e := range []ev{
		{"EVT001", "TechnoVerse 2026", "Tech", "2026-03-10", "Annual technical festival with coding contests, hackathons, and workshops.", event.StatusUpcoming, 245},
		{"EVT002", "Rhythm Night", "Music", "2026-03-05", "Live music performance featuring student bands and solo artists.", event.StatusUpcoming, 180},
		{"EVT003", "Startup Pitch Day", "Entrepreneurship", "2026-03-15", "Student startups present their ideas to a panel of industry mentors.", event.StatusUpcoming, 60},
		{"EVT004", "Inter-College Cricket", "Sports", "2026-02-15", "Annual inter-college cricket tournament finals.", event.StatusPast, 120},
		{"EVT005", "Poetry Slam", "Literature", "2026-02-10", "Open mic poetry slam with special guest judges from the literary world.", event.StatusPast, 75},
		{"EVT006", "Cultural Night", "Culture", "2026-03-20", "A grand celebration of art, dance, drama, and cultural performances.", event.StatusUpcoming, 300},
		{"EVT007", "OctoHack 2026", "Tech", "2026-04-05", "48-hour national level hackathon expecting 500+ participants.", event.StatusUpcoming, 412},
		{"EVT008", "Annual Sports Meet", "Sports", "2026-03-25", "Track and field events, relay races, and marathon.", event.StatusUpcoming, 250},
		{"EVT009", "Drama Auditions", "Culture", "2026-02-05", "Auditions for the annual theater production 'Macbeth'.", event.StatusPast, 85},
		{"EVT010", "Investor Mixer", "Entrepreneurship", "2026-04-12", "Networking session with angel investors for student founders.", event.StatusUpcoming, 110},
	} {
		d.Events = append(d.Events, event.Event{
			ID:            stableID("event:" + e.ext),
			ExternalID:    e.ext,
			Title:         e.title,
			Club:          e.club,
			Date:          e.date,
			Description:   e.desc,
			Status:        e.status,
			Registrations: e.regs,
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}

	type cl struct {
		ext, name, accent string
		members           int
		desc              string
	}
	for _, c := range []cl{
		{"CLB001", "Tech", "#dc2626", 120, "Innovation, coding, and all things technology."},
		{"CLB002", "Culture", "#b91c1c", 95, "Celebrating art, dance, drama, and heritage."},
		{"CLB003", "Sports", "#ef4444", 150, "Fostering sportsmanship and athletic excellence."},
		{"CLB004", "Music", "#991b1b", 80, "Melodies, rhythms, and musical expression."},
		{"CLB005", "Literature", "#e11d48", 60, "Words, stories, and the power of expression."},
		{"CLB006", "Entrepreneurship", "#9f1239", 70, "Building ideas into reality."},
	} {
		d.Clubs = append(d.Clubs, club.Club{
			ID:          stableID("club:" + c.ext),
			ExternalID:  c.ext,
			Name:        c.name,
			Accent:      c.accent,
			Members:     c.members,
			Description: c.desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	type an struct {
		ext, title, content, author, date string
		priority                          announcement.Priority
	}
	high, medium, low := announcement.PriorityHigh, announcement.PriorityMedium, announcement.PriorityLow
	for _, a := range []an{
		{"ANN001", "Mid-Semester Examinations", "Mid-semester exams will commence from March 15th. Detailed schedule will be released next week.", "Academic Office", "2026-02-24", high},
		{"ANN002", "Annual Tech Fest Registration", "TechnoVerse 2026 registrations are now open. Register through the club portal before March 1st.", "Tech Club", "2026-02-22", medium},
		{"ANN003", "Library Extended Hours", "The central library will remain open until 11 PM during exam week.", "Library Committee", "2026-02-20", low},
		{"ANN004", "Campus Placement Drive", "Infosys and TCS placement drives scheduled for March 25th and 28th respectively.", "Placement Cell", "2026-02-19", high},
		{"ANN005", "Hostel Fee Deadline", "Hostel fee for the next semester must be paid before April 10th to avoid late charges.", "Hostel Administration", "2026-02-18", medium},
		{"ANN006", "Hackathon Guidelines Published", "The official rulebook and problem statements for the upcoming OctoHack are now live on the portal.", "Innovation Council", "2026-03-01", high},
		{"ANN007", "Maintenance: Network Outage", "Scheduled network maintenance will cause internet downtime in the Aryabhata block from 2 AM to 4 AM on Sunday.", "IT Department", "2026-03-02", low},
		{"ANN008", "Guest Lecture: AI in 2026", "Join us for an exclusive talk on the future of generative AI in software engineering.", "Computer Science Dept", "2026-03-05", medium},
		{"ANN009", "Blood Donation Drive", "NSS is organizing a blood donation camp in the main auditorium this Thursday. All healthy students are encouraged to participate.", "NSS Club", "2026-03-08", medium},
		{"ANN010", "Strict Anti-Ragging Policy Reminder", "A reminder that the campus maintains a zero-tolerance policy against ragging. Any violations will result in immediate suspension.", "Disciplinary Committee", "2026-03-10", high},
	} {
		d.Announcements = append(d.Announcements, announcement.Announcement{
			ID:         stableID("announcement:" + a.ext),
			ExternalID: a.ext,
			Title:      a.title,
			Content:    a.content,
			Author:     a.author,
			Date:       a.date,
			Priority:   a.priority,
			CreatedAt:  now,
		})
	}

	type rq struct {
		ext, typ, from, date, reason string
		status                       request.Status
		requester                    string
	}
	pending, approved, rejected := request.StatusPending, request.StatusApproved, request.StatusRejected
	for _, r := range []rq{
		{"REQ001", "Leave Request", "Arjun Mehta (STU001)", "2026-02-24", "Family function in hometown", pending, StudentEmail},
		{"REQ002", "Event Approval", "Tech Club", "2026-02-23", "Permission to conduct hackathon in Seminar Hall on March 10", pending, ClubEmail},
		{"REQ003", "Budget Request", "Sports Club", "2026-02-22", "Equipment purchase for upcoming inter-college tournament", approved, ""},
		{"REQ004", "Facility Booking", "Music Club", "2026-02-21", "Auditorium booking for Rhythm Night rehearsal", pending, ""},
		{"REQ005", "Club Registration", "Photography Club", "2026-02-25", "Creating a new photography and media club on campus", pending, ""},
		{"REQ006", "Leave Request", "Priya Sharma (STU002)", "2026-02-26", "Medical leave due to viral fever", approved, "priya.sharma@octocampus.edu"},
		{"REQ007", "Facility Booking", "Literature Club", "2026-02-27", "Booking the library reading room for poetry slam", rejected, ""},
		{"REQ008", "Budget Request", "Tech Club", "2026-02-28", "Server hosting costs for OctoHack 2026", pending, ClubEmail},
	} {
		row := request.Request{
			ID:         stableID("request:" + r.ext),
			ExternalID: r.ext,
			Type:       r.typ,
			FromName:   r.from,
			Date:       r.date,
			Reason:     r.reason,
			Status:     r.status,
			CreatedAt:  now,
		}
		if r.requester != "" {
			row.RequesterAccountID = ptr(accountID(r.requester))
		}
		if r.status.Terminal() {
			row.DecidedAt = ptr(now)
		}
		d.Requests = append(d.Requests, row)
	}

	adminAccount := accountID(AdminEmail)
	type nt struct {
		ext, title, message string
		ago                 time.Duration
		read                bool
	}
	for _, n := range []nt{
		{"NTF001", "New Announcement", "Mid-semester exam schedule released", 5 * time.Minute, false},
		{"NTF002", "Event Update", "TechnoVerse registration deadline extended", time.Hour, false},
		{"NTF003", "Fee Reminder", "Library fee payment due tomorrow", 3 * time.Hour, true},
		{"NTF004", "Attendance Alert", "Your attendance in CN dropped below 80%", 24 * time.Hour, true},
		{"NTF005", "Request Approved", "Your budget request for Sports Club was approved", 2 * time.Hour, false},
		{"NTF006", "Mark Updated", "New marks uploaded for Data Structures", 4 * time.Hour, false},
		{"NTF007", "System Alert", "Portal maintenance scheduled for tonight at 2 AM", 25 * time.Hour, true},
		{"NTF008", "New Message", "Dr. Kavitha Nair sent you a message regarding your assignment", 48 * time.Hour, true},
	} {
		d.Notifications = append(d.Notifications, notification.Notification{
			ID:         stableID("notification:" + n.ext),
			ExternalID: n.ext,
			AccountID:  adminAccount,
			Title:      n.title,
			Message:    n.message,
			Read:       n.read,
			CreatedAt:  now.Add(-n.ago),
		})
	}

	d.Timetable = demoTimetable(now)

	return d, nil
}

func demoTimetable(now time.Time) []timetable.Row {
	s := func(subject, room string) timetable.Slot { return timetable.Slot{Subject: subject, Room: room} }
	brk := s("Break", "")
	free := s("Free", "")

	days := map[timetable.Role][][]timetable.Slot{
		timetable.RoleStudent: {
			{s("Data Structures", "CS-101"), s("Operating Systems", "CS-102"), brk, s("DBMS Lab", "Lab-3"), s("Elective", "LH-4")},
			{s("Mathematics III", "LH-1"), s("Computer Networks", "CS-201"), brk, s("OS Lab", "Lab-2"), s("Library", "Lib-1")},
			{s("DBMS", "CS-105"), s("Data Structures", "CS-101"), brk, s("Elective", "LH-4"), s("Sports", "Ground")},
			{s("Computer Networks", "CS-201"), s("Mathematics III", "LH-1"), brk, s("CN Lab", "Lab-1"), s("Seminar", "Auditorium")},
			{s("Data Structures", "CS-101"), s("DBMS", "CS-105"), brk, s("Project Work", "Lab-4"), s("Mentoring", "Room-402")},
		},
		timetable.RoleTeacher: {
			{s("Data Structures", "CS-101"), s("Data Structures", "CS-102"), brk, s("Lab Supervision", "Lab-3"), free},
			{free, s("Data Structures", "CS-201"), brk, s("Lab Supervision", "Lab-2"), free},
			{s("Data Structures", "CS-105"), free, brk, free, free},
			{s("Data Structures", "CS-201"), free, brk, s("Lab Supervision", "Lab-1"), free},
			{s("Data Structures", "CS-101"), free, brk, s("Project Guidance", "Lab-4"), free},
		},
	}
	weekdays := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

	var rows []timetable.Row
	for _, role := range []timetable.Role{timetable.RoleStudent, timetable.RoleTeacher} {
		for i, slots := range days[role] {
			rows = append(rows, timetable.Row{
				ID:        stableID("timetable:" + string(role) + ":" + weekdays[i]),
				Role:      role,
				Day:       weekdays[i],
				Slots:     slots,
				UpdatedAt: now,
			})
		}
	}
	return rows
}
