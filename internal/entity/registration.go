package entity

import "time"

type AttendanceStatus string

const (
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendancePresent AttendanceStatus = "Present"
)

// Registration links a user to an event. QRCode holds the stored
// artifact filename; empty for participants added manually by an admin.
type Registration struct {
	ID         int64            `json:"id" db:"id"`
	UserID     int64            `json:"user_id" db:"user_id"`
	EventID    int64            `json:"event_id" db:"event_id"`
	QRCode     string           `json:"qr_code,omitempty" db:"qr_code"`
	Attendance AttendanceStatus `json:"attendance" db:"attendance"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
}

// ReportRow is one flattened line of the attendance report.
type ReportRow struct {
	UserID     int64            `json:"user_id"`
	EventID    int64            `json:"event_id"`
	Attendance AttendanceStatus `json:"attendance"`
}
