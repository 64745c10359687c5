package domain

import "github.com/m04kA/SMC-PetCafeGateway/pkg/types"

// AttendanceStatus attendance state of one member in one shift
type AttendanceStatus string

const (
	AttendanceScheduled AttendanceStatus = "SCHEDULED"
	AttendancePresent   AttendanceStatus = "PRESENT"
	AttendanceLate      AttendanceStatus = "LATE"
	AttendanceAbsent    AttendanceStatus = "ABSENT"
	AttendanceDayOff    AttendanceStatus = "DAY_OFF"
)

// Member staff member of a team
type Member struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
}

// Team group of staff members working the same shifts
type Team struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// Shift daily working window
type Shift struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	StartTime types.TimeString `json:"start_time"`
	EndTime   types.TimeString `json:"end_time"`
}

// AttendanceOverride sparse server-side record that differs from the default schedule
type AttendanceOverride struct {
	TeamID   string           `json:"team_id"`
	ShiftID  string           `json:"shift_id"`
	MemberID string           `json:"member_id"`
	Date     types.Date       `json:"date"`
	Status   AttendanceStatus `json:"status"`
	Note     string           `json:"note,omitempty"`
}

// AttendanceKey composite key of the override index
func AttendanceKey(teamID, shiftID string, date types.Date, memberID string) string {
	return teamID + "|" + shiftID + "|" + date.String() + "|" + memberID
}

func (o *AttendanceOverride) Key() string {
	return AttendanceKey(o.TeamID, o.ShiftID, o.Date, o.MemberID)
}

// AttendanceEntry one expanded (team, shift, date, member) row
type AttendanceEntry struct {
	Date       types.Date
	Team       Team
	Shift      Shift
	Member     Member
	Status     AttendanceStatus
	Note       string
	Overridden bool
}
