package get_attendance

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	expandAttendance "github.com/m04kA/SMC-PetCafeGateway/internal/usecase/expand_attendance"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// EntryResponse одна строка табеля
type EntryResponse struct {
	Date       string                  `json:"date"`
	TeamID     string                  `json:"teamId"`
	TeamName   string                  `json:"teamName"`
	ShiftID    string                  `json:"shiftId"`
	ShiftName  string                  `json:"shiftName"`
	StartTime  string                  `json:"startTime"`
	EndTime    string                  `json:"endTime"`
	MemberID   string                  `json:"memberId"`
	MemberName string                  `json:"memberName"`
	Status     domain.AttendanceStatus `json:"status"`
	Note       string                  `json:"note,omitempty"`
	Overridden bool                    `json:"overridden"`
}

// AttendanceResponse HTTP response model
type AttendanceResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Entries []EntryResponse `json:"entries"`
}

// ToUseCaseRequest собирает запрос из query параметров from, to (YYYY-MM-DD) и teamId
func ToUseCaseRequest(from, to, teamID string) (*expandAttendance.Request, error) {
	fromDate, err := types.ParseDate(strings.TrimSpace(from))
	if err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	toDate, err := types.ParseDate(strings.TrimSpace(to))
	if err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	return &expandAttendance.Request{
		From:   fromDate,
		To:     toDate,
		TeamID: strings.TrimSpace(teamID),
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *expandAttendance.Response) *AttendanceResponse {
	out := &AttendanceResponse{
		From:    resp.From.String(),
		To:      resp.To.String(),
		Entries: make([]EntryResponse, 0, len(resp.Entries)),
	}
	for _, e := range resp.Entries {
		out.Entries = append(out.Entries, EntryResponse{
			Date:       e.Date.String(),
			TeamID:     e.Team.ID,
			TeamName:   e.Team.Name,
			ShiftID:    e.Shift.ID,
			ShiftName:  e.Shift.Name,
			StartTime:  e.Shift.StartTime.String(),
			EndTime:    e.Shift.EndTime.String(),
			MemberID:   e.Member.ID,
			MemberName: e.Member.FullName,
			Status:     e.Status,
			Note:       e.Note,
			Overridden: e.Overridden,
		})
	}
	return out
}
