package cafeapi

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/m04kA/SMC-PetCafeGateway/internal/domain"
	"github.com/m04kA/SMC-PetCafeGateway/pkg/types"
)

// flexID идентификатор, который бэкенд отдает то строкой, то числом
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

// flexFloat число, которое может прийти строкой ("150000.00")
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*f = flexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

func (f *flexFloat) ptr() *float64 {
	if f == nil {
		return nil
	}
	v := float64(*f)
	return &v
}

// SlotDTO слот в формате бэкенда
type SlotDTO struct {
	ID            flexID            `json:"id"`
	ServiceID     flexID            `json:"service_id"`
	SpecificDate  *string           `json:"specific_date"`
	DayOfWeek     *string           `json:"day_of_week"`
	StartTime     string            `json:"start_time"`
	EndTime       string            `json:"end_time"`
	MaxCapacity   int               `json:"max_capacity"`
	Price         *flexFloat        `json:"price"`
	ServiceStatus string            `json:"service_status"`
	IsDeleted     bool              `json:"is_deleted"`
	PetGroupID    *flexID           `json:"pet_group_id"`
	PetGroup      *PetGroupDTO      `json:"pet_group"`
	Availability  []AvailabilityDTO `json:"availability"`
	DailyCapacity []AvailabilityDTO `json:"daily_capacities"`
}

// AvailabilityDTO запись доступности слота на дату
type AvailabilityDTO struct {
	SlotID      flexID `json:"slot_id"`
	BookingDate string `json:"booking_date"`
	BookedCount int    `json:"booked_count"`
	MaxCapacity *int   `json:"max_capacity"`
}

// PetGroupDTO группа питомцев
type PetGroupDTO struct {
	ID          flexID `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// OrderDTO заказ в ответе POST /orders
type OrderDTO struct {
	ID            flexID     `json:"id"`
	OrderNumber   string     `json:"order_number"`
	FinalAmount   *flexFloat `json:"final_amount"`
	TotalAmount   *flexFloat `json:"total_amount"`
	PaymentStatus string     `json:"payment_status"`
	Status        string     `json:"status"`
	CreatedAt     *time.Time `json:"created_at"`
}

// MemberDTO сотрудник
type MemberDTO struct {
	ID       flexID `json:"id"`
	FullName string `json:"full_name"`
}

// TeamDTO команда сотрудников
type TeamDTO struct {
	ID      flexID      `json:"id"`
	Name    string      `json:"name"`
	Members []MemberDTO `json:"members"`
}

// ShiftDTO смена
type ShiftDTO struct {
	ID        flexID `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// AttendanceDTO отметка посещаемости, отличающаяся от расписания
type AttendanceDTO struct {
	TeamID   flexID `json:"team_id"`
	ShiftID  flexID `json:"shift_id"`
	MemberID flexID `json:"member_id"`
	Date     string `json:"date"`
	Status   string `json:"status"`
	Note     string `json:"note"`
}

// errorBody тело ответа с ошибкой
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// ToDomain конвертирует слот. Некорректные даты и время не роняют весь список:
// такое поле остается пустым, а resolver слот с пустой датой не разворачивает.
func (s *SlotDTO) ToDomain() domain.Slot {
	slot := domain.Slot{
		ID:            string(s.ID),
		ServiceID:     string(s.ServiceID),
		MaxCapacity:   s.MaxCapacity,
		Price:         s.Price.ptr(),
		ServiceStatus: domain.ServiceStatus(s.ServiceStatus),
		IsDeleted:     s.IsDeleted,
	}

	if s.SpecificDate != nil && *s.SpecificDate != "" {
		if d, err := types.ParseDate(*s.SpecificDate); err == nil {
			slot.SpecificDate = &d
		}
	}
	if s.DayOfWeek != nil && *s.DayOfWeek != "" {
		wd := domain.ParseWeekday(*s.DayOfWeek)
		slot.DayOfWeek = &wd
	}
	if ts, err := types.NewTimeStringFromString(s.StartTime); err == nil {
		slot.StartTime = ts
	}
	if ts, err := types.NewTimeStringFromString(s.EndTime); err == nil {
		slot.EndTime = ts
	}

	switch {
	case s.PetGroupID != nil && *s.PetGroupID != "":
		id := string(*s.PetGroupID)
		slot.PetGroupID = &id
	case s.PetGroup != nil && s.PetGroup.ID != "":
		id := string(s.PetGroup.ID)
		slot.PetGroupID = &id
	}

	records := s.Availability
	if len(records) == 0 {
		records = s.DailyCapacity
	}
	for _, a := range records {
		date, err := types.ParseDate(a.BookingDate)
		if err != nil {
			continue
		}
		slotID := string(a.SlotID)
		if slotID == "" {
			slotID = slot.ID
		}
		slot.Availability = append(slot.Availability, domain.AvailabilityRecord{
			SlotID:      slotID,
			BookingDate: date,
			BookedCount: a.BookedCount,
			MaxCapacity: a.MaxCapacity,
		})
	}

	return slot
}

func (g *PetGroupDTO) ToDomain() domain.PetGroup {
	return domain.PetGroup{
		ID:          string(g.ID),
		Name:        g.Name,
		Description: g.Description,
	}
}

func (o *OrderDTO) ToDomain() domain.Order {
	return domain.Order{
		ID:            string(o.ID),
		OrderNumber:   o.OrderNumber,
		FinalAmount:   o.FinalAmount.ptr(),
		TotalAmount:   o.TotalAmount.ptr(),
		PaymentStatus: o.PaymentStatus,
		Status:        o.Status,
		CreatedAt:     o.CreatedAt,
	}
}

func (t *TeamDTO) ToDomain() domain.Team {
	team := domain.Team{ID: string(t.ID), Name: t.Name}
	for _, m := range t.Members {
		team.Members = append(team.Members, domain.Member{ID: string(m.ID), FullName: m.FullName})
	}
	return team
}

func (s *ShiftDTO) ToDomain() (domain.Shift, error) {
	start, err := types.NewTimeStringFromString(s.StartTime)
	if err != nil {
		return domain.Shift{}, err
	}
	end, err := types.NewTimeStringFromString(s.EndTime)
	if err != nil {
		return domain.Shift{}, err
	}
	return domain.Shift{ID: string(s.ID), Name: s.Name, StartTime: start, EndTime: end}, nil
}

func (a *AttendanceDTO) ToDomain() (domain.AttendanceOverride, error) {
	date, err := types.ParseDate(a.Date)
	if err != nil {
		return domain.AttendanceOverride{}, err
	}
	return domain.AttendanceOverride{
		TeamID:   string(a.TeamID),
		ShiftID:  string(a.ShiftID),
		MemberID: string(a.MemberID),
		Date:     date,
		Status:   domain.AttendanceStatus(a.Status),
		Note:     a.Note,
	}, nil
}
