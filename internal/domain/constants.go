package domain

// Ключи клиентского состояния. К ним добавляется ":<session>" в хранилище.
const (
	CartStorageKey      = "booking_cart"
	LastOrderStorageKey = "last_booking_order"
	AuthTokenStorageKey = "authToken"
)

// CartUpdatedEvent имя события об изменении корзины
const CartUpdatedEvent = "bookingCartUpdated"

// RecurringWeeksAhead сколько недель вперед разворачивается еженедельный слот
const RecurringWeeksAhead = 4

// DefaultTimezone часовой пояс кафе, в котором интерпретируются даты и время слотов
const DefaultTimezone = "Asia/Ho_Chi_Minh"

// Time format constants
const (
	DateFormat      = "2006-01-02"               // YYYY-MM-DD
	TimeFormat      = "15:04:05"                 // HH:MM:SS
	OrderDateFormat = "2006-01-02T15:04:05.000Z" // UTC ISO-8601 с миллисекундами
)

// Business validation constants
const (
	MaxNotesLength       = 500
	MaxAttendanceDays    = 31
	DefaultSlotPageLimit = 100
)
