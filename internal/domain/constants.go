package domain

// Значения настроек нового тенанта по умолчанию
const (
	DefaultPrimaryColor          = "#8B5CF6"
	DefaultSlotDurationMinutes   = 60
	DefaultMaxAdvanceBookingDays = 30
	DefaultWorkingHoursStart     = "09:00"
	DefaultWorkingHoursEnd       = "17:00"

	// DefaultTrialDays длительность пробного периода при регистрации
	DefaultTrialDays = 14

	// DefaultSlotCapacity вместимость слота, если не указана явно
	DefaultSlotCapacity = 1
)

// DefaultWorkingDays рабочие дни по умолчанию: понедельник - пятница
var DefaultWorkingDays = []int{1, 2, 3, 4, 5}

// Границы валидации
const (
	MinSlotDurationMinutes   = 5
	MaxSlotDurationMinutes   = 480 // 8 часов
	MinSlotCapacity          = 1
	MaxSlotCapacity          = 100
	MinAdvanceBookingDays    = 1
	MaxAdvanceBookingDays    = 365
	MaxBusinessNameLength    = 120
	MaxCustomerNameLength    = 120
	MaxNotesLength           = 500
	MaxGenerateDateRangeDays = 92 // ~3 месяца за один вызов генерации
)

// Форматы даты и времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveReservationStatuses статусы, при которых бронь занимает место в слоте
var ActiveReservationStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidReservationStatuses все допустимые статусы брони
var ValidReservationStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// reservedSlugs слаги, зарезервированные под маршруты платформы.
// Тенант с таким базовым слагом получает суффикс, как при коллизии.
var reservedSlugs = map[string]struct{}{
	"admin":     {},
	"login":     {},
	"signup":    {},
	"api":       {},
	"settings":  {},
	"dashboard": {},
	"profile":   {},
	"about":     {},
	"contact":   {},
	"help":      {},
	"support":   {},
	"terms":     {},
	"privacy":   {},
	"auth":      {},
	"t":         {},
	"user":      {},
	"checkout":  {},
	"pricing":   {},
}

// IsReservedSlug возвращает true, если слаг зарезервирован платформой
func IsReservedSlug(s string) bool {
	_, ok := reservedSlugs[s]
	return ok
}
