package tenants

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/internal/service/tenants/models"
	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// minPasswordLength минимальная длина пароля владельца
const minPasswordLength = 8

// validateSignup валидирует запрос на регистрацию тенанта
func validateSignup(req *models.SignupRequest) error {
	if strings.TrimSpace(req.BusinessName) == "" {
		return fmt.Errorf("%w: businessName is required", ErrInvalidInput)
	}
	if len(req.BusinessName) > domain.MaxBusinessNameLength {
		return fmt.Errorf("%w: businessName is too long", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !strings.Contains(req.Email, "@") {
		return fmt.Errorf("%w: email is malformed", ErrInvalidInput)
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return fmt.Errorf("%w: ownerName is required", ErrInvalidInput)
	}
	if len(req.OwnerPassword) < minPasswordLength {
		return fmt.Errorf("%w: ownerPassword must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	return nil
}

// settingsFromRequest конвертирует настройки запроса в доменные с применением
// дефолтов и валидацией. nil означает "все настройки по умолчанию".
func settingsFromRequest(req *models.SettingsRequest) (domain.TenantSettings, error) {
	settings := domain.TenantSettings{
		PrimaryColor:          domain.DefaultPrimaryColor,
		SlotDurationMinutes:   domain.DefaultSlotDurationMinutes,
		MaxAdvanceBookingDays: domain.DefaultMaxAdvanceBookingDays,
		WorkingHoursStart:     types.TimeString(domain.DefaultWorkingHoursStart),
		WorkingHoursEnd:       types.TimeString(domain.DefaultWorkingHoursEnd),
		WorkingDays:           append([]int(nil), domain.DefaultWorkingDays...),
	}

	if req == nil {
		return settings, nil
	}

	if req.PrimaryColor != "" {
		settings.PrimaryColor = req.PrimaryColor
	}
	if req.SlotDurationMinutes != 0 {
		settings.SlotDurationMinutes = req.SlotDurationMinutes
	}
	if req.MaxAdvanceBookingDays != 0 {
		settings.MaxAdvanceBookingDays = req.MaxAdvanceBookingDays
	}
	if req.WorkingHoursStart != "" {
		start, err := types.NewTimeStringFromString(req.WorkingHoursStart)
		if err != nil {
			return settings, fmt.Errorf("%w: invalid workingHoursStart: %v", ErrInvalidInput, err)
		}
		settings.WorkingHoursStart = start
	}
	if req.WorkingHoursEnd != "" {
		end, err := types.NewTimeStringFromString(req.WorkingHoursEnd)
		if err != nil {
			return settings, fmt.Errorf("%w: invalid workingHoursEnd: %v", ErrInvalidInput, err)
		}
		settings.WorkingHoursEnd = end
	}
	if len(req.WorkingDays) > 0 {
		for _, d := range req.WorkingDays {
			if d < 0 || d > 6 {
				return settings, fmt.Errorf("%w: workingDays values must be in [0, 6]", ErrInvalidInput)
			}
		}
		settings.WorkingDays = append([]int(nil), req.WorkingDays...)
	}
	settings.LogoURL = req.LogoURL
	settings.BackgroundURL = req.BackgroundURL
	settings.PublicPhone = req.PublicPhone
	settings.PublicEmail = req.PublicEmail

	if settings.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		settings.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return settings, fmt.Errorf("%w: slotDurationMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if settings.MaxAdvanceBookingDays < domain.MinAdvanceBookingDays ||
		settings.MaxAdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return settings, fmt.Errorf("%w: maxAdvanceBookingDays must be in [%d, %d]",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	if !settings.WorkingHoursStart.IsBefore(settings.WorkingHoursEnd) {
		return settings, fmt.Errorf("%w: workingHoursStart must be before workingHoursEnd", ErrInvalidInput)
	}

	return settings, nil
}
