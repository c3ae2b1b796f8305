package tenants

import (
	"context"
	"fmt"

	"github.com/gosimple/slug"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// maxSlugAttempts ограничение на перебор суффиксов при коллизиях
const maxSlugAttempts = 1000

// allocateSlug выделяет уникальный слаг из названия бизнеса.
//
// Базовый слаг строится через slug.Make (нижний регистр, не-алфавитные
// символы заменяются дефисами, без ведущих/замыкающих дефисов). Если базовый
// слаг занят или зарезервирован платформой, последовательно пробуются
// варианты base-2, base-3, ...
func (s *Service) allocateSlug(ctx context.Context, businessName string) (string, error) {
	base := slug.Make(businessName)
	if base == "" {
		return "", fmt.Errorf("%w: business name produces empty slug", ErrInvalidInput)
	}

	if !domain.IsReservedSlug(base) {
		taken, err := s.tenantRepo.SlugExists(ctx, base)
		if err != nil {
			return "", fmt.Errorf("%w: failed to check slug: %v", ErrInternal, err)
		}
		if !taken {
			return base, nil
		}
	}

	for counter := 2; counter < maxSlugAttempts; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		taken, err := s.tenantRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("%w: failed to check slug: %v", ErrInternal, err)
		}
		if !taken {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("%w: no free slug for %q after %d attempts", ErrInternal, base, maxSlugAttempts)
}
