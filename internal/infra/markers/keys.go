package markers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

// Prefix общий префикс всех отметок уведомлений
const Prefix = "notification_"

// Key строит ключ отметки: notification_<audience>_<appointmentID>_<N>min_<YYYY-MM-DD>
func Key(audience domain.Audience, appointmentID int64, minutes int, day time.Time) string {
	return fmt.Sprintf("%s%s_%d_%dmin_%s", Prefix, audience, appointmentID, minutes, day.Format(domain.DateFormat))
}

// KindKey ключ отметки повторяющегося уведомления конкретного типа:
// notification_<kind>_<audience>_<appointmentID>_<N>min_<YYYY-MM-DD>
func KindKey(kind domain.AlertKind, audience domain.Audience, appointmentID int64, minutes int, day time.Time) string {
	return fmt.Sprintf("%s%s_%s_%d_%dmin_%s", Prefix, kind, audience, appointmentID, minutes, day.Format(domain.DateFormat))
}

// IsForDay проверяет, что ключ относится к указанному дню
func IsForDay(key string, day time.Time) bool {
	return strings.HasSuffix(key, "_"+day.Format(domain.DateFormat))
}

// PurgeOtherDays удаляет отметки всех дней, кроме day
// Возвращает количество удаленных ключей
func PurgeOtherDays(ctx context.Context, store Store, day time.Time) (int, error) {
	keys, err := store.Keys(ctx, Prefix)
	if err != nil {
		return 0, fmt.Errorf("markers: list keys: %w", err)
	}

	removed := 0
	for _, key := range keys {
		if IsForDay(key, day) {
			continue
		}
		if err := store.Delete(ctx, key); err != nil {
			return removed, fmt.Errorf("markers: delete %s: %w", key, err)
		}
		removed++
	}

	return removed, nil
}
