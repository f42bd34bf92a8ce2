package markers

import "context"

// Store хранилище отметок "уведомление уже отправлено"
// Ключи строятся функцией Key и всегда содержат дату
type Store interface {
	Exists(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
}
