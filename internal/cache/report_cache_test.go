package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-chat-stats/internal/domain"
)

func TestReportCache(t *testing.T) {
	t.Run("Запись и чтение", func(t *testing.T) {
		c := NewReportCache()
		report := &domain.Report{ArchiveName: "chat", MessageCount: 2}

		c.Put("hash", "id-1", report, time.Minute)

		e, found := c.Get("hash")
		require.True(t, found)
		assert.Equal(t, "id-1", e.ReportID)
		assert.Same(t, report, e.Report)
		assert.WithinDuration(t, time.Now().Add(time.Minute), e.ExpiresAt, time.Second)
	})

	t.Run("Чтение несуществующего ключа", func(t *testing.T) {
		_, found := NewReportCache().Get("missing")
		assert.False(t, found)
	})

	t.Run("Просроченная запись не возвращается", func(t *testing.T) {
		c := NewReportCache()
		c.Put("hash", "id", &domain.Report{}, -time.Second)

		_, found := c.Get("hash")
		assert.False(t, found)
	})

	t.Run("Очистка просроченных записей", func(t *testing.T) {
		c := NewReportCache()
		current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return current }

		c.Put("old", "1", &domain.Report{}, time.Minute)
		c.Put("new", "2", &domain.Report{}, time.Hour)

		current = current.Add(10 * time.Minute)
		assert.Equal(t, 1, c.CleanupExpired())
		assert.Equal(t, 1, c.Len())

		_, found := c.Get("new")
		assert.True(t, found)
	})
}

func TestStartCleanupTicker(t *testing.T) {
	c := NewReportCache()
	c.Put("expired", "1", &domain.Report{}, 20*time.Millisecond)
	c.Put("valid", "2", &domain.Report{}, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c.StartCleanupTicker(ctx, 50*time.Millisecond)

	assert.Eventually(t, func() bool { return c.Len() == 1 }, time.Second, 10*time.Millisecond)

	_, found := c.Get("valid")
	assert.True(t, found, "Действительная запись должна остаться")
}

func TestHash(t *testing.T) {
	// SHA256 для "hello world"
	const expected = "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"

	t.Run("Хеш байтов", func(t *testing.T) {
		assert.Equal(t, expected, HashBytes([]byte("hello world")))
	})

	t.Run("Разные данные дают разные хеши", func(t *testing.T) {
		assert.NotEqual(t, HashBytes([]byte("a")), HashBytes([]byte("b")))
	})
}
