// Package cache хранит готовые отчеты по хешу содержимого архива.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"telegram-chat-stats/internal/domain"
)

// Entry - закэшированный отчет и идентификатор, под которым он был выдан.
type Entry struct {
	ReportID  string
	Report    *domain.Report
	ExpiresAt time.Time
}

// ReportCache хранит отчеты с ограниченным временем жизни.
// Безопасен для конкурентного использования.
type ReportCache struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// NewReportCache создает пустой кэш.
func NewReportCache() *ReportCache {
	return &ReportCache{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

// Get возвращает запись по хешу, если она есть и не просрочена.
func (c *ReportCache) Get(hash string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[hash]
	if !ok || c.now().After(e.ExpiresAt) {
		return nil, false
	}
	return e, true
}

// Put сохраняет отчет под хешем на время ttl.
func (c *ReportCache) Put(hash, reportID string, report *domain.Report, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[hash] = &Entry{
		ReportID:  reportID,
		Report:    report,
		ExpiresAt: c.now().Add(ttl),
	}
}

// Len возвращает число записей, включая еще не удаленные просроченные.
func (c *ReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CleanupExpired удаляет просроченные записи и возвращает их число.
func (c *ReportCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for hash, e := range c.entries {
		if now.After(e.ExpiresAt) {
			delete(c.entries, hash)
			removed++
		}
	}
	return removed
}

// StartCleanupTicker периодически удаляет просроченные записи,
// пока не отменен ctx.
func (c *ReportCache) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.CleanupExpired()
			}
		}
	}()
}

// HashBytes возвращает SHA-256 данных в шестнадцатеричном виде.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
