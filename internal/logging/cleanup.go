package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/models"
	"gorm.io/gorm"
)

// StartCleanup prunes system_logs older than retention once a day until done
// is closed.
func StartCleanup(db *gorm.DB, retention time.Duration, done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := Prune(db, retention)
				if err != nil {
					slog.Error("log cleanup failed", "error", err)
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// Prune deletes system_logs recorded before now minus retention.
func Prune(db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
