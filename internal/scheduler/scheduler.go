package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/eighttenaric/gmc-editor/internal/email"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler prunes old feed backups so the backup directory doesn't grow
// without bound. Failures are mailed to the alert recipients when an alert
// mailer is configured.
type Scheduler struct {
	cron            *cron.Cron
	backupDir       string
	retentionDays   int
	logger          *zap.Logger
	email           email.Email
	alertRecipients []string
}

func NewScheduler(backupDir string, retentionDays int, logger *zap.Logger, e email.Email, alertRecipients []string) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithSeconds()),
		backupDir:       backupDir,
		retentionDays:   retentionDays,
		logger:          logger,
		email:           e,
		alertRecipients: alertRecipients,
	}
}

// Start registers the retention sweep.
// cronExpr uses 6 fields: seconds, minutes, hours, day of month, month, day of week
// Example: "0 0 3 * * *" runs at 3:00 AM every day
func (s *Scheduler) Start(cronExpr string) error {
	_, err := s.cron.AddFunc(cronExpr, s.runRetentionSweep)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started",
		zap.String("cron_expression", cronExpr),
		zap.Int("retention_days", s.retentionDays),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("stopping scheduler")
	return s.cron.Stop()
}

func (s *Scheduler) runRetentionSweep() {
	s.logger.Info("starting backup retention sweep")
	startTime := time.Now()

	removed, err := s.sweep()
	if err != nil {
		s.notifyError("backup retention sweep failed", err)
		return
	}

	s.logger.Info("backup retention sweep finished",
		zap.Int("removed", removed),
		zap.Duration("duration", time.Since(startTime)),
	)
}

// sweep removes backup workbooks older than the retention window.
func (s *Scheduler) sweep() (int, error) {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read backup dir: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "feed_") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			s.logger.Warn("failed to stat backup file", zap.String("file", name), zap.Error(err))
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}

		if err := os.Remove(filepath.Join(s.backupDir, name)); err != nil {
			s.logger.Warn("failed to remove backup file", zap.String("file", name), zap.Error(err))
			continue
		}
		removed++
		s.logger.Debug("removed expired backup", zap.String("file", name))
	}

	return removed, nil
}

func (s *Scheduler) notifyError(msg string, err error) {
	s.logger.Error(msg, zap.Error(err))

	if s.email == nil || len(s.alertRecipients) == 0 {
		return
	}

	body := fmt.Sprintf("%s: %v", msg, err)
	if sendErr := s.email.Send("GMC feed editor alert", body, "<p>"+body+"</p>", s.alertRecipients); sendErr != nil {
		s.logger.Error("failed to send alert email", zap.Error(sendErr))
	}
}
