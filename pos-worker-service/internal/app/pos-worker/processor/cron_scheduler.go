package processor

import (
	"context"

	"webpos/pkg/logger"
	"webpos/pos-worker-service/internal/app/pos-worker/service"

	"github.com/robfig/cron/v3"
)

type CronScheduler struct {
	cron      *cron.Cron
	backupSvc service.BackupArchiveServiceInterface
}

func NewCronScheduler(backupSvc service.BackupArchiveServiceInterface) *CronScheduler {
	log := cronLogger{}
	c := cron.New(
		cron.WithSeconds(),
		cron.WithLogger(log),
		cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
	)

	return &CronScheduler{
		cron:      c,
		backupSvc: backupSvc,
	}
}

// Start registers the backup job. With runNow the first backup is taken
// synchronously before Start returns.
func (s *CronScheduler) Start(ctx context.Context, schedule string, runNow bool) error {
	logger.Info().Str("schedule", schedule).Msg("Starting cron scheduler")

	if _, err := s.cron.AddFunc(schedule, func() { s.runBackup(ctx) }); err != nil {
		return err
	}

	s.cron.Start()

	if runNow {
		s.runBackup(ctx)
	}
	return nil
}

func (s *CronScheduler) runBackup(ctx context.Context) {
	logger.Info().Msg("Cron job triggered: archiving backup")

	archive, err := s.backupSvc.RunBackup(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Backup archive failed")
		return
	}
	logger.Info().Str("archive_id", archive.ID.Hex()).Msg("Cron job completed")
}

func (s *CronScheduler) Stop() {
	logger.Info().Msg("Stopping cron scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Cron scheduler stopped")
}

func (s *CronScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}

// cronLogger routes robfig/cron diagnostics through the service logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Debug().Fields(keysAndValues).Str("component", "cron").Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Error().Err(err).Fields(keysAndValues).Str("component", "cron").Msg(msg)
}
