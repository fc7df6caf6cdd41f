package processor

import (
	"context"
	"errors"
	"testing"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNewCronScheduler(t *testing.T) {
	mockSvc := new(MockBackupArchiveService)

	scheduler := NewCronScheduler(mockSvc)

	assert.NotNil(t, scheduler.cron)
	assert.Equal(t, mockSvc, scheduler.backupSvc)
}

func TestCronScheduler_Start_RegistersJob(t *testing.T) {
	// Arrange
	mockSvc := new(MockBackupArchiveService)
	scheduler := NewCronScheduler(mockSvc)

	// Act
	err := scheduler.Start(context.Background(), "0 0 2 * * *", false)
	defer scheduler.Stop()

	// Assert
	require.NoError(t, err)
	assert.Len(t, scheduler.GetEntries(), 1)
	mockSvc.AssertNotCalled(t, "RunBackup", mock.Anything)
}

func TestCronScheduler_Start_RunNow(t *testing.T) {
	// Arrange
	mockSvc := new(MockBackupArchiveService)
	scheduler := NewCronScheduler(mockSvc)
	mockSvc.On("RunBackup", mock.Anything).Return(&entity.BackupArchive{ID: primitive.NewObjectID()}, nil).Once()

	// Act
	err := scheduler.Start(context.Background(), "0 0 2 * * *", true)
	defer scheduler.Stop()

	// Assert
	require.NoError(t, err)
	mockSvc.AssertExpectations(t)
}

func TestCronScheduler_Start_RunNowFailureIsNotFatal(t *testing.T) {
	// Arrange
	mockSvc := new(MockBackupArchiveService)
	scheduler := NewCronScheduler(mockSvc)
	mockSvc.On("RunBackup", mock.Anything).Return(nil, errors.New("pos-service down")).Once()

	// Act
	err := scheduler.Start(context.Background(), "0 0 2 * * *", true)
	defer scheduler.Stop()

	// Assert
	assert.NoError(t, err)
	mockSvc.AssertExpectations(t)
}

func TestCronScheduler_Start_InvalidSchedule(t *testing.T) {
	tests := []struct {
		name     string
		schedule string
	}{
		{name: "garbage", schedule: "every night"},
		{name: "five fields", schedule: "0 2 * * *"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewCronScheduler(new(MockBackupArchiveService))

			err := scheduler.Start(context.Background(), tt.schedule, false)

			assert.Error(t, err)
			assert.Empty(t, scheduler.GetEntries())
		})
	}
}
