package handler

import (
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type BackupHandler struct {
	backups   service.BackupServiceInterface
	validator *validator.Validate
}

func NewBackupHandler(backups service.BackupServiceInterface) *BackupHandler {
	return &BackupHandler{
		backups:   backups,
		validator: newValidator(),
	}
}

// CreateBackup handles GET /api/v1/backup
func (h *BackupHandler) CreateBackup(c *gin.Context) {
	snapshot, err := h.backups.CreateBackup(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// RestoreBackup handles POST /api/v1/backup/restore. The body is a snapshot
// as produced by CreateBackup.
func (h *BackupHandler) RestoreBackup(c *gin.Context) {
	var snapshot entity.BackupSnapshot
	if !bindJSON(c, h.validator, &snapshot) {
		return
	}

	result, err := h.backups.RestoreBackup(c.Request.Context(), &snapshot)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
