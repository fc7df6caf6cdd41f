package handler

import (
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type StaffHandler struct {
	staff     service.StaffServiceInterface
	validator *validator.Validate
}

func NewStaffHandler(staff service.StaffServiceInterface) *StaffHandler {
	return &StaffHandler{
		staff:     staff,
		validator: newValidator(),
	}
}

// Login handles POST /api/v1/auth/login
func (h *StaffHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	resp, err := h.staff.Login(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *StaffHandler) CreateStaff(c *gin.Context) {
	var req entity.CreateStaffRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	staff, err := h.staff.CreateStaff(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, staff)
}

// ListStaff handles GET /api/v1/staff?active=true
func (h *StaffHandler) ListStaff(c *gin.Context) {
	staff, err := h.staff.ListStaff(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	if staff == nil {
		staff = []entity.Staff{}
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) GetStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	staff, err := h.staff.GetStaff(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

func (h *StaffHandler) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req entity.UpdateStaffRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	staff, err := h.staff.UpdateStaff(c.Request.Context(), id, &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, staff)
}

// SetCredentials handles PUT /api/v1/staff/credentials
func (h *StaffHandler) SetCredentials(c *gin.Context) {
	var req entity.SetCredentialsRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	if err := h.staff.SetPassword(c.Request.Context(), &req); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
