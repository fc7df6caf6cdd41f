package handler

import (
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type SaleHandler struct {
	sales     service.SaleServiceInterface
	validator *validator.Validate
}

func NewSaleHandler(sales service.SaleServiceInterface) *SaleHandler {
	return &SaleHandler{
		sales:     sales,
		validator: newValidator(),
	}
}

// CreateSale handles POST /api/v1/sales. staff_id defaults to the caller.
func (h *SaleHandler) CreateSale(c *gin.Context) {
	var req entity.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", map[string]interface{}{"cause": err.Error()})
		return
	}
	if req.StaffID == 0 {
		req.StaffID = currentStaffID(c)
	}
	if err := h.validator.Struct(req); err != nil {
		badRequest(c, formatValidationError(err), nil)
		return
	}

	sale, err := h.sales.CreateSale(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, sale)
}

// GetSale handles GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	sale, err := h.sales.GetSale(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, sale)
}

// ListSales handles GET /api/v1/sales?staff_id=&start=&end=
func (h *SaleHandler) ListSales(c *gin.Context) {
	var (
		filter entity.SaleFilter
		err    error
	)
	if filter.StaffID, err = queryID(c, "staff_id"); err != nil {
		badRequest(c, err.Error(), nil)
		return
	}
	if filter.Start, err = queryTime(c, "start", false); err != nil {
		badRequest(c, err.Error(), nil)
		return
	}
	if filter.End, err = queryTime(c, "end", true); err != nil {
		badRequest(c, err.Error(), nil)
		return
	}

	sales, err := h.sales.ListSales(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	if sales == nil {
		sales = []entity.Sale{}
	}

	c.JSON(http.StatusOK, sales)
}
