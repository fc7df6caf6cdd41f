package handler

import (
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SettingsHandler serves taxes, discounts and printers.
type SettingsHandler struct {
	pricing   service.PricingServiceInterface
	printers  service.PrinterServiceInterface
	validator *validator.Validate
}

func NewSettingsHandler(pricing service.PricingServiceInterface, printers service.PrinterServiceInterface) *SettingsHandler {
	return &SettingsHandler{
		pricing:   pricing,
		printers:  printers,
		validator: newValidator(),
	}
}

func (h *SettingsHandler) CreateTax(c *gin.Context) {
	var req entity.CreateTaxRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	tax, err := h.pricing.CreateTax(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tax)
}

func (h *SettingsHandler) ListTaxes(c *gin.Context) {
	taxes, err := h.pricing.ListTaxes(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, taxes)
}

func (h *SettingsHandler) CreateDiscount(c *gin.Context) {
	var req entity.CreateDiscountRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	discount, err := h.pricing.CreateDiscount(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, discount)
}

func (h *SettingsHandler) ListDiscounts(c *gin.Context) {
	discounts, err := h.pricing.ListDiscounts(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, discounts)
}

func (h *SettingsHandler) CreatePrinter(c *gin.Context) {
	var req entity.CreatePrinterRequest
	if !bindJSON(c, h.validator, &req) {
		return
	}

	printer, err := h.printers.CreatePrinter(c.Request.Context(), &req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, printer)
}

func (h *SettingsHandler) ListPrinters(c *gin.Context) {
	printers, err := h.printers.ListPrinters(c.Request.Context(), queryBool(c, "active"))
	if err != nil {
		writeError(c, err)
		return
	}
	if printers == nil {
		printers = []entity.Printer{}
	}
	c.JSON(http.StatusOK, printers)
}
