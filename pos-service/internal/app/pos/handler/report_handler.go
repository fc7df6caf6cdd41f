package handler

import (
	"fmt"
	"net/http"

	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/service"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler struct {
	reports service.ReportServiceInterface
}

func NewReportHandler(reports service.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// SalesReport handles GET /api/v1/reports/sales?start_date=&end_date=&staff_id=&category_id=
func (h *ReportHandler) SalesReport(c *gin.Context) {
	query, ok := parseReportQuery(c)
	if !ok {
		return
	}

	report, err := h.reports.GenerateSalesReport(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportSalesReport handles GET /api/v1/reports/sales/export and returns an xlsx file.
func (h *ReportHandler) ExportSalesReport(c *gin.Context) {
	query, ok := parseReportQuery(c)
	if !ok {
		return
	}

	data, err := h.reports.ExportSalesReport(c.Request.Context(), query)
	if err != nil {
		writeError(c, err)
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.xlsx", query.StartDate.Format(dateLayout), query.EndDate.Format(dateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func parseReportQuery(c *gin.Context) (entity.SalesReportQuery, bool) {
	var query entity.SalesReportQuery

	start, err := queryTime(c, "start_date", false)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return query, false
	}
	end, err := queryTime(c, "end_date", true)
	if err != nil {
		badRequest(c, err.Error(), nil)
		return query, false
	}
	if start == nil || end == nil {
		badRequest(c, "start_date and end_date are required", nil)
		return query, false
	}
	query.StartDate, query.EndDate = *start, *end

	if query.StaffID, err = queryID(c, "staff_id"); err != nil {
		badRequest(c, err.Error(), nil)
		return query, false
	}
	if query.CategoryID, err = queryID(c, "category_id"); err != nil {
		badRequest(c, err.Error(), nil)
		return query, false
	}
	return query, true
}
