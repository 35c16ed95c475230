package handlers

import (
	"fmt"
	"net/http"
	"time"

	"yoyo-backend/internal/services"
	"yoyo-backend/internal/timeutil"
	"yoyo-backend/pkg/utils"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(s *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: s}
}

// parseWindow reads ?start=YYYY-MM-DD&end=YYYY-MM-DD, defaulting to the
// current month.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	now := timeutil.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, timeutil.Cairo)
	end := now

	var err error
	if v := r.URL.Query().Get("start"); v != "" {
		if start, err = timeutil.ParseDate(v); err != nil {
			return start, end, fmt.Errorf("invalid start date %q", v)
		}
	}
	if v := r.URL.Query().Get("end"); v != "" {
		if end, err = timeutil.ParseDate(v); err != nil {
			return start, end, fmt.Errorf("invalid end date %q", v)
		}
	}
	if end.Before(start) {
		return start, end, fmt.Errorf("end date before start date")
	}
	return start, end, nil
}

// GetReport handles GET /api/reports?start=&end=
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.Service.GetReport(r.Context(), start, end)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, report)
}

// GetReportCSV handles GET /api/reports/csv
func (h *ReportHandler) GetReportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, filename, err := h.Service.GenerateCSV(r.Context(), start, end)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate CSV: %v", err))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}

// GetReportPDF handles GET /api/reports/pdf
func (h *ReportHandler) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseWindow(r)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	data, filename, err := h.Service.GeneratePDF(r.Context(), start, end)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, fmt.Sprintf("failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Write(data)
}
