package handlers

import (
	"net/http"

	"github.com/imartinez/fronton-league/services"
)

// ReportHandler serves generated category artifacts: PDF reports and
// AI prose summaries.
type ReportHandler struct {
	reportService  services.ReportService
	summaryService services.SummaryService
}

func NewReportHandler(reportService services.ReportService, summaryService services.SummaryService) *ReportHandler {
	return &ReportHandler{
		reportService:  reportService,
		summaryService: summaryService,
	}
}

func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	report, err := h.reportService.GenerateReport(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"report": report}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *ReportHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	summary, err := h.summaryService.GenerateSummary(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"summary": summary}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
