package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/imartinez/fronton-league/services"
)

// TransferHandler serves spreadsheet import and export for categories.
type TransferHandler struct {
	importService services.ImportService
	exportService services.ExportService
}

func NewTransferHandler(importService services.ImportService, exportService services.ExportService) *TransferHandler {
	return &TransferHandler{
		importService: importService,
		exportService: exportService,
	}
}

func (h *TransferHandler) ImportTeams(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file := r.MultipartForm.File["file"]
	if len(file) == 0 {
		badRequestResponse(w, r, errors.New("missing file field in multipart form"))
		return
	}

	result, err := h.importService.ImportTeams(r.Context(), categoryID, file[0])
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"import": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TransferHandler) ExportCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := getIDFromURL(r, "categoryID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	export, err := h.exportService.ExportCategory(r.Context(), categoryID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Content)
}
