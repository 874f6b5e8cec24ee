package main

import (
	"net/http"

	"github.com/finbyte/hp-portfolio/internal/response"
	"github.com/finbyte/hp-portfolio/internal/store"
)

type GetAgingSummaryResponse = response.APIResponse[[]store.AgingSummaryRow]
type GetRiskProfileResponse = response.APIResponse[[]store.RiskProfileRow]

func (app *application) handleGetAgingSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := app.store.Reports.GetAgingSummary(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to query aging summary: "+err.Error())
		return
	}

	resp := &GetAgingSummaryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully computed aging bucket summary",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

func (app *application) handleGetRiskProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := app.store.Reports.GetRiskProfile(ctx)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to query risk profile: "+err.Error())
		return
	}

	resp := &GetRiskProfileResponse{
		Success: true,
		Data:    data,
		Message: "Successfully computed portfolio risk profile",
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
