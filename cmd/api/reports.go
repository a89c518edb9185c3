package main

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// salesReportHandler godoc
//
//	@Summary		Sales report
//	@Description	Per-day revenue plus order type and payment method breakdowns
//	@Tags			reports
//	@Produce		json
//	@Param			branch_id	query		string	true	"Branch ID"
//	@Param			from		query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To date (YYYY-MM-DD)"
//	@Success		200			{object}	domain.SalesReport
//	@Security		ApiKeyAuth
//	@Router			/reports/sales [get]
func (app *application) salesReportHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	report, err := app.reportService.SalesReport(r.Context(), branchID, from, to)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, report); err != nil {
		app.internalServerError(w, r, err)
	}
}

// exportSalesReportHandler godoc
//
//	@Summary		Export sales report
//	@Description	The per-day sales rows as a CSV download, or JSON when format=json
//	@Tags			reports
//	@Produce		text/csv
//	@Param			branch_id	query		string	true	"Branch ID"
//	@Param			from		query		string	false	"From date (YYYY-MM-DD)"
//	@Param			to			query		string	false	"To date (YYYY-MM-DD)"
//	@Param			format		query		string	false	"csv (default) or json"
//	@Success		200			{string}	string	"CSV body"
//	@Security		ApiKeyAuth
//	@Router			/reports/sales/export [get]
func (app *application) exportSalesReportHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	report, err := app.reportService.SalesReport(r.Context(), branchID, from, to)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		if err := app.jsonRespone(w, http.StatusOK, report.ByDay); err != nil {
			app.internalServerError(w, r, err)
		}
		return
	}

	filename := fmt.Sprintf("sales-%s-%s.csv", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"date", "orders", "revenue"}); err != nil {
		app.logger.Errorw("failed to write csv header", "error", err)
		return
	}

	for _, row := range report.ByDay {
		record := []string{
			row.Date.Format("2006-01-02"),
			strconv.Itoa(row.Orders),
			strconv.FormatFloat(row.Revenue, 'f', 2, 64),
		}
		if err := writer.Write(record); err != nil {
			app.logger.Errorw("failed to write csv row", "error", err)
			return
		}
	}
}

// shiftReportHandler godoc
//
//	@Summary		Shift report
//	@Description	Payment method totals for a POS session's window
//	@Tags			reports
//	@Produce		json
//	@Param			session_id	path		string	true	"Session ID"
//	@Success		200			{object}	domain.ShiftReport
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/reports/shifts/{session_id} [get]
func (app *application) shiftReportHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "session_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	report, err := app.reportService.ShiftReport(r.Context(), sessionID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, report); err != nil {
		app.internalServerError(w, r, err)
	}
}
