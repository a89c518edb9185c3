package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/repo"
	"github.com/zaikahq/zaika/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OpenSessionRequest struct {
	BranchID    string  `json:"branch_id" validate:"required"`
	OpeningCash float64 `json:"opening_cash" validate:"required,gt=0"`
}

// openSessionHandler godoc
//
//	@Summary		Open POS session
//	@Description	Open the branch cash session; one open session per branch
//	@Tags			pos
//	@Accept			json
//	@Produce		json
//	@Param			request	body		OpenSessionRequest	true	"Session request"
//	@Success		201		{object}	domain.PosSession
//	@Failure		409		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/pos/sessions [post]
func (app *application) openSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req OpenSessionRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	branchID, err := primitive.ObjectIDFromHex(req.BranchID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var cashierID primitive.ObjectID
	if claims := claimsFromContext(r.Context()); claims != nil {
		cashierID, _ = primitive.ObjectIDFromHex(claims.Subject)
	}

	session, err := app.posService.OpenSession(r.Context(), branchID, cashierID, req.OpeningCash)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionAlreadyOpen):
			app.conflictResponse(w, r, err)
		case errors.Is(err, service.ErrInvalidOpeningCash):
			app.badRequestResponse(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

type CloseSessionRequest struct {
	ClosingCash float64 `json:"closing_cash" validate:"gte=0"`
	Notes       string  `json:"notes" validate:"max=500"`
}

// closeSessionHandler godoc
//
//	@Summary		Close POS session
//	@Description	Close the session and reconcile the cash drawer
//	@Tags			pos
//	@Accept			json
//	@Produce		json
//	@Param			session_id	path		string				true	"Session ID"
//	@Param			request		body		CloseSessionRequest	true	"Closing count"
//	@Success		200			{object}	domain.PosSession
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/pos/sessions/{session_id}/close [post]
func (app *application) closeSessionHandler(w http.ResponseWriter, r *http.Request) {
	sessionID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "session_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req CloseSessionRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.posService.CloseSession(r.Context(), sessionID, req.ClosingCash, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClosingCash):
			app.badRequestResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// activeSessionHandler godoc
//
//	@Summary		Active POS session
//	@Description	The branch's currently open session, if any
//	@Tags			pos
//	@Produce		json
//	@Param			branch_id	query		string	true	"Branch ID"
//	@Success		200			{object}	domain.PosSession
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/pos/sessions/active [get]
func (app *application) activeSessionHandler(w http.ResponseWriter, r *http.Request) {
	branchID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("branch_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	session, err := app.posService.ActiveSession(r.Context(), branchID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, session); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listSessionsHandler godoc
//
//	@Summary		List POS sessions
//	@Tags			pos
//	@Produce		json
//	@Param			branch_id	query		string	false	"Branch ID"
//	@Success		200			{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/pos/sessions [get]
func (app *application) listSessionsHandler(w http.ResponseWriter, r *http.Request) {
	var branchID primitive.ObjectID
	if v := r.URL.Query().Get("branch_id"); v != "" {
		id, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		branchID = id
	}

	page, pageSize := parsePagination(r)

	sessions, total, err := app.posService.ListSessions(r.Context(), branchID, page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(sessions, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}
