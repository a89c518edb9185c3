package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"github.com/zaikahq/zaika/internal/repo"
	"github.com/zaikahq/zaika/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCampaignRequest struct {
	Name            string `json:"name" validate:"required,max=150"`
	TargetAudience  string `json:"target_audience" validate:"required,oneof=all recent inactive"`
	MessageTemplate string `json:"message_template" validate:"required,max=1000"`
}

// createCampaignHandler godoc
//
//	@Summary		Create campaign
//	@Description	Create a draft SMS campaign
//	@Tags			campaigns
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCampaignRequest	true	"Campaign"
//	@Success		201		{object}	domain.Campaign
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns [post]
func (app *application) createCampaignHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCampaignRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	campaign := &domain.Campaign{
		Name:            req.Name,
		TargetAudience:  domain.Audience(req.TargetAudience),
		MessageTemplate: req.MessageTemplate,
		Status:          domain.CampaignDraft,
	}

	if err := app.campaignRepo.Create(r.Context(), campaign); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, campaign); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCampaignsHandler godoc
//
//	@Summary		List campaigns
//	@Tags			campaigns
//	@Produce		json
//	@Success		200	{object}	paginatedResponse
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns [get]
func (app *application) listCampaignsHandler(w http.ResponseWriter, r *http.Request) {
	page, pageSize := parsePagination(r)

	campaigns, total, err := app.campaignRepo.List(r.Context(), page, pageSize)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, paginate(campaigns, page, pageSize, total)); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getCampaignHandler godoc
//
//	@Summary		Get campaign
//	@Tags			campaigns
//	@Produce		json
//	@Param			campaign_id	path		string	true	"Campaign ID"
//	@Success		200			{object}	domain.Campaign
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns/{campaign_id} [get]
func (app *application) getCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "campaign_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	campaign, err := app.campaignRepo.GetByID(r.Context(), campaignID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, campaign); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCampaignHandler godoc
//
//	@Summary		Delete campaign
//	@Description	Only drafts can be deleted
//	@Tags			campaigns
//	@Param			campaign_id	path	string	true	"Campaign ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns/{campaign_id} [delete]
func (app *application) deleteCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "campaign_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.campaignRepo.Delete(r.Context(), campaignID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// previewAudienceHandler godoc
//
//	@Summary		Preview audience
//	@Description	How many customers an audience rule matches right now
//	@Tags			campaigns
//	@Produce		json
//	@Param			audience	query		string	true	"Audience rule"	Enums(all, recent, inactive)
//	@Success		200			{object}	map[string]interface{}
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns/preview [get]
func (app *application) previewAudienceHandler(w http.ResponseWriter, r *http.Request) {
	audience := domain.Audience(r.URL.Query().Get("audience"))
	if !audience.Valid() {
		app.badRequestResponse(w, r, errors.New("unknown audience"))
		return
	}

	count, err := app.campaignService.PreviewAudience(r.Context(), audience)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"audience": audience,
		"count":    count,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// scheduleCampaignHandler godoc
//
//	@Summary		Schedule campaign
//	@Description	Queue a draft campaign for dispatch
//	@Tags			campaigns
//	@Produce		json
//	@Param			campaign_id	path		string	true	"Campaign ID"
//	@Success		202			{object}	domain.Campaign
//	@Failure		409			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/marketing-campaigns/{campaign_id}/schedule [post]
func (app *application) scheduleCampaignHandler(w http.ResponseWriter, r *http.Request) {
	campaignID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "campaign_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	campaign, err := app.campaignService.Schedule(r.Context(), campaignID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCampaignNotDraft):
			app.conflictResponse(w, r, err)
		case errors.Is(err, repo.ErrNotFound):
			app.notFoundError(w, r, err)
		default:
			app.internalServerError(w, r, err)
		}
		return
	}

	if err := app.jsonRespone(w, http.StatusAccepted, campaign); err != nil {
		app.internalServerError(w, r, err)
	}
}
