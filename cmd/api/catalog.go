package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/zaikahq/zaika/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCategoryRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	SortOrder int    `json:"sort_order" validate:"min=0"`
}

// createCategoryHandler godoc
//
//	@Summary		Create category
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCategoryRequest	true	"Category"
//	@Success		201		{object}	domain.Category
//	@Security		ApiKeyAuth
//	@Router			/catalog/categories [post]
func (app *application) createCategoryHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category := &domain.Category{
		Name:      req.Name,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := app.categoryRepo.Create(r.Context(), category); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCategoriesHandler godoc
//
//	@Summary		List categories
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	map[string]interface{}
//	@Router			/catalog/categories [get]
func (app *application) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := app.categoryRepo.List(r.Context())
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, categories); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateCategoryRequest struct {
	Name      *string `json:"name" validate:"omitempty,max=100"`
	SortOrder *int    `json:"sort_order" validate:"omitempty,min=0"`
	IsActive  *bool   `json:"is_active"`
}

// updateCategoryHandler godoc
//
//	@Summary		Update category
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			category_id	path		string					true	"Category ID"
//	@Param			request		body		UpdateCategoryRequest	true	"Fields to update"
//	@Success		200			{object}	domain.Category
//	@Failure		404			{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/catalog/categories/{category_id} [patch]
func (app *application) updateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "category_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateCategoryRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	category, err := app.categoryRepo.GetByID(r.Context(), categoryID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := app.categoryRepo.Update(r.Context(), category); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, category); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteCategoryHandler godoc
//
//	@Summary		Delete category
//	@Tags			catalog
//	@Param			category_id	path	string	true	"Category ID"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/catalog/categories/{category_id} [delete]
func (app *application) deleteCategoryHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "category_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.categoryRepo.Delete(r.Context(), categoryID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type VariantOptionRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Price float64 `json:"price" validate:"gte=0"`
}

type VariantGroupRequest struct {
	Name    string                 `json:"name" validate:"required,max=100"`
	Min     int                    `json:"min" validate:"gte=0"`
	Max     int                    `json:"max" validate:"gte=0"`
	Options []VariantOptionRequest `json:"options" validate:"required,min=1,dive"`
}

type CreateMenuItemRequest struct {
	Name          string                `json:"name" validate:"required,max=150"`
	Description   string                `json:"description" validate:"max=1000"`
	Price         float64               `json:"price" validate:"required,gt=0"`
	ImageURL      string                `json:"image_url" validate:"omitempty,url"`
	CategoryID    string                `json:"category_id" validate:"required"`
	VariantGroups []VariantGroupRequest `json:"variant_groups" validate:"dive"`
}

// createMenuItemHandler godoc
//
//	@Summary		Create menu item
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateMenuItemRequest	true	"Menu item"
//	@Success		201		{object}	domain.MenuItem
//	@Security		ApiKeyAuth
//	@Router			/catalog/items [post]
func (app *application) createMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if _, err := app.categoryRepo.GetByID(r.Context(), categoryID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	item := &domain.MenuItem{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		ImageURL:      req.ImageURL,
		CategoryID:    categoryID,
		IsAvailable:   true,
		VariantGroups: toVariantGroups(req.VariantGroups),
	}

	if err := app.menuItemRepo.Create(r.Context(), item); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

func toVariantGroups(reqs []VariantGroupRequest) []domain.VariantGroup {
	if len(reqs) == 0 {
		return nil
	}

	groups := make([]domain.VariantGroup, 0, len(reqs))
	for _, g := range reqs {
		options := make([]domain.VariantOption, 0, len(g.Options))
		for _, o := range g.Options {
			options = append(options, domain.VariantOption{Name: o.Name, Price: o.Price})
		}
		groups = append(groups, domain.VariantGroup{Name: g.Name, Min: g.Min, Max: g.Max, Options: options})
	}

	return groups
}

// listMenuItemsHandler godoc
//
//	@Summary		List menu items
//	@Tags			catalog
//	@Produce		json
//	@Param			category_id	query		string	false	"Category ID"
//	@Param			available	query		bool	false	"Only available items"
//	@Success		200			{object}	map[string]interface{}
//	@Router			/catalog/items [get]
func (app *application) listMenuItemsHandler(w http.ResponseWriter, r *http.Request) {
	filter := domain.MenuItemFilter{}

	if v := r.URL.Query().Get("category_id"); v != "" {
		categoryID, err := primitive.ObjectIDFromHex(v)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		filter.CategoryID = categoryID
	}
	filter.AvailableOnly, _ = strconv.ParseBool(r.URL.Query().Get("available"))

	items, err := app.menuItemRepo.List(r.Context(), filter)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuItemHandler godoc
//
//	@Summary		Get menu item
//	@Tags			catalog
//	@Produce		json
//	@Param			item_id	path		string	true	"Menu item ID"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		404		{object}	map[string]string
//	@Router			/catalog/items/{item_id} [get]
func (app *application) getMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	item, err := app.menuItemRepo.GetByID(r.Context(), itemID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateMenuItemRequest struct {
	Name          *string               `json:"name" validate:"omitempty,max=150"`
	Description   *string               `json:"description" validate:"omitempty,max=1000"`
	Price         *float64              `json:"price" validate:"omitempty,gt=0"`
	ImageURL      *string               `json:"image_url" validate:"omitempty,url"`
	VariantGroups []VariantGroupRequest `json:"variant_groups" validate:"dive"`
}

// updateMenuItemHandler godoc
//
//	@Summary		Update menu item
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Menu item ID"
//	@Param			request	body		UpdateMenuItemRequest	true	"Fields to update"
//	@Success		200		{object}	domain.MenuItem
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/catalog/items/{item_id} [patch]
func (app *application) updateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req UpdateMenuItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	item, err := app.menuItemRepo.GetByID(r.Context(), itemID)
	if err != nil {
		app.notFoundError(w, r, err)
		return
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.VariantGroups != nil {
		item.VariantGroups = toVariantGroups(req.VariantGroups)
	}

	if err := app.menuItemRepo.Update(r.Context(), item); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, item); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SetAvailabilityRequest struct {
	IsAvailable *bool `json:"is_available" validate:"required"`
}

// setMenuItemAvailabilityHandler godoc
//
//	@Summary		Set item availability
//	@Description	Toggle whether an item can be ordered
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			item_id	path		string					true	"Menu item ID"
//	@Param			request	body		SetAvailabilityRequest	true	"Availability"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	map[string]string
//	@Security		ApiKeyAuth
//	@Router			/catalog/items/{item_id}/availability [patch]
func (app *application) setMenuItemAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	var req SetAvailabilityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.menuItemRepo.SetAvailability(r.Context(), itemID, *req.IsAvailable); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"id":           itemID.Hex(),
		"is_available": *req.IsAvailable,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuItemHandler godoc
//
//	@Summary		Delete menu item
//	@Tags			catalog
//	@Param			item_id	path	string	true	"Menu item ID"
//	@Success		204
//	@Security		ApiKeyAuth
//	@Router			/catalog/items/{item_id} [delete]
func (app *application) deleteMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	itemID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "item_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	if err := app.menuItemRepo.Delete(r.Context(), itemID); err != nil {
		app.notFoundError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
