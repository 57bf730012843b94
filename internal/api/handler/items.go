package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/yuqianw/smart-wardrobe/internal/api/middleware"
	"github.com/yuqianw/smart-wardrobe/internal/api/response"
	"github.com/yuqianw/smart-wardrobe/internal/domain"
	"github.com/yuqianw/smart-wardrobe/internal/service"
)

var validate = validator.New()

// ItemHandler handles wardrobe inventory requests
type ItemHandler struct {
	wardrobe *service.WardrobeService
}

// NewItemHandler creates a new item handler
func NewItemHandler(wardrobe *service.WardrobeService) *ItemHandler {
	return &ItemHandler{wardrobe: wardrobe}
}

// List handles GET /api/v1/items
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	items, err := h.wardrobe.ListItems(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "failed to list items")
		return
	}

	response.OK(w, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// Get handles GET /api/v1/items/{itemID}
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		response.BadRequest(w, "invalid item ID")
		return
	}

	item, err := h.wardrobe.GetItem(r.Context(), userID, itemID)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			response.NotFound(w, "item not found")
			return
		}
		response.InternalError(w, "failed to get item")
		return
	}

	response.OK(w, item)
}

// Create handles POST /api/v1/items
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	var input service.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(input); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.wardrobe.CreateItem(r.Context(), userID, input)
	if err != nil {
		response.InternalError(w, "failed to create item")
		return
	}

	response.Created(w, item)
}

type updateStatusRequest struct {
	Status domain.ItemStatus `json:"status" validate:"required,oneof=in_wardrobe to_wash at_tailor dry_cleaning"`
}

// UpdateStatus handles PATCH /api/v1/items/{itemID}/status
func (h *ItemHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "authentication required")
		return
	}

	itemID, err := uuid.Parse(chi.URLParam(r, "itemID"))
	if err != nil {
		response.BadRequest(w, "invalid item ID")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	item, err := h.wardrobe.UpdateItemStatus(r.Context(), userID, itemID, req.Status)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			response.NotFound(w, "item not found")
			return
		}
		response.InternalError(w, "failed to update item status")
		return
	}

	response.OK(w, item)
}
