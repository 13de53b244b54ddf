package handlers

import (
	"net/http"

	"todoshare-backend/application/services"
	"todoshare-backend/domain/todo"
	"todoshare-backend/pkg/auth"
	"todoshare-backend/pkg/common"
	apperrors "todoshare-backend/pkg/errors"
	"todoshare-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies; to-do payloads are tiny
const maxBodyBytes = 64 * 1024

// TodoHandler handles to-do HTTP requests
type TodoHandler struct {
	service *services.TodoService
	logger  *zap.Logger
}

// NewTodoHandler creates a new to-do handler
func NewTodoHandler(service *services.TodoService, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		service: service,
		logger:  logger,
	}
}

// CreateTodoRequest represents the request body for creating an item
type CreateTodoRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
}

// UpdateTodoRequest represents the request body for updating an item
type UpdateTodoRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	DueDate string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Done    bool   `json:"done"`
}

// ShareTodoRequest represents the request body for toggling sharing
type ShareTodoRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// AttachmentResponse carries the presigned upload URL
type AttachmentResponse struct {
	UploadURL string `json:"uploadUrl"`
}

// GetTodos handles GET /todos
func (h *TodoHandler) GetTodos(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	items, err := h.service.ListForUser(r.Context(), userCtx.UserID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	common.RespondItems(w, http.StatusOK, items)
}

// GetUsers handles GET /todos/{todoID}/users
func (h *TodoHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.GetUserFromContext(r.Context()); err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID := chi.URLParam(r, "todoID")
	entries, err := h.service.UserList(r.Context(), todoID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	common.RespondItems(w, http.StatusOK, entries)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	item, err := h.service.Create(r.Context(), userCtx.UserID, req.Title, req.DueDate)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	// The client contract expects 200 with the created item, not 201.
	common.RespondJSON(w, http.StatusOK, item)
}

// UpdateTodo handles PATCH /todos/{todoID}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	var req UpdateTodoRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID := chi.URLParam(r, "todoID")
	item, err := h.service.Update(r.Context(), userCtx.UserID, todoID, todo.Update{
		Title:   req.Title,
		DueDate: req.DueDate,
		Done:    req.Done,
	})
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, item)
}

// DeleteTodo handles DELETE /todos/{todoID}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID := chi.URLParam(r, "todoID")
	if err := h.service.Delete(r.Context(), userCtx.UserID, todoID); err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ShareTodo handles POST /todos/{todoID}/share. A missing item maps to
// 400 here rather than 404: the contract treats a share against an
// unknown item or user as a bad request.
func (h *TodoHandler) ShareTodo(w http.ResponseWriter, r *http.Request) {
	var req ShareTodoRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID := chi.URLParam(r, "todoID")
	if _, err := h.service.ToggleSharing(r.Context(), userCtx.UserID, todoID, req.UserID); err != nil {
		if apperrors.IsNotFound(err) {
			common.RespondError(w, http.StatusBadRequest, "Todo item or user not found")
			return
		}
		h.respondServiceError(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, nil)
}

// CreateAttachment handles POST /todos/{todoID}/attachment
func (h *TodoHandler) CreateAttachment(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		common.RespondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	todoID := chi.URLParam(r, "todoID")
	uploadURL, err := h.service.CreateAttachmentURL(r.Context(), userCtx.UserID, todoID)
	if err != nil {
		h.respondServiceError(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, AttachmentResponse{UploadURL: uploadURL})
}

// respondServiceError maps coordinator errors onto HTTP statuses
func (h *TodoHandler) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsNotFound(err):
		common.RespondError(w, http.StatusNotFound, "Todo item not found")
	case apperrors.IsForbidden(err):
		common.RespondError(w, http.StatusForbidden, "You do not own this todo item")
	case apperrors.IsValidation(err):
		common.RespondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.HTTPStatus != 0 {
			common.RespondError(w, appErr.HTTPStatus, "Internal server error")
			return
		}
		common.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
