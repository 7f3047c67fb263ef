package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stagecast/internal/application/invite/usecases"
	"stagecast/internal/interfaces/http/middleware"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

// InviteHandler serves the invite surface. Listing and lookup are
// scoped to the current user; creation is the stage owner's privilege.
type InviteHandler struct {
	createUseCase *usecases.CreateInviteUseCase
	listUseCase   *usecases.ListInvitesUseCase
	getUseCase    *usecases.GetInviteUseCase
	deleteUseCase *usecases.DeleteInviteUseCase
	logger        logger.Interface
}

func NewInviteHandler(
	createUC *usecases.CreateInviteUseCase,
	listUC *usecases.ListInvitesUseCase,
	getUC *usecases.GetInviteUseCase,
	deleteUC *usecases.DeleteInviteUseCase,
	logger logger.Interface,
) *InviteHandler {
	return &InviteHandler{
		createUseCase: createUC,
		listUseCase:   listUC,
		getUseCase:    getUC,
		deleteUseCase: deleteUC,
		logger:        logger,
	}
}

type CreateInviteRequest struct {
	StageID string `json:"stage_id" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
}

func (h *InviteHandler) List(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), usecases.ListInvitesCommand{Actor: u})
	if err != nil {
		h.logger.Errorw("failed to list invites", "error", err, "user_id", u.SID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"invites": result.Invites})
}

func (h *InviteHandler) Get(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetInviteCommand{
		Actor:     u,
		InviteSID: c.Param("iid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"invite": result.Invite})
}

func (h *InviteHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	var req CreateInviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), usecases.CreateInviteCommand{
		Actor:         u,
		StageSID:      req.StageID,
		TargetUserSID: req.UserID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"invite": result.Invite})
}

func (h *InviteHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	result, err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteInviteCommand{
		Actor:     u,
		InviteSID: c.Param("iid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"invite": result.Invite})
}
