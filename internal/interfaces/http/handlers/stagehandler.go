package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"stagecast/internal/application/stage/usecases"
	"stagecast/internal/domain/stage"
	"stagecast/internal/interfaces/http/middleware"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

// StageHandler serves the stage CRUD surface.
type StageHandler struct {
	createUseCase         *usecases.CreateStageUseCase
	updateUseCase         *usecases.UpdateStageUseCase
	deleteUseCase         *usecases.DeleteStageUseCase
	getUseCase            *usecases.GetStageUseCase
	listPublicUseCase     *usecases.ListPublicStagesUseCase
	listAccessibleUseCase *usecases.ListAccessibleStagesUseCase
	logger                logger.Interface
}

func NewStageHandler(
	createUC *usecases.CreateStageUseCase,
	updateUC *usecases.UpdateStageUseCase,
	deleteUC *usecases.DeleteStageUseCase,
	getUC *usecases.GetStageUseCase,
	listPublicUC *usecases.ListPublicStagesUseCase,
	listAccessibleUC *usecases.ListAccessibleStagesUseCase,
	logger logger.Interface,
) *StageHandler {
	return &StageHandler{
		createUseCase:         createUC,
		updateUseCase:         updateUC,
		deleteUseCase:         deleteUC,
		getUseCase:            getUC,
		listPublicUseCase:     listPublicUC,
		listAccessibleUseCase: listAccessibleUC,
		logger:                logger,
	}
}

type CreateStageRequest struct {
	Name     string `json:"name" binding:"required" validate:"required,min=1,max=100"`
	Color    string `json:"color" validate:"omitempty,hexcolor"`
	Private  bool   `json:"private"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

type UpdateStageRequest struct {
	Name    string `json:"name" validate:"omitempty,min=1,max=100"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
	Private bool   `json:"private"`
	// UsePasswordInBody marks that Password carries the new value; an
	// empty Password then clears the stage password.
	UsePasswordInBody bool   `json:"use_password_in_body"`
	Password          string `json:"password"`
}

// ListPublic handles GET /stages and GET /stages/by/:uid.
func (h *StageHandler) ListPublic(c *gin.Context) {
	cmd := usecases.ListStagesCommand{
		Filter:   parseListFilter(c),
		OwnerSID: c.Param("uid"),
	}

	result, err := h.listPublicUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to list public stages", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"stages": result.Stages})
}

// ListAccessible handles GET /stages/all and GET /stages/all/by/:uid.
func (h *StageHandler) ListAccessible(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	cmd := usecases.ListAccessibleStagesCommand{
		Actor:    u,
		Filter:   parseListFilter(c),
		OwnerSID: c.Param("uid"),
	}

	result, err := h.listAccessibleUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Errorw("failed to list accessible stages", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"stages": result.Stages})
}

// Get handles GET /stages/:sid. Auth is optional: private stages read
// as forbidden for everyone but the owner and invitees.
func (h *StageHandler) Get(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	result, err := h.getUseCase.Execute(c.Request.Context(), usecases.GetStageCommand{
		StageSID: c.Param("sid"),
		Actor:    actor,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"stage": result.Stage})
}

func (h *StageHandler) Create(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	var req CreateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreateStageCommand{
		Name:     req.Name,
		Color:    req.Color,
		Private:  req.Private,
		Password: req.Password,
		Owner:    u,
	}

	result, err := h.createUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Warnw("failed to create stage", "error", err, "user_id", u.SID)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{"stage": result.Stage})
}

func (h *StageHandler) Update(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdateStageCommand{
		StageSID:    c.Param("sid"),
		Actor:       u,
		Name:        req.Name,
		Color:       req.Color,
		Private:     req.Private,
		UsePassword: req.UsePasswordInBody,
		Password:    req.Password,
	}

	result, err := h.updateUseCase.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"stage": result.Stage})
}

func (h *StageHandler) Delete(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	result, err := h.deleteUseCase.Execute(c.Request.Context(), usecases.DeleteStageCommand{
		StageSID: c.Param("sid"),
		Actor:    u,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"stage": result.Stage})
}

// parseListFilter reads pagination and ordering from the query string.
// Unknown sort columns and orders fall back to created_at desc in the
// repository.
func parseListFilter(c *gin.Context) stage.ListFilter {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	return stage.ListFilter{
		Limit:     limit,
		Offset:    offset,
		Sort:      c.Query("sort"),
		SortOrder: c.Query("sort_order"),
	}
}
