package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"stagecast/internal/application/stage/usecases"
	"stagecast/internal/infrastructure/livekit"
	"stagecast/internal/interfaces/http/middleware"
	apperrors "stagecast/internal/shared/errors"
	"stagecast/internal/shared/logger"
	"stagecast/internal/shared/utils"
)

// StageRoomHandler serves the in-room surface of a stage: media grants,
// chat, attachments and speaker management. Every route except the
// grant mint requires a valid media grant, and each handler checks the
// grant's room against the stage in the path.
type StageRoomHandler struct {
	issueGrantUseCase     *usecases.IssueStageGrantUseCase
	chatHistoryUseCase    *usecases.GetChatHistoryUseCase
	postMessageUseCase    *usecases.PostChatMessageUseCase
	postAttachmentUseCase *usecases.PostChatAttachmentUseCase
	requestToSpeakUseCase *usecases.RequestToSpeakUseCase
	setSpeakerUseCase     *usecases.SetSpeakerUseCase
	logger                logger.Interface
}

func NewStageRoomHandler(
	issueGrantUC *usecases.IssueStageGrantUseCase,
	chatHistoryUC *usecases.GetChatHistoryUseCase,
	postMessageUC *usecases.PostChatMessageUseCase,
	postAttachmentUC *usecases.PostChatAttachmentUseCase,
	requestToSpeakUC *usecases.RequestToSpeakUseCase,
	setSpeakerUC *usecases.SetSpeakerUseCase,
	logger logger.Interface,
) *StageRoomHandler {
	return &StageRoomHandler{
		issueGrantUseCase:     issueGrantUC,
		chatHistoryUseCase:    chatHistoryUC,
		postMessageUseCase:    postMessageUC,
		postAttachmentUseCase: postAttachmentUC,
		requestToSpeakUseCase: requestToSpeakUC,
		setSpeakerUseCase:     setSpeakerUC,
		logger:                logger,
	}
}

type PostChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type SetSpeakerRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Token handles GET /stage/:sid/token. It mints the grant the client
// presents to the media server; the owner joins as a speaker.
func (h *StageRoomHandler) Token(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}

	result, err := h.issueGrantUseCase.Execute(c.Request.Context(), usecases.IssueStageGrantCommand{
		StageSID: c.Param("sid"),
		Actor:    u,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"token": result.Token})
}

// Info echoes the validated grant claims back to the client.
func (h *StageRoomHandler) Info(c *gin.Context) {
	grant, ok := h.roomGrant(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", grant)
}

func (h *StageRoomHandler) GetChat(c *gin.Context) {
	if _, ok := h.roomGrant(c); !ok {
		return
	}

	result, err := h.chatHistoryUseCase.Execute(c.Request.Context(), usecases.GetChatHistoryCommand{
		StageSID: c.Param("sid"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"messages": result.Messages})
}

func (h *StageRoomHandler) PostChat(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if _, ok := h.roomGrant(c); !ok {
		return
	}

	var req PostChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing message")
		return
	}

	result, err := h.postMessageUseCase.Execute(c.Request.Context(), usecases.PostChatMessageCommand{
		StageSID: c.Param("sid"),
		Actor:    u,
		Message:  req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"id": result.Message.ID})
}

func (h *StageRoomHandler) PostChatFile(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if _, ok := h.roomGrant(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing file")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logger.Errorw("failed to open uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, usecases.MaxAttachmentSize+1))
	if err != nil {
		h.logger.Errorw("failed to read uploaded file", "error", err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error occurred")
		return
	}

	result, err := h.postAttachmentUseCase.Execute(c.Request.Context(), usecases.PostChatAttachmentCommand{
		StageSID:    c.Param("sid"),
		Actor:       u,
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"id": result.Message.ID})
}

func (h *StageRoomHandler) RequestToSpeak(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if _, ok := h.roomGrant(c); !ok {
		return
	}

	result, err := h.requestToSpeakUseCase.Execute(c.Request.Context(), usecases.RequestToSpeakCommand{
		StageSID: c.Param("sid"),
		Actor:    u,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"id": result.Message.ID})
}

// MakeSpeaker handles POST /stage/:sid/owner/make_speaker.
func (h *StageRoomHandler) MakeSpeaker(c *gin.Context) {
	h.setSpeaker(c, true)
}

// MakeListener handles POST /stage/:sid/owner/make_listener.
func (h *StageRoomHandler) MakeListener(c *gin.Context) {
	h.setSpeaker(c, false)
}

func (h *StageRoomHandler) setSpeaker(c *gin.Context, speaker bool) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
		return
	}
	if _, ok := h.roomGrant(c); !ok {
		return
	}

	var req SetSpeakerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Missing user_id")
		return
	}

	result, err := h.setSpeakerUseCase.Execute(c.Request.Context(), usecases.SetSpeakerCommand{
		StageSID:      c.Param("sid"),
		Actor:         u,
		TargetUserSID: req.UserID,
		Speaker:       speaker,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"id": result.Message.ID})
}

// roomGrant fetches the validated grant claims and rejects requests
// whose grant was minted for a different room than the one in the path.
func (h *StageRoomHandler) roomGrant(c *gin.Context) (*livekit.ClaimGrants, bool) {
	grant, ok := middleware.StageGrant(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid livekit token")
		return nil, false
	}

	if grant.Video.Room != c.Param("sid") {
		utils.ErrorResponseWithError(c, apperrors.NewGrantRoomMismatchError())
		return nil, false
	}

	return grant, true
}
