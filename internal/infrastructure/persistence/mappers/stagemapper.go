package mappers

import (
	"encoding/json"

	"gorm.io/datatypes"

	"stagecast/internal/domain/stage"
	"stagecast/internal/infrastructure/persistence/models"
)

// StageMapper handles the conversion between stage entities and
// persistence models.
type StageMapper interface {
	ToEntity(model *models.StageModel) *stage.Stage
	ToModel(entity *stage.Stage) *models.StageModel
	ToEntities(models []*models.StageModel) []*stage.Stage

	InviteToEntity(model *models.InviteModel) *stage.Invite
	InviteToModel(entity *stage.Invite) *models.InviteModel
	InvitesToEntities(models []*models.InviteModel) []*stage.Invite

	MessageToEntity(model *models.ChatMessageModel) *stage.ChatMessage
	MessageToModel(entity *stage.ChatMessage) *models.ChatMessageModel
	MessagesToEntities(models []*models.ChatMessageModel) []*stage.ChatMessage
}

type stageMapper struct{}

// NewStageMapper creates a new stage mapper
func NewStageMapper() StageMapper {
	return &stageMapper{}
}

func (m *stageMapper) ToEntity(model *models.StageModel) *stage.Stage {
	if model == nil {
		return nil
	}
	return &stage.Stage{
		ID:           model.ID,
		SID:          model.SID,
		Name:         model.Name,
		Color:        model.Color,
		Private:      model.Private,
		PasswordHash: model.PasswordHash,
		OwnerID:      model.OwnerID,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (m *stageMapper) ToModel(entity *stage.Stage) *models.StageModel {
	if entity == nil {
		return nil
	}
	return &models.StageModel{
		ID:           entity.ID,
		SID:          entity.SID,
		Name:         entity.Name,
		Color:        entity.Color,
		Private:      entity.Private,
		PasswordHash: entity.PasswordHash,
		OwnerID:      entity.OwnerID,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (m *stageMapper) ToEntities(stageModels []*models.StageModel) []*stage.Stage {
	entities := make([]*stage.Stage, 0, len(stageModels))
	for _, model := range stageModels {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}

func (m *stageMapper) InviteToEntity(model *models.InviteModel) *stage.Invite {
	if model == nil {
		return nil
	}
	return &stage.Invite{
		ID:        model.ID,
		SID:       model.SID,
		StageID:   model.StageID,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
	}
}

func (m *stageMapper) InviteToModel(entity *stage.Invite) *models.InviteModel {
	if entity == nil {
		return nil
	}
	return &models.InviteModel{
		ID:        entity.ID,
		SID:       entity.SID,
		StageID:   entity.StageID,
		UserID:    entity.UserID,
		CreatedAt: entity.CreatedAt,
	}
}

func (m *stageMapper) InvitesToEntities(inviteModels []*models.InviteModel) []*stage.Invite {
	entities := make([]*stage.Invite, 0, len(inviteModels))
	for _, model := range inviteModels {
		entities = append(entities, m.InviteToEntity(model))
	}
	return entities
}

func (m *stageMapper) MessageToEntity(model *models.ChatMessageModel) *stage.ChatMessage {
	if model == nil {
		return nil
	}
	var meta *stage.FileMeta
	if len(model.FileMeta) > 0 {
		meta = &stage.FileMeta{}
		if err := json.Unmarshal(model.FileMeta, meta); err != nil {
			meta = nil
		}
	}
	return &stage.ChatMessage{
		ID:          model.ID,
		SID:         model.SID,
		Type:        stage.MessageType(model.Type),
		MessageData: model.MessageData,
		FileMeta:    meta,
		StageID:     model.StageID,
		UserID:      model.UserID,
		CreatedAt:   model.CreatedAt,
	}
}

func (m *stageMapper) MessageToModel(entity *stage.ChatMessage) *models.ChatMessageModel {
	if entity == nil {
		return nil
	}
	var meta datatypes.JSON
	if entity.FileMeta != nil {
		if raw, err := json.Marshal(entity.FileMeta); err == nil {
			meta = raw
		}
	}
	return &models.ChatMessageModel{
		ID:          entity.ID,
		SID:         entity.SID,
		Type:        string(entity.Type),
		MessageData: entity.MessageData,
		FileMeta:    meta,
		StageID:     entity.StageID,
		UserID:      entity.UserID,
		CreatedAt:   entity.CreatedAt,
	}
}

func (m *stageMapper) MessagesToEntities(messageModels []*models.ChatMessageModel) []*stage.ChatMessage {
	entities := make([]*stage.ChatMessage, 0, len(messageModels))
	for _, model := range messageModels {
		entities = append(entities, m.MessageToEntity(model))
	}
	return entities
}
