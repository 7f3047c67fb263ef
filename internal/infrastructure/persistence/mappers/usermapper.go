package mappers

import (
	"stagecast/internal/domain/user"
	"stagecast/internal/infrastructure/persistence/models"
)

// UserMapper handles the conversion between domain entities and persistence models
type UserMapper interface {
	ToEntity(model *models.UserModel) *user.User
	ToModel(entity *user.User) *models.UserModel
	ToEntities(models []*models.UserModel) []*user.User
}

type userMapper struct{}

// NewUserMapper creates a new user mapper
func NewUserMapper() UserMapper {
	return &userMapper{}
}

func (m *userMapper) ToEntity(model *models.UserModel) *user.User {
	if model == nil {
		return nil
	}
	return &user.User{
		ID:         model.ID,
		SID:        model.SID,
		Provider:   model.Provider,
		ProviderID: model.ProviderID,
		Email:      model.Email,
		Username:   model.Username,
		AvatarURL:  model.AvatarURL,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}

func (m *userMapper) ToModel(entity *user.User) *models.UserModel {
	if entity == nil {
		return nil
	}
	return &models.UserModel{
		ID:         entity.ID,
		SID:        entity.SID,
		Provider:   entity.Provider,
		ProviderID: entity.ProviderID,
		Email:      entity.Email,
		Username:   entity.Username,
		AvatarURL:  entity.AvatarURL,
		CreatedAt:  entity.CreatedAt,
		UpdatedAt:  entity.UpdatedAt,
	}
}

func (m *userMapper) ToEntities(userModels []*models.UserModel) []*user.User {
	entities := make([]*user.User, 0, len(userModels))
	for _, model := range userModels {
		entities = append(entities, m.ToEntity(model))
	}
	return entities
}
