package mappers

import (
	"stagecast/internal/domain/auth"
	"stagecast/internal/infrastructure/persistence/models"
)

// AuthMapper handles the conversion between credential entities and
// persistence models.
type AuthMapper interface {
	StateToEntity(model *models.OAuthStateModel) *auth.OAuthState
	StateToModel(entity *auth.OAuthState) *models.OAuthStateModel
	RefreshTokenToEntity(model *models.RefreshTokenModel) *auth.RefreshToken
	RefreshTokenToModel(entity *auth.RefreshToken) *models.RefreshTokenModel
	ExchangeCodeToEntity(model *models.ExchangeCodeModel) *auth.ExchangeCode
	ExchangeCodeToModel(entity *auth.ExchangeCode) *models.ExchangeCodeModel
}

type authMapper struct{}

// NewAuthMapper creates a new auth mapper
func NewAuthMapper() AuthMapper {
	return &authMapper{}
}

func (m *authMapper) StateToEntity(model *models.OAuthStateModel) *auth.OAuthState {
	if model == nil {
		return nil
	}
	return &auth.OAuthState{
		Token:     model.Token,
		ReturnTo:  model.ReturnTo,
		CreatedAt: model.CreatedAt,
	}
}

func (m *authMapper) StateToModel(entity *auth.OAuthState) *models.OAuthStateModel {
	if entity == nil {
		return nil
	}
	return &models.OAuthStateModel{
		Token:     entity.Token,
		ReturnTo:  entity.ReturnTo,
		CreatedAt: entity.CreatedAt,
	}
}

func (m *authMapper) RefreshTokenToEntity(model *models.RefreshTokenModel) *auth.RefreshToken {
	if model == nil {
		return nil
	}
	return &auth.RefreshToken{
		Token:     model.Token,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
	}
}

func (m *authMapper) RefreshTokenToModel(entity *auth.RefreshToken) *models.RefreshTokenModel {
	if entity == nil {
		return nil
	}
	return &models.RefreshTokenModel{
		Token:     entity.Token,
		UserID:    entity.UserID,
		CreatedAt: entity.CreatedAt,
	}
}

func (m *authMapper) ExchangeCodeToEntity(model *models.ExchangeCodeModel) *auth.ExchangeCode {
	if model == nil {
		return nil
	}
	return &auth.ExchangeCode{
		Code:      model.Code,
		UserID:    model.UserID,
		CreatedAt: model.CreatedAt,
	}
}

func (m *authMapper) ExchangeCodeToModel(entity *auth.ExchangeCode) *models.ExchangeCodeModel {
	if entity == nil {
		return nil
	}
	return &models.ExchangeCodeModel{
		Code:      entity.Code,
		UserID:    entity.UserID,
		CreatedAt: entity.CreatedAt,
	}
}
