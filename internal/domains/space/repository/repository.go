package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/internal/domains/space/model"
	gDto "locally/shared/dto"
	gRepo "locally/shared/repository"
)

type Space interface {
	Insert(ctx context.Context, model model.Space) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Space, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Space, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Space]
}

func New(db *postgres.Connection, otel otel.Otel) Space {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Space](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
