package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/internal/domains/booking/model"
	gDto "locally/shared/dto"
	gRepo "locally/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
}

// Detail reads bookings joined with their space and the tenant's profile.
type Detail interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Detail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type detailRepositoryImpl struct {
	gRepo.Repository[model.Detail]
}

func NewDetail(db *postgres.Connection, otel otel.Otel) Detail {
	return &detailRepositoryImpl{
		Repository: gRepo.NewRepository[model.Detail](model.EntityName+"_detail", model.TableName, model.FieldID, db, otel),
	}
}
