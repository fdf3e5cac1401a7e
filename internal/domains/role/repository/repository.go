package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/internal/domains/role/model"
	gDto "locally/shared/dto"
	gRepo "locally/shared/repository"
)

type Role interface {
	Insert(ctx context.Context, model model.UserRole) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.UserRole) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.UserRole, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.UserRole]
}

func New(db *postgres.Connection, otel otel.Otel) Role {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.UserRole](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
