package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"github.com/jmoiron/sqlx"

	"locally/infras/otel"
	"locally/infras/postgres"
	"locally/internal/domains/profile/model"
	gDto "locally/shared/dto"
	gRepo "locally/shared/repository"
)

type Profile interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Profile) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Profile, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Profile]
}

func New(db *postgres.Connection, otel otel.Otel) Profile {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Profile](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
