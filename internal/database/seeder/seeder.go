package seeder

import (
	"context"

	"learnpath/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
