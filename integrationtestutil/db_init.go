package integrationtestutil

import (
	"context"
	"log"

	"github.com/balajigroup/customer-intake/database"
	"github.com/balajigroup/customer-intake/database/models"
	"github.com/balajigroup/customer-intake/shared"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

// InitDatabaseContainer starts a throwaway postgres container, connects to
// it and migrates the intake schema. The returned func terminates the
// container.
func InitDatabaseContainer() (shared.DB, func()) {
	ctx := context.Background()

	dbName := "intake"
	dbUser := "user"
	dbPassword := "password"

	postgresC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.BasicWaitStrategies(),
	)

	terminate := func() {
		if err := testcontainers.TerminateContainer(postgresC); err != nil {
			log.Printf("failed to terminate container: %s", err)
		}
	}
	if err != nil {
		panic(err)
	}

	host, _ := postgresC.Host(ctx)
	port, _ := postgresC.MappedPort(ctx, "5432")

	db, err := database.NewConnection(
		host, dbUser, dbPassword, dbName, port.Port(),
	)
	if err != nil {
		terminate()
		panic(err)
	}

	if err := db.AutoMigrate(&models.Company{}, &models.Contact{}, &models.CardImage{}); err != nil {
		terminate()
		panic(err)
	}

	return db, terminate
}
