package main

import (
	"fmt"
	"log"
	"net/http"

	"beneficiarydesk/auth"
	"beneficiarydesk/config"
	"beneficiarydesk/db"
	"beneficiarydesk/db/mongo"
	"beneficiarydesk/db/postgres"
	"beneficiarydesk/handlers"
	"beneficiarydesk/repository"
	"beneficiarydesk/routes"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()

	var userRepo repository.UserRepository
	var beneficiaryRepo repository.BeneficiaryRepository

	switch cfg.DBType {
	case "postgres":
		// Schema lives in versioned migrations (Postgres only)
		db.RunMigrations()

		pg := postgres.NewPostgresDB(cfg.PostgresURL)
		if err := pg.Connect(); err != nil {
			panic(err)
		}
		defer pg.Disconnect()

		userRepo = repository.NewPostgresUserRepo(pg.Conn)
		beneficiaryRepo = repository.NewPostgresBeneficiaryRepo(pg.Conn)

	case "mongo":
		mg := mongo.NewMongoDB(cfg.MongoURL)
		if err := mg.Connect(); err != nil {
			panic(err)
		}
		defer mg.Disconnect()

		mongoUserRepo := repository.NewMongoUserRepo(mg.Client, cfg.DBName)
		mongoBeneficiaryRepo := repository.NewMongoBeneficiaryRepo(mg.Client, cfg.DBName)

		// Unique indexes on email, cnic, and token_id back the duplicate-key
		// handling; create them up front.
		if err := mongoUserRepo.EnsureIndexes(mg.Ctx); err != nil {
			panic(err)
		}
		if err := mongoBeneficiaryRepo.EnsureIndexes(mg.Ctx); err != nil {
			panic(err)
		}

		userRepo = mongoUserRepo
		beneficiaryRepo = mongoBeneficiaryRepo

	default:
		panic("DB_TYPE not supported")
	}

	authenticator := auth.NewAuthenticator([]byte(cfg.JWTSecret))

	// Handlers
	authHandler := &handlers.AuthHandler{Repo: userRepo, JWTSecret: []byte(cfg.JWTSecret)}
	userHandler := &handlers.UserHandler{Repo: userRepo}
	beneficiaryHandler := &handlers.BeneficiaryHandler{Repo: beneficiaryRepo}
	statsHandler := &handlers.StatsHandler{Repo: beneficiaryRepo}

	// Slip handler with combined repository
	slipRepo := repository.NewSlipRepository(beneficiaryRepo)
	slipHandler := &handlers.SlipHandler{Repo: slipRepo, SavePath: cfg.SlipDir}

	handler := routes.SetupRoutes(authenticator, authHandler, userHandler, beneficiaryHandler, statsHandler, slipHandler)

	port := cfg.Port
	fmt.Printf("Server running on port %s\n", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal(err)
	}
}
