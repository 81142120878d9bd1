package main

import (
	"github.com/ericogr/pet-arena/internal/api"
	"github.com/ericogr/pet-arena/internal/chain"
	"github.com/ericogr/pet-arena/internal/config"
	"github.com/ericogr/pet-arena/internal/constants"
	"github.com/ericogr/pet-arena/internal/logging"
	"github.com/ericogr/pet-arena/internal/rng"
	"github.com/ericogr/pet-arena/internal/service"
	"github.com/ericogr/pet-arena/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load a local .env when present; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	envCfg, err := config.LoadEnv()
	if err != nil {
		logging.Fatal("Invalid environment configuration", err, nil)
	}

	cfg, err := config.LoadConfig(envCfg.ConfigPath)
	if err != nil {
		logging.Fatal("Invalid arena configuration", err, logging.Fields{"config_path": envCfg.ConfigPath})
	}

	db, err := storage.OpenAndMigrate(envCfg.DBPath, cfg.BattleParameters)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)

	clock, err := chain.NewClock(repo)
	if err != nil {
		logging.Fatal("Failed to load chain state", err, nil)
	}

	randSource, err := rng.NewBlockSeedSource()
	if err != nil {
		logging.Fatal("Failed to initialize randomness source", err, nil)
	}

	arena := service.NewArena(repo, randSource, clock)
	handler := api.NewArenaHandler(arena, []byte(envCfg.SessionSecret), envCfg.AdminToken, envCfg.StartingBalance)

	startBlockScheduler(arena, clock, envCfg.BlockInterval)

	router := buildRouter(handler)

	logging.Info("Server started", logging.Fields{constants.LogFieldAddr: envCfg.ServerAddress})
	if err := router.Run(envCfg.ServerAddress); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}

func buildRouter(handler *api.ArenaHandler) *gin.Engine {
	router := gin.Default()

	apiRoutes := router.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.POST(constants.RouteRegister, handler.Register)
		apiRoutes.GET(constants.RouteLeaderboard, handler.Leaderboard)
		apiRoutes.GET(constants.RouteChainHeight, handler.ChainHeight)
		apiRoutes.GET(constants.RouteParameters, handler.GetParameters)

		// Authenticated endpoints
		protected := apiRoutes.Group("")
		protected.Use(handler.AuthRequired())

		protected.POST(constants.RoutePets, handler.CreatePet)
		protected.GET(constants.RoutePets, handler.ListPets)
		protected.GET(constants.RoutePetByID, handler.GetPet)
		protected.GET(constants.RoutePetStats, handler.GetPetStats)
		protected.GET(constants.RoutePetHistory, handler.GetPetHistory)
		protected.GET(constants.RoutePetEligible, handler.GetPetEligible)

		protected.POST(constants.RouteBattles, handler.CreateChallenge)
		protected.GET(constants.RouteBattleByID, handler.GetBattle)
		protected.POST(constants.RouteBattleAccept, handler.AcceptChallenge)
		protected.POST(constants.RouteBattleDecline, handler.DeclineChallenge)
		protected.POST(constants.RouteBattleMove, handler.ExecuteMove)
		protected.POST(constants.RouteBattleUltimate, handler.UseUltimateMove)
		protected.POST(constants.RouteBattleEffect, handler.ApplyStatusEffect)
		protected.POST(constants.RouteBattleForfeit, handler.ForfeitBattle)
		protected.POST(constants.RouteBattleClaim, handler.ClaimRewards)
		protected.GET(constants.RouteBattleWatch, handler.WatchBattle)

		protected.POST(constants.RouteMatchmakingEnter, handler.EnterMatchmaking)
		protected.POST(constants.RouteMatchmakingLeave, handler.LeaveMatchmaking)

		// Governance endpoints
		admin := apiRoutes.Group("")
		admin.Use(handler.AdminRequired())
		admin.PUT(constants.RouteParameters, handler.UpdateParameters)
	}

	return router
}
