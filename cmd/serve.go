package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profilehub/profile-hub/api/core"
	"github.com/profilehub/profile-hub/config"
	"github.com/profilehub/profile-hub/database"
	"github.com/profilehub/profile-hub/database/repo/accounts"
	"github.com/profilehub/profile-hub/database/repo/profiles"
	svcAccounts "github.com/profilehub/profile-hub/internal/accounts"
	"github.com/profilehub/profile-hub/internal/assets"
	"github.com/profilehub/profile-hub/internal/auth"
	svcProfile "github.com/profilehub/profile-hub/internal/profile"
	"github.com/profilehub/profile-hub/storage"
	"github.com/profilehub/profile-hub/utils"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	if err := os.MkdirAll("./data", os.ModePerm); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	provider, err := storage.NewProvider(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = utils.GenerateRandomToken(32)
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		log.Println("[Warning] jwt_secret is not set; generated an ephemeral secret. Tokens will not survive a restart.")
	}

	jwtService, err := auth.NewJWTService(secret, cfg.JWTExpiresIn)
	if err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	accountsRepo := accounts.NewRepository(db)
	profilesRepo := profiles.NewRepository(db)

	assetManager := assets.NewManager(provider, cfg.AvatarMaxDim, cfg.AvatarJPEGQuality)
	loginService := auth.NewLoginService(accountsRepo, jwtService)
	accountsService := svcAccounts.NewService(accountsRepo, profilesRepo, assetManager)
	profileService := svcProfile.NewService(accountsRepo, profilesRepo, assetManager)

	deps := &core.RouterDependencies{
		DB:              db,
		Config:          cfg,
		StorageProvider: provider,
		AssetManager:    assetManager,
		JWTService:      jwtService,
		LoginService:    loginService,
		AccountsRepo:    accountsRepo,
		AccountsService: accountsService,
		ProfileService:  profileService,
	}

	server := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited.")
}
