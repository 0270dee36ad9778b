package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"textkeeper/config"
	"textkeeper/internal/firebase"
	"textkeeper/internal/handler"
	"textkeeper/internal/identity"
	redisstore "textkeeper/internal/redis"
	"textkeeper/internal/repository"
	"textkeeper/internal/server"
	"textkeeper/internal/services"
	"textkeeper/internal/storage"
	"textkeeper/pkg/database"
	"textkeeper/pkg/logger"

	firebasesdk "firebase.google.com/go/v4"
	"gorm.io/gorm"
)

// backends holds the clients opened at startup so main can close them.
type backends struct {
	db       *gorm.DB
	firebase *firebasesdk.App
	closers  []func() error
}

func (b *backends) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
}

func main() {
	cfg := config.LoadConfig()

	appLogger := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(appLogger)

	err := run(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Errorf("textkeeper exited: %v", err)
	}
	appLogger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run owns every opened backend, so they are closed on all return paths.
func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	b, err := openBackends(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open backends: %w", err)
	}
	defer b.close()

	docs, err := buildDocumentStore(ctx, cfg, b)
	if err != nil {
		return fmt.Errorf("build document store: %w", err)
	}

	provider, err := buildIdentityProvider(ctx, cfg, b)
	if err != nil {
		return fmt.Errorf("build identity provider: %w", err)
	}

	authService := services.NewAuthService(provider, docs, appLogger)
	textService := services.NewTextService(docs)
	userService := services.NewUserService(docs)

	handlers := &server.Handlers{
		Auth: handler.NewAuthHandler(authService),
		Text: handler.NewTextHandler(textService),
		User: handler.NewUserHandler(userService),
	}

	var health repository.Pinger
	if p, ok := docs.(repository.Pinger); ok {
		health = p
	}

	srv := server.New(cfg, appLogger)
	srv.SetupRoutes(handlers, health)

	appLogger.Infof("identity backend %s, document backend %s", cfg.IdentityBackend, cfg.DocumentBackend)

	return srv.Start()
}

func openBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	b := &backends{}

	if cfg.UsesDatabase() {
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		b.db = db
		b.closers = append(b.closers, sqlDB.Close)
		if err := database.Migrate(db); err != nil {
			b.close()
			return nil, err
		}
	}

	if cfg.UsesFirebase() {
		app, err := firebase.NewApp(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsFile: cfg.FirebaseCredentialsFile,
			DatabaseURL:     cfg.FirebaseDatabaseURL,
		})
		if err != nil {
			b.close()
			return nil, err
		}
		b.firebase = app
	}

	return b, nil
}

func buildDocumentStore(ctx context.Context, cfg *config.Config, b *backends) (repository.DocumentStore, error) {
	switch cfg.DocumentBackend {
	case config.DocumentFirestore:
		client, err := b.firebase.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("firestore client: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		return firebase.NewFirestoreStore(client), nil
	case config.DocumentPostgres, config.DocumentSQLite:
		return repository.NewDocumentRepository(b.db), nil
	case config.DocumentRedis:
		client, err := redisstore.NewClient(ctx, redisstore.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, client.Close)
		return redisstore.NewDocumentStore(client), nil
	case config.DocumentDynamoDB:
		client, err := storage.NewDynamoDBClient(ctx, storage.DynamoDBConfig{
			Region:    cfg.AWSRegion,
			Table:     cfg.DynamoDBTable,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
			Endpoint:  cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, err
		}
		return storage.NewDynamoDBStore(client, cfg.DynamoDBTable), nil
	case config.DocumentMemory:
		return repository.NewMemoryDocumentRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported document backend %q", cfg.DocumentBackend)
	}
}

func buildIdentityProvider(ctx context.Context, cfg *config.Config, b *backends) (identity.Provider, error) {
	switch cfg.IdentityBackend {
	case config.IdentityFirebase:
		authClient, err := b.firebase.Auth(ctx)
		if err != nil {
			return nil, fmt.Errorf("firebase auth client: %w", err)
		}
		verifier := firebase.NewSignInClient(cfg.FirebaseWebAPIKey, cfg.FirebaseAuthEmulator, nil)
		return firebase.NewIdentityProvider(authClient, verifier), nil
	case config.IdentityLocal:
		accounts := repository.NewAccountRepository(b.db)
		return identity.NewLocalProvider(accounts, cfg.JWTSecret, time.Duration(cfg.JWTExpiryMin)*time.Minute), nil
	default:
		return nil, fmt.Errorf("unsupported identity backend %q", cfg.IdentityBackend)
	}
}
