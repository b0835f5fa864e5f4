package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gridweave/gridweave-api/api"
	gridapi "github.com/gridweave/gridweave-api/api/grid"
	api_i "github.com/gridweave/gridweave-api/api/i"
	"github.com/gridweave/gridweave-api/api/identity"
	"github.com/gridweave/gridweave-api/config"
	"github.com/gridweave/gridweave-api/gridgen"
	"github.com/gridweave/gridweave-api/infrastruture/cache"
	logger "github.com/gridweave/gridweave-api/infrastruture/log"
	"github.com/gridweave/gridweave-api/infrastruture/repo"
	"github.com/gridweave/gridweave-api/infrastruture/sortedstorage"
	"github.com/gridweave/gridweave-api/infrastruture/token"
	"github.com/gridweave/gridweave-api/service"
	"github.com/gridweave/gridweave-api/service/i"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	userRepo        i.UserRepo
	gridRepo        i.GridRepo
	renderCache     i.RenderCache
	sortedQueue     i.SortedQueue
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	gridService     i.GridManager
	generationQueue *service.GenerationQueue
	authController  api_i.Controller
	gridController  api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	gridRepo = repo.NewGridRepo(client, config.Envs.DBName, "grids")
	appLogger.Info("Repositories initialized")
}

func initRenderCache() {
	var err error
	renderCache, err = cache.NewRedisRenderCache(redisClient, config.Envs.RenderCacheTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating render cache: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Render cache initialized")
}

func initSortedQueue() {
	var err error
	sortedQueue, err = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTL)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sorted queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Sorted queue initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initGridService() {
	gridLogger, err := logger.New("GRID-SERVICE", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating grid service logger: %v", err))
		os.Exit(1)
	}

	gridService, err = service.NewGridService(&service.GridConfig{
		Repo:  gridRepo,
		Cache: renderCache,
		Factory: func(p *gridgen.Params) (i.Generator, error) {
			return gridgen.New(p)
		},
		Logger: gridLogger,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating grid service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Grid service initialized")
}

func initGenerationQueue() {
	queueLogger, err := logger.New("GRID-QUEUE", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generation queue logger: %v", err))
		os.Exit(1)
	}

	generationQueue, err = service.NewGenerationQueue(sortedQueue, gridService, queueLogger, &service.QueueOptions{
		PollInterval: time.Duration(config.Envs.QueuePollMillis) * time.Millisecond,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generation queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generation queue initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	gridController, err = gridapi.NewGridController(gridService, generationQueue)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating grid controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, gridController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	gin.SetMode(config.Envs.GinMode)

	// Initialize dependencies
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating app logger: %v\n", err)
		os.Exit(1)
	}

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initRepos(mongoClient)
	initRenderCache()
	initSortedQueue()
	initJWTTokenizer()
	initAuthService()
	initGridService()
	initGenerationQueue()
	initControllers()
	initRouter(jwtTokenizer)

	// Run the queue worker until shutdown.
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	generationQueue.Start(workerCtx)
	defer generationQueue.Stop()

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
