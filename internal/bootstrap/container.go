package bootstrap

import (
	"context"
	"log"

	"github.com/ThurgyThurg/wisdom-web-mentor/internal/config"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/controller"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/logger"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/pkg/usage"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/memory"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/repository/unitofwork"
	"github.com/ThurgyThurg/wisdom-web-mentor/internal/service"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/retrieval"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/agent/router"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/embedding"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/events"
	"github.com/ThurgyThurg/wisdom-web-mentor/pkg/storage"

	pktNats "github.com/ThurgyThurg/wisdom-web-mentor/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController     controller.IAuthController
	AgentController    controller.IAgentController
	NoteController     controller.INoteController
	TaskController     controller.ITaskController
	PlanController     controller.IPlanController
	ResourceController controller.IResourceController
	SettingsController controller.ISettingsController
	QueryController    controller.IQueryController
	TelegramController controller.ITelegramController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding provider (app-level; chat providers are per user)
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIApiKey, cfg.Ai.OpenAIModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.OpenAIModel)
	}

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	} else {
		// Durable audit trail of everything the pipeline does.
		err = natsSub.Subscribe("events.>", "learnai-audit", func(ctx context.Context, event events.Event) error {
			sysLogger.Info("events", "event received", map[string]interface{}{
				"type": event.EventType(),
				"data": event.Payload(),
			})
			return nil
		})
		if err != nil {
			log.Printf("[WARN] Failed to subscribe to event stream: %v", err)
		}
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}
	limiter := usage.NewLimiter(rdb)

	blobStore, err := storage.NewS3Store(context.Background(), storage.S3Config{
		Endpoint:     cfg.Storage.Endpoint,
		Region:       cfg.Storage.Region,
		Bucket:       cfg.Storage.Bucket,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		Prefix:       cfg.Storage.Prefix,
		UsePathStyle: cfg.Storage.UsePathStyle,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	// 5. Agent pipeline pieces
	settingsCache := memory.NewSettingsCache()
	agentRouter := router.NewRouter(log.Default())
	retriever := retrieval.NewRetriever(embeddingProvider, service.NewChunkSource(uowFactory), log.Default())

	// 6. Services
	settingsService := service.NewSettingsService(uowFactory, settingsCache)
	authService := service.NewAuthService(uowFactory, sysLogger)
	agentService := service.NewAgentService(
		uowFactory,
		settingsService,
		agentRouter,
		retriever,
		limiter,
		natsPub,
		sysLogger,
	)
	noteService := service.NewNoteService(uowFactory, natsPub, sysLogger)
	taskService := service.NewTaskService(uowFactory, sysLogger)
	planService := service.NewPlanService(uowFactory, settingsService, natsPub, sysLogger)
	queryService := service.NewQueryService(uowFactory, embeddingProvider, sysLogger)

	publisherService := service.NewPublisherService(cfg.Topics.EmbedResource, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Topics.EmbedResource,
		uowFactory,
		embeddingProvider,
		blobStore,
		natsPub,
		sysLogger,
	)
	resourceService := service.NewResourceService(uowFactory, blobStore, publisherService, natsPub, sysLogger)

	telegramUserId, err := uuid.Parse(cfg.Telegram.UserId)
	if err != nil && cfg.Telegram.BotToken != "" {
		log.Printf("[WARN] TELEGRAM_USER_ID is not a valid UUID, the Telegram bridge will reject messages")
	}
	telegramService := service.NewTelegramService(
		service.TelegramConfig{
			BotToken: cfg.Telegram.BotToken,
			UserId:   telegramUserId,
		},
		uowFactory,
		agentService,
		sysLogger,
	)

	// 7. Controllers
	return &Container{
		AuthController:     controller.NewAuthController(authService),
		AgentController:    controller.NewAgentController(agentService),
		NoteController:     controller.NewNoteController(noteService),
		TaskController:     controller.NewTaskController(taskService),
		PlanController:     controller.NewPlanController(planService),
		ResourceController: controller.NewResourceController(resourceService),
		SettingsController: controller.NewSettingsController(settingsService),
		QueryController:    controller.NewQueryController(queryService),
		TelegramController: controller.NewTelegramController(telegramService, cfg.Telegram.WebhookSecret),

		ConsumerService: consumerService,
	}
}
