package bootstrap

import (
	"context"
	"log"

	"study-tutor-be/internal/config"
	"study-tutor-be/internal/controller"
	"study-tutor-be/internal/handler"
	"study-tutor-be/internal/pkg/logger"
	"study-tutor-be/internal/repository/unitofwork"
	"study-tutor-be/internal/service"
	"study-tutor-be/internal/websocket"
	"study-tutor-be/pkg/embedding"
	"study-tutor-be/pkg/llm/factory"
	pktNats "study-tutor-be/pkg/nats"
	"study-tutor-be/pkg/rag/extract"
	"study-tutor-be/pkg/rag/response"
	"study-tutor-be/pkg/storage"
	"study-tutor-be/pkg/youtube"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const ingestionTopic = "RESOURCE_INGESTED"

type Container struct {
	// Controllers
	TermController     controller.ITermController
	SubjectController  controller.ISubjectController
	ResourceController controller.IResourceController
	NoteController     controller.INoteController
	ChatController     controller.IChatController

	// Background Services (Exposed for main.go to run)
	NotificationService service.INotificationService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
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

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	objectStorage := storage.NewLocalStorage(cfg.Storage.UploadDir, cfg.App.BaseURL)

	ytClient := youtube.NewInnertubeClient()
	extractor := extract.NewExtractor(ytClient)

	// 5. Services
	publisherService := service.NewPublisherService(ingestionTopic, pubSub)
	notifService := service.NewNotificationService(pubSub, ingestionTopic, wsHub, wsLogger)

	termService := service.NewTermService(uowFactory)
	subjectService := service.NewSubjectService(uowFactory)
	noteService := service.NewNoteService(uowFactory)

	resourceService := service.NewResourceService(
		uowFactory,
		extractor,
		embeddingProvider,
		objectStorage,
		publisherService,
		natsPub,
		sysLogger,
		cfg.Rag,
	)

	responseGenerator := response.NewGenerator(llmProvider)
	chatService := service.NewChatService(
		uowFactory,
		embeddingProvider,
		responseGenerator,
		sysLogger,
		cfg.Rag,
	)

	notifHandler := handler.NewNotificationHandler(wsHub, wsLogger)

	return &Container{
		TermController:     controller.NewTermController(termService),
		SubjectController:  controller.NewSubjectController(subjectService),
		ResourceController: controller.NewResourceController(resourceService),
		NoteController:     controller.NewNoteController(noteService),
		ChatController:     controller.NewChatController(chatService),

		NotificationService: notifService,
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
