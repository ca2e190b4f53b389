package wire

import (
	"Ripple/internal/api"
	"Ripple/internal/api/config"
	"Ripple/internal/api/handler"
	"Ripple/internal/job"
	"Ripple/internal/pkg/cron"
	"Ripple/internal/pkg/kafka"
	"Ripple/internal/pkg/minio"
	"Ripple/internal/pkg/mongo"
	"Ripple/internal/pkg/unfurl"
	"Ripple/internal/repository"
	"Ripple/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
	mongoDB "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	Publisher    kafka.Publisher
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

// BuildApplication db 与 mongoConn 可以为 nil，对应功能退化为内存实现或关闭
func BuildApplication(db *gorm.DB, mongoConn *mongoDB.Database, cfg *config.Config) (*ApplicationContainer, error) {
	var userRepo repository.UserRepo
	if db != nil {
		userRepo = repository.NewUserRepo(db)
	} else {
		log.Warn("database not configured, users are kept in memory")
		userRepo = repository.NewUserRepoMemory()
	}
	postRepo := repository.NewPostRepository()

	var sysBoxRepo mongo.SysBoxRepo
	if mongoConn != nil {
		sysBoxRepo = mongo.NewSysBoxRepo(mongoConn)
	}

	var fetcher unfurl.Fetcher
	if cfg.Unfurl.Enable {
		fetcher = unfurl.NewClient(cfg.Unfurl)
	}

	var fileStore service.FileStore
	if minio.Default != nil {
		fileStore = minio.Default
	}

	publisher, err := kafka.NewPublisher(cfg.Kafka)
	if err != nil {
		return nil, err
	}

	userService := service.NewUserService(userRepo)
	sysBoxService := service.NewSysBoxService(sysBoxRepo, userRepo)
	postService := service.NewPostService(postRepo, userRepo, publisher, sysBoxService, fetcher)
	mediaService := service.NewMediaService(fileStore)
	postMetricService := service.NewPostMetricService(postRepo)

	handlers := &api.HandlersGroup{
		UserHandler:       handler.NewUserHandler(userService),
		PostHandler:       handler.NewPostHandler(postService),
		PostMetricHandler: handler.NewPostMetricHandler(postMetricService),
		MediaHandler:      handler.NewMediaHandler(mediaService),
		SysBoxHandler:     handler.NewSysBoxHandler(sysBoxService),
		SysBoxPushHandler: handler.NewSysBoxPushHandler(cfg.Server.AllowOrigins),
		TokenChecker:      userService,
		AllowOrigins:      cfg.Server.AllowOrigins,
	}

	router := api.SetupRouter(handlers)

	// 事件经 Kafka 回到本服务生成通知
	var kafkaMgr *kafka.ConsumerManager
	if publisher.Enabled() {
		kafkaMgr, err = kafka.NewConsumerManager(cfg.Kafka, sysBoxService.HandlePostEvent)
		if err != nil {
			_ = publisher.Close()
			return nil, err
		}
	}

	cronMgr := cron.NewCronManager(job.NewPostMetricsJob(postRepo), cfg.Job.PostMetricSpec)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		Publisher:    publisher,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
