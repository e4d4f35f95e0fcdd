package wire

import (
	"Guildboard/internal/api"
	"Guildboard/internal/api/config"
	"Guildboard/internal/api/handler"
	"Guildboard/internal/job"
	"Guildboard/internal/pkg/cron"
	"Guildboard/internal/pkg/redis"
	"Guildboard/internal/repository"
	"Guildboard/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	categoryRepo := repository.NewCategoryRepo(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepo(db)
	reactionRepo := repository.NewReactionRepo(db)
	markerRepo := repository.NewReadMarkerRepo(db)

	locker := redis.NewPairLocker()
	dirty := redis.NewDirtySet()

	categoryService := service.NewCategoryService(categoryRepo)
	postService := service.NewPostService(postRepo, categoryRepo, reactionRepo, markerRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, dirty)
	reactionService := service.NewReactionService(reactionRepo, postRepo, locker, dirty)
	readService := service.NewReadService(markerRepo, postRepo)
	feedService := service.NewFeedService(postRepo, categoryRepo, reactionRepo, markerRepo)

	handlers := &api.HandlersGroup{
		CategoryHandler:   handler.NewCategoryHandler(categoryService),
		FeedHandler:       handler.NewFeedHandler(feedService),
		PostHandler:       handler.NewPostHandler(postService),
		CommentHandler:    handler.NewCommentHandler(commentService),
		PostActionHandler: handler.NewPostActionHandler(reactionService, readService),
	}

	router := api.SetupRouter(handlers)

	auditJob := job.NewCounterAuditJob(postRepo)
	cronMgr := cron.NewCronManager(cfg.Audit.Schedule, auditJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
