package api

import "Guildboard/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	CategoryHandler   *handler.CategoryHandler
	FeedHandler       *handler.FeedHandler
	PostHandler       *handler.PostHandler
	CommentHandler    *handler.CommentHandler
	PostActionHandler *handler.PostActionHandler
}
