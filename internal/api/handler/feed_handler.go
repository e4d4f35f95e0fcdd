package handler

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/pkg/response"
	"Guildboard/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedSvc service.FeedService
}

func NewFeedHandler(feedSvc service.FeedService) *FeedHandler {
	return &FeedHandler{
		feedSvc: feedSvc,
	}
}

// FetchFeed 按分类/排序模式分页拉取信息流
func (s *FeedHandler) FetchFeed(c *gin.Context) {
	viewerID := c.GetUint64("user_id")

	var query dto.FeedQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.feedSvc.FetchFeed(c.Request.Context(), viewerID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}
