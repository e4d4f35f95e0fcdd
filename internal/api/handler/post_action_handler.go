package handler

import (
	"Guildboard/internal/pkg/response"
	"Guildboard/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	reactionSvc service.ReactionService
	readSvc     service.ReadService
}

func NewPostActionHandler(reactionSvc service.ReactionService, readSvc service.ReadService) *PostActionHandler {
	return &PostActionHandler{
		reactionSvc: reactionSvc,
		readSvc:     readSvc,
	}
}

// ToggleReaction 点赞/取消点赞，返回切换后的状态与权威计数
func (s *PostActionHandler) ToggleReaction(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	state, err := s.reactionSvc.ToggleReaction(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, state)
}

// MarkRead 更新阅读标记，幂等
func (s *PostActionHandler) MarkRead(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("post_id"), 10, 64)
	if err != nil || postID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID := c.GetUint64("user_id")

	if err = s.readSvc.MarkRead(c.Request.Context(), userID, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
