package dto

// FeedQueryDTO 信息流查询参数
type FeedQueryDTO struct {
	CategoryID uint64 `form:"category_id"`
	Sort       string `form:"sort" binding:"omitempty,oneof=default new top unread"`
	Page       int    `form:"page" binding:"omitempty,min=0"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FeedPageDTO 一页信息流，Total 为过滤后的总数
type FeedPageDTO struct {
	List    []*PostDTO `json:"list"`
	Total   int64      `json:"total"`
	HasMore bool       `json:"has_more"`
}
