package dto

// CommentCreateDTO 创建评论请求
type CommentCreateDTO struct {
	PostID   uint64 `json:"post_id" binding:"required"`
	Content  string `json:"content" binding:"required,max=4000"`
	ParentID uint64 `json:"parent_id"` // 0 表示直接评论帖子
}

// CommentUpdateDTO 编辑评论请求
type CommentUpdateDTO struct {
	Content string `json:"content" binding:"required,max=4000"`
}

// CommentDTO 评论详情
type CommentDTO struct {
	ID        uint64 `json:"id"`
	PostID    uint64 `json:"post_id"`
	AuthorID  uint64 `json:"author_id"`
	Content   string `json:"content"`
	ParentID  uint64 `json:"parent_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CommentListDTO 一页评论
type CommentListDTO struct {
	List    []*CommentDTO `json:"list"`
	Total   int64         `json:"total"`
	HasMore bool          `json:"has_more"`
}
