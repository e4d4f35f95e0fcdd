package dto

// AttachmentDTO 预上传附件描述符
type AttachmentDTO struct {
	Type     string `json:"type" binding:"required"`
	URL      string `json:"url" binding:"required"`
	Title    string `json:"title,omitempty"`
	FileName string `json:"fileName,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
}

// PostCreateDTO 创建帖子请求
type PostCreateDTO struct {
	CategoryID  uint64           `json:"category_id"`
	Title       string           `json:"title" binding:"required,max=255"`
	Body        string           `json:"body"`
	Attachments []*AttachmentDTO `json:"attachments" binding:"omitempty,dive"`
}

// PostUpdateDTO 编辑帖子请求
type PostUpdateDTO struct {
	Title       string           `json:"title" binding:"required,max=255"`
	Body        string           `json:"body"`
	Attachments []*AttachmentDTO `json:"attachments" binding:"omitempty,dive"`
}

// PostDTO 帖子详情，IsLiked/IsRead 为 viewer 视角的标注字段
type PostDTO struct {
	ID             uint64           `json:"id"`
	AuthorID       uint64           `json:"author_id"`
	CategoryID     uint64           `json:"category_id"`
	Title          string           `json:"title"`
	Body           string           `json:"body"`
	Attachments    []*AttachmentDTO `json:"attachments"`
	Pinned         bool             `json:"pinned"`
	ReactionsCount int              `json:"reactions_count"`
	CommentsCount  int              `json:"comments_count"`
	IsLiked        bool             `json:"is_liked"`
	IsRead         bool             `json:"is_read"`
	LastActivityAt string           `json:"last_activity_at"`
	CreatedAt      string           `json:"created_at"`
}

// PinStateDTO 置顶操作结果
type PinStateDTO struct {
	Pinned bool `json:"pinned"`
}

// ReactionStateDTO 点赞切换结果
type ReactionStateDTO struct {
	Liked          bool `json:"liked"`
	ReactionsCount int  `json:"reactions_count"`
}
