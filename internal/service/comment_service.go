package service

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/model"
	"Guildboard/internal/repository"
	"context"
	"time"
)

type CommentService interface {
	CreateComment(ctx context.Context, authorID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, editorID, commentID uint64, req *dto.CommentUpdateDTO) error
	DeleteComment(ctx context.Context, requesterID, commentID uint64) error
	ListComments(ctx context.Context, postID uint64, page, pageSize int) (*dto.CommentListDTO, error)
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	dirty       DirtyMarker
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo, dirty DirtyMarker) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		dirty:       dirty,
	}
}

// CreateComment 唯一会推进帖子活跃时间的写路径
func (s *commentServiceImpl) CreateComment(ctx context.Context, authorID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.ParentID > 0 {
		parent, err := s.commentRepo.GetByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		// 父评论必须存在且属于同一帖子
		if parent == nil || parent.PostID != req.PostID {
			return nil, ErrCommentNotFound
		}
	}

	now := time.Now()
	comment := &model.Comment{
		PostID:    req.PostID,
		AuthorID:  authorID,
		Content:   req.Content,
		ParentID:  req.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.dirty.MarkDirty(ctx, req.PostID)

	return toCommentDTO(comment), nil
}

func (s *commentServiceImpl) UpdateComment(ctx context.Context, editorID, commentID uint64, req *dto.CommentUpdateDTO) error {
	if _, err := s.getOwnedComment(ctx, editorID, commentID); err != nil {
		return err
	}
	return s.commentRepo.UpdateContent(ctx, commentID, req.Content)
}

// DeleteComment 删除后计数递减，帖子活跃时间保持不动
func (s *commentServiceImpl) DeleteComment(ctx context.Context, requesterID, commentID uint64) error {
	comment, err := s.getOwnedComment(ctx, requesterID, commentID)
	if err != nil {
		return err
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return err
	}
	s.dirty.MarkDirty(ctx, comment.PostID)
	return nil
}

func (s *commentServiceImpl) ListComments(ctx context.Context, postID uint64, page, pageSize int) (*dto.CommentListDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	total, err := s.commentRepo.CountByPostID(ctx, postID)
	if err != nil {
		return nil, err
	}

	offset := page * pageSize
	comments, err := s.commentRepo.ListByPostID(ctx, postID, pageSize, offset)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CommentDTO, 0, len(comments))
	for _, comment := range comments {
		list = append(list, toCommentDTO(comment))
	}
	return &dto.CommentListDTO{
		List:    list,
		Total:   total,
		HasMore: int64(offset+pageSize) < total,
	}, nil
}

func (s *commentServiceImpl) getOwnedComment(ctx context.Context, requesterID, commentID uint64) (*model.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	return comment, nil
}

func toCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		AuthorID:  comment.AuthorID,
		Content:   comment.Content,
		ParentID:  comment.ParentID,
		CreatedAt: comment.CreatedAt.Format(timeLayout),
		UpdatedAt: comment.UpdatedAt.Format(timeLayout),
	}
}
