package service

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/model"
	"Guildboard/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

const timeLayout = "2006-01-02 15:04:05"

type PostService interface {
	CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, editorID, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, requesterID, postID uint64) error
	TogglePin(ctx context.Context, requesterID, postID uint64) (*dto.PinStateDTO, error)
}

type postServiceImpl struct {
	postRepo     repository.PostRepo
	categoryRepo repository.CategoryRepo
	reactionRepo repository.ReactionRepo
	markerRepo   repository.ReadMarkerRepo
}

func NewPostService(
	postRepo repository.PostRepo,
	categoryRepo repository.CategoryRepo,
	reactionRepo repository.ReactionRepo,
	markerRepo repository.ReadMarkerRepo,
) PostService {
	return &postServiceImpl{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		reactionRepo: reactionRepo,
		markerRepo:   markerRepo,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	if req.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	now := time.Now()
	post := &model.Post{
		AuthorID:       authorID,
		CategoryID:     req.CategoryID,
		Title:          req.Title,
		Body:           req.Body,
		Attachments:    make([]model.AttachmentItem, 0, len(req.Attachments)),
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := copier.Copy(&post.Attachments, req.Attachments); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, viewerID, postID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	item := toPostDTO(post)
	if viewerID > 0 {
		item.IsLiked, _ = s.reactionRepo.Exists(ctx, viewerID, postID)
		markers, mErr := s.markerRepo.GetMarkers(ctx, viewerID, []uint64{postID})
		if mErr == nil {
			if lastRead, ok := markers[postID]; ok {
				item.IsRead = !lastRead.Before(post.LastActivityAt)
			}
		}
	}
	return item, nil
}

func (s *postServiceImpl) UpdatePost(ctx context.Context, editorID, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	post, err := s.getOwnedPost(ctx, editorID, postID)
	if err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Body = req.Body
	post.Attachments = make([]model.AttachmentItem, 0, len(req.Attachments))
	if err := copier.Copy(&post.Attachments, req.Attachments); err != nil {
		return nil, err
	}

	if err := s.postRepo.UpdateContent(ctx, post); err != nil {
		return nil, err
	}
	return toPostDTO(post), nil
}

func (s *postServiceImpl) DeletePost(ctx context.Context, requesterID, postID uint64) error {
	if _, err := s.getOwnedPost(ctx, requesterID, postID); err != nil {
		return err
	}
	return s.postRepo.SoftDelete(ctx, postID)
}

// TogglePin 置顶开关，仅作者可操作
func (s *postServiceImpl) TogglePin(ctx context.Context, requesterID, postID uint64) (*dto.PinStateDTO, error) {
	post, err := s.getOwnedPost(ctx, requesterID, postID)
	if err != nil {
		return nil, err
	}

	pinned := !post.Pinned
	if err := s.postRepo.SetPinned(ctx, postID, pinned); err != nil {
		return nil, err
	}
	return &dto.PinStateDTO{Pinned: pinned}, nil
}

// getOwnedPost 加载帖子并校验请求者是作者
func (s *postServiceImpl) getOwnedPost(ctx context.Context, requesterID, postID uint64) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != requesterID {
		return nil, ErrForbidden
	}
	return post, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	item := &dto.PostDTO{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		CategoryID:     post.CategoryID,
		Title:          post.Title,
		Body:           post.Body,
		Attachments:    make([]*dto.AttachmentDTO, 0, len(post.Attachments)),
		Pinned:         post.Pinned,
		ReactionsCount: post.ReactionsCount,
		CommentsCount:  post.CommentsCount,
		LastActivityAt: post.LastActivityAt.Format(timeLayout),
		CreatedAt:      post.CreatedAt.Format(timeLayout),
	}
	_ = copier.Copy(&item.Attachments, post.Attachments)
	return item
}
