package service

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/pkg/consts"
	"Guildboard/internal/repository"
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type FeedService interface {
	FetchFeed(ctx context.Context, viewerID uint64, query *dto.FeedQueryDTO) (*dto.FeedPageDTO, error)
}

type feedServiceImpl struct {
	postRepo     repository.PostRepo
	categoryRepo repository.CategoryRepo
	reactionRepo repository.ReactionRepo
	markerRepo   repository.ReadMarkerRepo
}

func NewFeedService(
	postRepo repository.PostRepo,
	categoryRepo repository.CategoryRepo,
	reactionRepo repository.ReactionRepo,
	markerRepo repository.ReadMarkerRepo,
) FeedService {
	return &feedServiceImpl{
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
		reactionRepo: reactionRepo,
		markerRepo:   markerRepo,
	}
}

// FetchFeed 唯一的信息流读路径。排序与过滤在查询层完成，
// viewer 视角的 IsLiked/IsRead 在选页之后再标注，不参与选择。
func (s *feedServiceImpl) FetchFeed(ctx context.Context, viewerID uint64, query *dto.FeedQueryDTO) (*dto.FeedPageDTO, error) {
	sort := query.Sort
	if sort == "" {
		sort = consts.FeedSortDefault
	}
	pageSize := query.PageSize
	if pageSize <= 0 {
		pageSize = consts.DefaultPageSize
	}
	if pageSize > consts.MaxPageSize {
		pageSize = consts.MaxPageSize
	}
	page := query.Page
	if page < 0 {
		page = 0
	}

	if query.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(ctx, query.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
	}

	offset := page * pageSize
	posts, total, err := s.postRepo.ListFeed(ctx, repository.FeedQuery{
		CategoryID: query.CategoryID,
		Sort:       sort,
		ViewerID:   viewerID,
		Limit:      pageSize,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}

	postIDs := make([]uint64, 0, len(posts))
	for _, post := range posts {
		postIDs = append(postIDs, post.ID)
	}

	liked := make(map[uint64]struct{})
	markers := make(map[uint64]time.Time)
	if viewerID > 0 && len(postIDs) > 0 {
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var gErr error
			liked, gErr = s.reactionRepo.GetLikedSet(gCtx, viewerID, postIDs)
			return gErr
		})
		g.Go(func() error {
			var gErr error
			markers, gErr = s.markerRepo.GetMarkers(gCtx, viewerID, postIDs)
			return gErr
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	list := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		item := toPostDTO(post)
		if _, ok := liked[post.ID]; ok {
			item.IsLiked = true
		}
		if lastRead, ok := markers[post.ID]; ok {
			item.IsRead = !lastRead.Before(post.LastActivityAt)
		}
		list = append(list, item)
	}

	return &dto.FeedPageDTO{
		List:    list,
		Total:   total,
		HasMore: int64(offset+pageSize) < total,
	}, nil
}
