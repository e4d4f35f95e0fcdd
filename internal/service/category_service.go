package service

import (
	"Guildboard/internal/api/dto"
	"Guildboard/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type CategoryService interface {
	ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context) ([]*dto.CategoryDTO, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CategoryDTO, 0, len(categories))
	if err := copier.Copy(&list, categories); err != nil {
		return nil, err
	}
	return list, nil
}
