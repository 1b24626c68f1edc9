// internal/application/usecase/menu_usecase.go
package usecase

import (
	"context"
	"errors"
	"fmt"

	"canteen/internal/domain/catalog"
)

// MenuItemView is a menu item with its image resolved for the browser.
type MenuItemView struct {
	catalog.Item
	ImageURL string `json:"imageUrl,omitempty"`
}

// MenuUsecase lists menuItems. The console never writes the menu.
type MenuUsecase struct {
	repo   catalog.Repository
	images ImageResolver
	deps   Deps
}

func NewMenuUsecase(repo catalog.Repository, images ImageResolver, deps Deps) *MenuUsecase {
	return &MenuUsecase{repo: repo, images: images, deps: deps.normalize("menu_uc")}
}

// List returns the menu, optionally limited to one category.
func (uc *MenuUsecase) List(ctx context.Context, category *catalog.Category) ([]MenuItemView, error) {
	if uc == nil || uc.repo == nil {
		return nil, errors.New("menu usecase/repo is nil")
	}
	items, err := uc.repo.List(ctx)
	if err != nil {
		uc.deps.failure(ctx, "Error loading menu items", err, nil)
		return nil, fmt.Errorf("load menu: %w", err)
	}

	out := make([]MenuItemView, 0, len(items))
	for _, it := range items {
		if category != nil && it.Category != *category {
			continue
		}
		url := it.Image
		if uc.images != nil {
			url = uc.images.ResolveImage(ctx, it.Image)
		}
		out = append(out, MenuItemView{Item: it, ImageURL: url})
	}
	return out, nil
}
