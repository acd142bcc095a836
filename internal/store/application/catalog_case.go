package application

import (
	"context"

	"github.com/Slassh006/FF1/internal/store/domain"
)

type CatalogCase struct {
	itemsRepository domain.ItemsRepository
}

func NewCatalogCase(itemsRepository domain.ItemsRepository) *CatalogCase {
	return &CatalogCase{
		itemsRepository: itemsRepository,
	}
}

func (cc *CatalogCase) ListActiveItems(ctx context.Context) ([]domain.StoreItem, error) {
	return cc.itemsRepository.GetActiveItems(ctx)
}
