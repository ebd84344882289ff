package app

import (
	"go.uber.org/zap"

	"github.com/orinoco-shop/orinoco/internal/domain"
)

// Demo catalog entries created when a category table is empty, so a
// fresh install answers something. Real catalogs are loaded externally.
var defaultCatalogs = map[domain.Category][]domain.Product{
	domain.CategoryCamera: {
		{ID: "5be1ed2b1c9d440000cf315d", Name: "Konica Minolta Maxxum 5D", Price: 299, Image: "km_maxxum_5d.jpg"},
		{ID: "5beaf06a4fc1c777824537b3", Name: "Canon EOS 4000D", Price: 389, Image: "canon_eos_4000d.jpg"},
	},
	domain.CategoryTeddy: {
		{ID: "5be9c8541c9d440000a23d81", Name: "Paddington", Price: 24, Image: "paddington.jpg"},
		{ID: "5beab96e1c9d440000bfa12e", Name: "Winnie", Price: 19, Image: "winnie.jpg"},
	},
	domain.CategoryFurniture: {
		{ID: "5beaaa8f1c9d440000a342be", Name: "Oak Coffee Table", Price: 149, Image: "oak_coffee_table.jpg"},
		{ID: "5beaaab01c9d440000a342bf", Name: "Walnut Bookshelf", Price: 219, Image: "walnut_bookshelf.jpg"},
	},
}

// checkCatalogs seeds empty catalog tables with demo products.
func (a *Application) checkCatalogs() {
	for cat, products := range defaultCatalogs {
		var count int64
		if err := a.gormDB.Table(cat.TableName()).Count(&count).Error; err != nil {
			zap.L().Error("failed to inspect catalog",
				zap.String("category", string(cat)), zap.Error(err))
			continue
		}
		if count > 0 {
			continue
		}
		if err := a.gormDB.Table(cat.TableName()).Create(&products).Error; err != nil {
			zap.L().Error("failed to seed catalog",
				zap.String("category", string(cat)), zap.Error(err))
			continue
		}
		zap.L().Info("initialized demo catalog",
			zap.String("category", string(cat)),
			zap.Int("products", len(products)))
	}
}
