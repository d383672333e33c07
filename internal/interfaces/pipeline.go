package interfaces

import (
	"context"

	"FootballExplorer/internal/model"
)

// DatasetStore 七张表的物化与缓存读取
type DatasetStore interface {
	// Load 取数据集：优先缓存，force=true 时强制全量重建
	Load(force bool) (*model.Dataset, error)
}

// WarehouseRepository 数据仓库镜像（每次导入整体重灌）
type WarehouseRepository interface {
	// ReplaceAll 在一个事务内清空并重写七张表
	ReplaceAll(ctx context.Context, ds *model.Dataset) error
}
