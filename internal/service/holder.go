package service

import (
	"sync"

	"FootballExplorer/internal/model"
)

// Holder 持有当前对外提供查询的数据集。
// 查询层只读，导入完成后整体替换指针，各视图不再各自回盘重读。
type Holder struct {
	mu sync.RWMutex
	ds *model.Dataset
}

func NewHolder(ds *model.Dataset) *Holder {
	return &Holder{ds: ds}
}

// Get 当前数据集快照
func (h *Holder) Get() *model.Dataset {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ds
}

// Swap 导入完成后替换数据集
func (h *Holder) Swap(ds *model.Dataset) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ds = ds
}
