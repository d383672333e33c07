package api

import (
	"net/http"

	"FootballExplorer/internal/interfaces"
	"FootballExplorer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ImportHandler struct {
	store     interfaces.DatasetStore
	holder    *service.Holder
	warehouse interfaces.WarehouseRepository // 可为nil（postgres.enabled=false）
	logger    *logrus.Logger
}

func NewImportHandler(store interfaces.DatasetStore, holder *service.Holder, warehouse interfaces.WarehouseRepository, logger *logrus.Logger) *ImportHandler {
	return &ImportHandler{
		store:     store,
		holder:    holder,
		warehouse: warehouse,
		logger:    logger,
	}
}

// ImportHandler 执行导入流水线并切换对外数据集
// @Summary 导入原始比赛数据
// @Param force query bool false "true时跳过缓存强制全量重建"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /sync/import [post]
func (h *ImportHandler) ImportHandler(c *gin.Context) {
	force := c.DefaultQuery("force", "false") == "true"

	ds, err := h.store.Load(force)
	if err != nil {
		h.logger.Errorf("导入失败: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}
	h.holder.Swap(ds)

	resp := gin.H{
		"message": "导入成功",
		"force":   force,
		"counts":  ds.Counts(),
	}

	// 镜像重灌失败不影响CSV结果与在线查询，只随响应上报
	if h.warehouse != nil {
		if err := h.warehouse.ReplaceAll(c.Request.Context(), ds); err != nil {
			h.logger.Errorf("数据仓库镜像重灌失败: %v", err)
			resp["warehouse_error"] = err.Error()
		}
	}

	c.JSON(http.StatusOK, resp)
}
