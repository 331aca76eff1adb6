package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inkpress/internal/auth"
	"github.com/inkpress/internal/service"
)

// GetDashboardStats 返回后台面板的周期对比统计，仅限管理员。
// 窗口长度来自配置（STATS_PERIOD_DAYS）。两个周期各自可能没有数据，
// 此时对应字段为 null，前端必须渲染"暂无数据"而不是 0。
func (a *API) GetDashboardStats(c *gin.Context) {
	if _, ok := a.authorize(c, auth.ActionRead, auth.DashboardStatsResource()); !ok {
		return
	}

	comparison, err := a.stats.Compare(a.statsPeriodDays, time.Now().UTC())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "stats unavailable")
		return
	}

	payload := gin.H{
		"periodDays": a.statsPeriodDays,
		"current":    comparison.Current,
		"previous":   comparison.Previous,
	}

	// 环比缺少分母时不下发字段，避免前端把"不可用"画成 0%
	if change, ok := service.PercentChange(comparison.Current, comparison.Previous); ok {
		payload["changePercent"] = change
	}

	c.JSON(http.StatusOK, payload)
}
