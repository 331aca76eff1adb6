package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type sessionSampleRequest struct {
	BounceRate      float64 `json:"bounceRate"`
	SessionDuration float64 `json:"sessionDuration"`
}

// RecordSessionSample 接收前端埋点上报的会话质量采样，
// 写入当天统计行的跳出率与平均会话时长。
// 与 contact/subscribe 一样是公开入口，不经过 AccessPolicy。
func (a *API) RecordSessionSample(c *gin.Context) {
	var req sessionSampleRequest
	if !bindJSON(c, &req, "invalid sample payload") {
		return
	}

	if req.BounceRate < 0 || req.BounceRate > 100 || req.SessionDuration < 0 {
		respondError(c, http.StatusBadRequest, "invalid sample payload")
		return
	}

	if err := a.stats.UpdateDailyAverages(req.BounceRate, req.SessionDuration, time.Now().UTC()); err != nil {
		respondError(c, http.StatusInternalServerError, "failed to record sample")
		return
	}

	c.Status(http.StatusNoContent)
}
