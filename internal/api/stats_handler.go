package api

import (
	"net/http"
	"strconv"
	"time"

	"FootballExplorer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type StatsHandler struct {
	statsService *service.StatsService
	logger       *logrus.Logger
}

func NewStatsHandler(holder *service.Holder, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		statsService: service.NewStatsService(holder, logger),
		logger:       logger,
	}
}

// ClubResultsHandler 各俱乐部胜平负
// @Summary 俱乐部战绩汇总
// @Param championship query int false "联赛编号"
// @Param from query string false "起始日（开区间，2006-01-02）"
// @Param to query string false "截止日（开区间，2006-01-02）"
// @Success 200 {array} service.ClubResult
// @Failure 400 {object} map[string]string
// @Router /api/stats/results [get]
func (h *StatsHandler) ClubResultsHandler(c *gin.Context) {
	filter, ok := parseStatsFilter(c)
	if !ok {
		return
	}
	results := h.statsService.ClubResults(filter)
	if results == nil {
		results = []service.ClubResult{}
	}
	c.JSON(http.StatusOK, results)
}

// WinRatioHandler 胜率榜
// @Summary 俱乐部胜率排名
// @Param championship query int false "联赛编号"
// @Param from query string false "起始日（开区间）"
// @Param to query string false "截止日（开区间）"
// @Param limit query int false "返回条数（默认10）"
// @Success 200 {array} service.WinRatioEntry
// @Failure 400 {object} map[string]string
// @Router /api/stats/win-ratio [get]
func (h *StatsHandler) WinRatioHandler(c *gin.Context) {
	filter, ok := parseStatsFilter(c)
	if !ok {
		return
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	entries := h.statsService.WinRatio(filter, limit)
	if entries == nil {
		entries = []service.WinRatioEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

// TopScorersHandler 各联赛射手榜
// @Summary 射手榜
// @Param championship query int false "联赛编号"
// @Param limit query int false "每个联赛的条数（默认10）"
// @Success 200 {array} service.ScorerBoard
// @Failure 400 {object} map[string]string
// @Router /api/stats/scorers [get]
func (h *StatsHandler) TopScorersHandler(c *gin.Context) {
	var championship *int64
	if raw := c.Query("championship"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "championship参数必须是整数"})
			return
		}
		championship = &v
	}
	limit, ok := parseLimit(c)
	if !ok {
		return
	}
	boards := h.statsService.TopScorers(championship, limit)
	if boards == nil {
		boards = []service.ScorerBoard{}
	}
	c.JSON(http.StatusOK, boards)
}

// HomeAwayHandler 主客场与结果的列联表
// @Summary 主客场战绩分布
// @Success 200 {array} service.VenueRow
// @Router /api/stats/home-away [get]
func (h *StatsHandler) HomeAwayHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.statsService.HomeAway())
}

// FormationsHandler 阵型胜率
// @Summary 各阵型胜率
// @Success 200 {array} service.FormationStat
// @Router /api/stats/formations [get]
func (h *StatsHandler) FormationsHandler(c *gin.Context) {
	stats := h.statsService.Formations()
	if stats == nil {
		stats = []service.FormationStat{}
	}
	c.JSON(http.StatusOK, stats)
}

// BettingGainsHandler 各俱乐部博彩净收益
// @Summary 固定投注净收益排名
// @Success 200 {array} service.ClubGain
// @Router /api/stats/betting [get]
func (h *StatsHandler) BettingGainsHandler(c *gin.Context) {
	gains := h.statsService.BettingGains()
	if gains == nil {
		gains = []service.ClubGain{}
	}
	c.JSON(http.StatusOK, gains)
}

func parseStatsFilter(c *gin.Context) (service.StatsFilter, bool) {
	var filter service.StatsFilter
	if raw := c.Query("championship"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "championship参数必须是整数"})
			return filter, false
		}
		filter.Championship = &v
	}
	if raw := c.Query("from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from参数格式应为2006-01-02"})
			return filter, false
		}
		filter.From = &d
	}
	if raw := c.Query("to"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to参数格式应为2006-01-02"})
			return filter, false
		}
		filter.To = &d
	}
	return filter, true
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("limit", "10")
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit参数必须是正整数"})
		return 0, false
	}
	return limit, true
}
