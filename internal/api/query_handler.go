package api

import (
	"net/http"
	"strconv"
	"time"

	"FootballExplorer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type QueryHandler struct {
	queryService *service.QueryService
	logger       *logrus.Logger
}

func NewQueryHandler(holder *service.Holder, logger *logrus.Logger) *QueryHandler {
	return &QueryHandler{
		queryService: service.NewQueryService(holder, logger),
		logger:       logger,
	}
}

// ListTeamsHandler 球队列表
// @Summary 全部球队
// @Success 200 {array} service.TeamInfo
// @Router /api/teams [get]
func (h *QueryHandler) ListTeamsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.queryService.ListTeams())
}

// GetTeamHandler 按id查询球队
// @Summary 球队详情
// @Param id path int true "球队ID"
// @Success 200 {object} service.TeamInfo
// @Failure 404 {object} map[string]string
// @Router /api/teams/{id} [get]
func (h *QueryHandler) GetTeamHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	team, found := h.queryService.GetTeam(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "球队不存在"})
		return
	}
	c.JSON(http.StatusOK, team)
}

// ListPlayersHandler 球员列表，支持按姓氏筛选
// @Summary 球员列表
// @Param lastname query string false "姓氏（不区分大小写精确匹配）"
// @Success 200 {array} service.PlayerInfo
// @Router /api/players [get]
func (h *QueryHandler) ListPlayersHandler(c *gin.Context) {
	players := h.queryService.ListPlayers(c.Query("lastname"))
	if players == nil {
		players = []service.PlayerInfo{}
	}
	c.JSON(http.StatusOK, players)
}

// ListMatchesHandler 比赛列表，支持按球队/日期/年份/联赛筛选
// @Summary 比赛列表
// @Param team query int false "参赛球队ID"
// @Param date query string false "比赛日（2006-01-02）"
// @Param year query int false "年份"
// @Param championship query int false "联赛编号"
// @Success 200 {array} service.MatchSummary
// @Failure 400 {object} map[string]string
// @Router /api/matches [get]
func (h *QueryHandler) ListMatchesHandler(c *gin.Context) {
	var filter service.MatchFilter

	if raw := c.Query("team"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "team参数必须是整数"})
			return
		}
		filter.TeamID = &v
	}
	if raw := c.Query("date"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date参数格式应为2006-01-02"})
			return
		}
		filter.Date = &d
	}
	if raw := c.Query("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year参数必须是整数"})
			return
		}
		filter.Year = &v
	}
	if raw := c.Query("championship"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "championship参数必须是整数"})
			return
		}
		filter.Championship = &v
	}

	matches := h.queryService.ListMatches(filter)
	if matches == nil {
		matches = []service.MatchSummary{}
	}
	c.JSON(http.StatusOK, matches)
}

// HeadToHeadHandler 两队交锋记录
// @Summary 两队历史交锋
// @Param team_a query int true "球队A的ID"
// @Param team_b query int true "球队B的ID"
// @Success 200 {array} service.MatchSummary
// @Failure 400 {object} map[string]string
// @Router /api/matches/head-to-head [get]
func (h *QueryHandler) HeadToHeadHandler(c *gin.Context) {
	teamA, err := strconv.ParseInt(c.Query("team_a"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_a参数必须是整数"})
		return
	}
	teamB, err := strconv.ParseInt(c.Query("team_b"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "team_b参数必须是整数"})
		return
	}
	matches := h.queryService.HeadToHead(teamA, teamB)
	if matches == nil {
		matches = []service.MatchSummary{}
	}
	c.JSON(http.StatusOK, matches)
}

// PlayerTransfersHandler 球员俱乐部履历
// @Summary 球员效力区间
// @Param id path int true "球员ID"
// @Success 200 {object} service.TransferHistory
// @Failure 404 {object} map[string]string
// @Router /api/players/{id}/transfers [get]
func (h *QueryHandler) PlayerTransfersHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	history, found := h.queryService.PlayerTransfers(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "该球员没有效力记录"})
		return
	}
	c.JSON(http.StatusOK, history)
}

// PlayerCardsHandler 球员红黄牌统计
// @Summary 球员红黄牌
// @Param id path int true "球员ID"
// @Success 200 {object} service.CardSummary
// @Router /api/players/{id}/cards [get]
func (h *QueryHandler) PlayerCardsHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.queryService.PlayerCards(id))
}

// PlayerMarksHandler 球员评分时间序列
// @Summary 球员单场评分
// @Param id path int true "球员ID"
// @Success 200 {array} service.MarkPoint
// @Router /api/players/{id}/marks [get]
func (h *QueryHandler) PlayerMarksHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	marks := h.queryService.PlayerMarks(id)
	if marks == nil {
		marks = []service.MarkPoint{}
	}
	c.JSON(http.StatusOK, marks)
}

// TeamGoalDiffHandler 球队净胜球序列
// @Summary 球队逐场净胜球
// @Param id path int true "球队ID"
// @Success 200 {array} service.GoalDiffPoint
// @Failure 404 {object} map[string]string
// @Router /api/teams/{id}/goal-diff [get]
func (h *QueryHandler) TeamGoalDiffHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, found := h.queryService.GetTeam(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "球队不存在"})
		return
	}
	points := h.queryService.TeamGoalDiff(id)
	if points == nil {
		points = []service.GoalDiffPoint{}
	}
	c.JSON(http.StatusOK, points)
}

// TeamPlayersHandler 该队出过场的球员
// @Summary 球队出场球员名单
// @Param id path int true "球队ID"
// @Success 200 {array} service.PlayerInfo
// @Failure 404 {object} map[string]string
// @Router /api/teams/{id}/players [get]
func (h *QueryHandler) TeamPlayersHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, found := h.queryService.GetTeam(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "球队不存在"})
		return
	}
	players := h.queryService.TeamPlayers(id)
	if players == nil {
		players = []service.PlayerInfo{}
	}
	c.JSON(http.StatusOK, players)
}

// TeamPositionMarksHandler 该队各位置的平均评分
// @Summary 球队分位置平均评分
// @Param id path int true "球队ID"
// @Success 200 {array} service.PositionMark
// @Failure 404 {object} map[string]string
// @Router /api/teams/{id}/position-marks [get]
func (h *QueryHandler) TeamPositionMarksHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, found := h.queryService.GetTeam(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "球队不存在"})
		return
	}
	marks := h.queryService.TeamPositionMarks(id)
	if marks == nil {
		marks = []service.PositionMark{}
	}
	c.JSON(http.StatusOK, marks)
}

// TeamSubstitutionsHandler 球队换人概览
// @Summary 球队换人统计
// @Param id path int true "球队ID"
// @Success 200 {object} service.SubstitutionSummary
// @Failure 404 {object} map[string]string
// @Router /api/teams/{id}/substitutions [get]
func (h *QueryHandler) TeamSubstitutionsHandler(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if _, found := h.queryService.GetTeam(id); !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "球队不存在"})
		return
	}
	c.JSON(http.StatusOK, h.queryService.TeamSubstitutions(id))
}

// parseIDParam 解析路径里的整数id，非法时直接回400
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id参数必须是整数"})
		return 0, false
	}
	return id, true
}
