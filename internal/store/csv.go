package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"FootballExplorer/internal/extract"
	"FootballExplorer/internal/model"
)

// 各表的固定列顺序，与CSV表头一一对应
var (
	teamColumns         = []string{"idteam", "name"}
	playerColumns       = []string{"playerid", "lastname"}
	matchColumns        = []string{"matchid", "date", "home_idteam", "away_idteam", "duration", "period", "championship", "home_formation", "away_formation", "quotation_home", "quotation_away", "quotation_draw", "home_score", "away_score"}
	appearanceColumns   = []string{"playerid", "matchid", "team_id", "position", "formation_place", "play_duration", "final_mark_2015", "quotation_player"}
	highlightColumns    = []string{"matchid", "time", "playerid", "type"}
	substitutionColumns = []string{"matchid", "time", "off_playerid", "on_playerid", "reason"}
	transferColumns     = []string{"playerid", "player_name", "team", "start_date", "end_date"}
)

const transferDateLayout = "2006-01-02"

// writeCSV 写一个完整的CSV表（表头+全部记录），I/O错误带上文件路径向上抛
func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 %s 失败: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("写入 %s 失败: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	return f.Close()
}

// readCSV 整表读入，返回表头与记录
func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("打开 %s 失败: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 动态统计列使各文件列数不同
	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("读取 %s 失败: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	return rows[0], rows[1:], nil
}

func teamRecords(teams []model.TeamRow) [][]string {
	out := make([][]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, []string{strconv.FormatInt(t.IDTeam, 10), t.Name})
	}
	return out
}

func parseTeams(records [][]string) []model.TeamRow {
	var out []model.TeamRow
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, model.TeamRow{IDTeam: id, Name: rec[1]})
	}
	return out
}

func playerRecords(players []model.PlayerRow) [][]string {
	out := make([][]string, 0, len(players))
	for _, p := range players {
		out = append(out, []string{strconv.FormatInt(p.PlayerID, 10), strDeref(p.LastName)})
	}
	return out
}

func parsePlayers(records [][]string) []model.PlayerRow {
	var out []model.PlayerRow
	for _, rec := range records {
		if len(rec) < 2 {
			continue
		}
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		out = append(out, model.PlayerRow{PlayerID: id, LastName: strPtr(rec[1])})
	}
	return out
}

func matchRecords(matches []model.MatchRow) [][]string {
	out := make([][]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, []string{
			intCell(m.MatchID),
			timeCell(m.Date),
			intCell(m.HomeIDTeam),
			intCell(m.AwayIDTeam),
			floatCell(m.Duration),
			strDeref(m.Period),
			intCell(m.Championship),
			strDeref(m.HomeFormation),
			strDeref(m.AwayFormation),
			floatCell(m.QuotationHome),
			floatCell(m.QuotationAway),
			floatCell(m.QuotationDraw),
			strconv.Itoa(m.HomeScore),
			strconv.Itoa(m.AwayScore),
		})
	}
	return out
}

func parseMatches(records [][]string) []model.MatchRow {
	var out []model.MatchRow
	for _, rec := range records {
		if len(rec) < len(matchColumns) {
			continue
		}
		m := model.MatchRow{
			MatchID:       intPtr(rec[0]),
			Date:          timePtr(rec[1]),
			HomeIDTeam:    intPtr(rec[2]),
			AwayIDTeam:    intPtr(rec[3]),
			Duration:      floatPtr(rec[4]),
			Period:        strPtr(rec[5]),
			Championship:  intPtr(rec[6]),
			HomeFormation: strPtr(rec[7]),
			AwayFormation: strPtr(rec[8]),
			QuotationHome: floatPtr(rec[9]),
			QuotationAway: floatPtr(rec[10]),
			QuotationDraw: floatPtr(rec[11]),
		}
		m.HomeScore, _ = strconv.Atoi(rec[12])
		m.AwayScore, _ = strconv.Atoi(rec[13])
		out = append(out, m)
	}
	return out
}

// appearanceRecords 固定列在前、动态统计列在后。
// 动态统计键与固定列同名时，该格的值取统计值（后写覆盖）。
func appearanceRecords(rows []model.AppearanceRow, statCols []string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, a := range rows {
		cell := func(col, fallback string) string {
			if v, ok := a.Stats[col]; ok {
				return formatFloat(v)
			}
			return fallback
		}
		rec := []string{
			cell("playerid", intCell(a.PlayerID)),
			cell("matchid", intCell(a.MatchID)),
			cell("team_id", intCell(a.TeamID)),
			cell("position", strDeref(a.Position)),
			cell("formation_place", floatCell(a.FormationPlace)),
			cell("play_duration", floatCell(a.PlayDuration)),
			cell("final_mark_2015", floatCell(a.FinalMark2015)),
			cell("quotation_player", floatCell(a.QuotationPlayer)),
		}
		for _, col := range statCols {
			if v, ok := a.Stats[col]; ok {
				rec = append(rec, formatFloat(v))
			} else {
				rec = append(rec, "")
			}
		}
		out = append(out, rec)
	}
	return out
}

func parseAppearances(header []string, records [][]string) []model.AppearanceRow {
	var out []model.AppearanceRow
	for _, rec := range records {
		a := model.AppearanceRow{}
		for i, col := range header {
			if i >= len(rec) {
				break
			}
			v := rec[i]
			switch col {
			case "playerid":
				a.PlayerID = intPtr(v)
			case "matchid":
				a.MatchID = intPtr(v)
			case "team_id":
				a.TeamID = intPtr(v)
			case "position":
				a.Position = strPtr(v)
			case "formation_place":
				a.FormationPlace = floatPtr(v)
			case "play_duration":
				a.PlayDuration = floatPtr(v)
			case "final_mark_2015":
				a.FinalMark2015 = floatPtr(v)
			case "quotation_player":
				a.QuotationPlayer = floatPtr(v)
			default:
				if v == "" {
					continue
				}
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					if a.Stats == nil {
						a.Stats = make(map[string]float64)
					}
					a.Stats[col] = f
				}
			}
		}
		out = append(out, a)
	}
	return out
}

func highlightRecords(rows []model.HighlightRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, h := range rows {
		out = append(out, []string{intCell(h.MatchID), floatCell(h.Time), intCell(h.PlayerID), h.Type})
	}
	return out
}

func parseHighlights(records [][]string) []model.HighlightRow {
	var out []model.HighlightRow
	for _, rec := range records {
		if len(rec) < len(highlightColumns) {
			continue
		}
		out = append(out, model.HighlightRow{
			MatchID:  intPtr(rec[0]),
			Time:     floatPtr(rec[1]),
			PlayerID: intPtr(rec[2]),
			Type:     rec[3],
		})
	}
	return out
}

func substitutionRecords(rows []model.SubstitutionRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, s := range rows {
		out = append(out, []string{intCell(s.MatchID), floatCell(s.Time), intCell(s.OffPlayerID), intCell(s.OnPlayerID), s.Reason})
	}
	return out
}

func parseSubstitutions(records [][]string) []model.SubstitutionRow {
	var out []model.SubstitutionRow
	for _, rec := range records {
		if len(rec) < len(substitutionColumns) {
			continue
		}
		out = append(out, model.SubstitutionRow{
			MatchID:     intPtr(rec[0]),
			Time:        floatPtr(rec[1]),
			OffPlayerID: intPtr(rec[2]),
			OnPlayerID:  intPtr(rec[3]),
			Reason:      rec[4],
		})
	}
	return out
}

func transferRecords(rows []model.TransferRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, t := range rows {
		out = append(out, []string{
			strconv.FormatInt(t.PlayerID, 10),
			t.PlayerName,
			t.Team,
			t.StartDate.Format(transferDateLayout),
			t.EndDate.Format(transferDateLayout),
		})
	}
	return out
}

func parseTransfers(records [][]string) []model.TransferRow {
	var out []model.TransferRow
	for _, rec := range records {
		if len(rec) < len(transferColumns) {
			continue
		}
		id, err := strconv.ParseInt(rec[0], 10, 64)
		if err != nil {
			continue
		}
		start, err := time.Parse(transferDateLayout, rec[3])
		if err != nil {
			continue
		}
		end, err := time.Parse(transferDateLayout, rec[4])
		if err != nil {
			continue
		}
		out = append(out, model.TransferRow{
			PlayerID:   id,
			PlayerName: rec[1],
			Team:       rec[2],
			StartDate:  start,
			EndDate:    end,
		})
	}
	return out
}

// ===== 单元格编解码 =====

func intCell(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatCell(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func timeCell(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func strDeref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intPtr(s string) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	return extract.ParseMatchDate(&s)
}
