package web

import (
	"bytes"
	"fmt"

	"hamcrew-club/internal/models"
	member_service "hamcrew-club/internal/service/member"

	"github.com/xuri/excelize/v2"
)

var (
	MemberExportHeader = []string{"이름", "생년월일", "전화번호", "가입일", "성별", "상태", "활동 지역", "거주 지역", "참석", "벙주", "탈퇴일", "비고"}
	RankExportHeader   = []string{"순위", "이름", "횟수"}
	MaxEventHeader     = []string{"벙주", "날짜", "시간", "장소", "참석 인원"}
)

var genderLabels = map[models.Gender]string{
	models.GenderMale:   "남",
	models.GenderFemale: "여",
}

type sheet struct {
	name    string
	headers []string
	widths  []float64
	rows    [][]interface{}
}

// GenerateMemberExport - 연명부 выгрузка
func GenerateMemberExport(members []*models.Member) ([]byte, error) {
	rows := make([][]interface{}, 0, len(members))
	for _, m := range members {
		exit := ""
		if m.ExitDate != nil {
			exit = *m.ExitDate
		}
		rows = append(rows, []interface{}{
			m.Name, m.Birthdate, member_service.FormatPhoneKR(m.Phone), m.JoinDate,
			genderLabels[m.Gender], m.Status.Label(), m.ActivityArea, m.Residence,
			m.AttendCount, m.HostCount, exit, m.Memo,
		})
	}
	return writeWorkbook(sheet{
		name:    "연명부",
		headers: MemberExportHeader,
		widths:  []float64{12, 12, 16, 12, 6, 8, 16, 16, 8, 8, 12, 30},
		rows:    rows,
	})
}

// GenerateAwardExport - три листа: 참석왕, 벙주왕, 최다 참석 벙
func GenerateAwardExport(report *models.AwardReport) ([]byte, error) {
	return writeWorkbook(
		sheet{name: "참석왕", headers: RankExportHeader, widths: []float64{8, 16, 8}, rows: rankRows(report.AttendRank)},
		sheet{name: "벙주왕", headers: RankExportHeader, widths: []float64{8, 16, 8}, rows: rankRows(report.HostRank)},
		sheet{name: "최다 참석 벙", headers: MaxEventHeader, widths: []float64{16, 12, 8, 24, 10}, rows: maxEventRows(report.MaxEvent)},
	)
}

func rankRows(rank []models.RankEntry) [][]interface{} {
	rows := make([][]interface{}, 0, len(rank))
	for i, r := range rank {
		rows = append(rows, []interface{}{i + 1, r.Name, r.Count})
	}
	return rows
}

func maxEventRows(max models.MaxAttendance) [][]interface{} {
	rows := make([][]interface{}, 0, len(max.Events))
	for _, e := range max.Events {
		rows = append(rows, []interface{}{e.HostName, e.Date, e.Time, e.Location, e.Attendees})
	}
	return rows
}

func writeWorkbook(sheets ...sheet) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create sheet: %w", err)
		}
		if err := fillSheet(f, sh, headerStyle); err != nil {
			f.Close()
			return nil, err
		}
	}
	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

func fillSheet(f *excelize.File, sh sheet, headerStyle int) error {
	for col, header := range sh.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sh.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sh.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
		if col < len(sh.widths) {
			name, _ := excelize.ColumnNumberToName(col + 1)
			if err := f.SetColWidth(sh.name, name, name, sh.widths[col]); err != nil {
				return fmt.Errorf("failed to set column width: %w", err)
			}
		}
	}

	for r, row := range sh.rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sh.name, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	return f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
