package scanner

import (
	"duetrack/internal/filter"
	"duetrack/internal/model"
)

// 行记录固定列位（0-based），六类文件共用
const (
	colDepartment  = 2 // 部门
	colRole        = 3 // 角色来源
	colInterfaceID = 4 // 接口号
	colResponsible = 5 // 责任人
)

// ExtractRecord 把一条存活行装入类型化记录
//
// 已知列进入固定字段，未知列按"列名->值"存入 Extras 原样透传给界面。
func ExtractRecord(kind model.FileKind, projectID, sourceFile string, rows [][]string, rowNo int) *model.RowRecord {
	row := rows[rowNo-1]
	header := rows[0]

	r := &model.RowRecord{
		FileKind:          kind,
		ProjectID:         projectID,
		InterfaceID:       filter.Cell(row, colInterfaceID),
		Department:        filter.Cell(row, colDepartment),
		Role:              filter.Cell(row, colRole),
		ResponsiblePerson: filter.Cell(row, colResponsible),
		SourceFile:        sourceFile,
		RowIndex:          rowNo,
	}

	if rule, ok := filter.RuleFor(kind); ok && rule.DateCol >= 0 {
		if d, ok := filter.ParseCellDate(filter.Cell(row, rule.DateCol)); ok {
			r.InterfaceTime = &d
		}
	}

	known := map[int]bool{
		colDepartment: true, colRole: true,
		colInterfaceID: true, colResponsible: true,
	}
	if rule, ok := filter.RuleFor(kind); ok && rule.DateCol >= 0 {
		known[rule.DateCol] = true
	}

	for i, name := range header {
		if known[i] || filter.Cell(header, i) == "" {
			continue
		}
		v := filter.Cell(row, i)
		if v == "" {
			continue
		}
		if r.Extras == nil {
			r.Extras = make(map[string]string)
		}
		r.Extras[name] = v
	}

	return r
}
