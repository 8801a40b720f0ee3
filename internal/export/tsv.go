// Package export 提供整页复制用的 TSV 序列化。
package export

import (
	"fmt"
	"strings"
)

// FormatTSV 把表头与数据行序列化为制表符分隔文本
//
// 约定：nil 渲染为空串，非字符串值按默认格式转字符串；单元格以 \t
// 连接、行以 \n 连接，输出恰好含 len(rows) 个换行符（表头一行 +
// 每数据行一行，无末尾换行）。
func FormatTSV(headers []string, rows [][]interface{}) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, strings.Join(headers, "\t"))

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, v := range row {
			switch x := v.(type) {
			case nil:
				cells[i] = ""
			case string:
				cells[i] = x
			default:
				cells[i] = fmt.Sprint(x)
			}
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}

	return strings.Join(lines, "\n")
}
