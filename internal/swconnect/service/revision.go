package service

import (
	"strconv"
	"strings"

	"github.com/precihole/SolidworkConnect/internal/swconnect/entity"
)

// ParseRevision 解析 R<n> 中的数字，空值、无法解析或负数都按 0 处理
func ParseRevision(rev string) int {
	rev = strings.TrimSpace(rev)
	if rev == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.ReplaceAll(rev, "R", ""))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatRevision 格式化修订号
func FormatRevision(n int) string {
	return "R" + strconv.Itoa(n)
}

// NextRevision 下一个修订号
func NextRevision(current string) string {
	return FormatRevision(ParseRevision(current) + 1)
}

// displayRevision 空修订号显示为 R0
func displayRevision(rev string) string {
	if rev == "" {
		return entity.InitialRevision
	}
	return rev
}
