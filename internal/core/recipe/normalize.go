package recipe

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeOne 清理單一食材字串：NFKC、去頭尾空白、合併連續空白、轉小寫
func NormalizeOne(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Join(strings.Fields(s), " ")
	return cases.Lower(language.Und).String(s)
}

// Normalize 清理食材清單，移除空白項目並保留原順序
func Normalize(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := NormalizeOne(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}
