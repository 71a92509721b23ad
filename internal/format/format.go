package format

import (
	"fmt"
	"strconv"
	"strings"
)

// Comma renders n with thousand separators.
// Example: Comma(165102) => "165,102"
func Comma(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	var b strings.Builder
	for i, c := range []byte(s) {
		if i != 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Won renders an amount given in 만원, switching to 억 units past 1억.
// Example: Won(16800) => "1억 6,800만원"
func Won(man int64) string {
	if man < 10000 {
		return Comma(man) + "만원"
	}
	eok := man / 10000
	rest := man % 10000
	if rest == 0 {
		return strconv.FormatInt(eok, 10) + "억원"
	}
	return strconv.FormatInt(eok, 10) + "억 " + Comma(rest) + "만원"
}

// Percent renders a ratio already scaled to 0-100 with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
