package layout

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCurrency renders minor currency units as Brazilian reais, for
// example 35000 -> "R$ 350,00". Negative values keep a leading minus so
// display-only callers never get a malformed string.
func FormatCurrency(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	reais := cents / 100
	centavos := cents % 100
	return fmt.Sprintf("%sR$ %s,%02d", sign, groupThousands(reais), centavos)
}

// FormatDate renders a parsed date as DD/MM/YYYY.
func FormatDate(value string) (string, error) {
	t, err := ParseDate(value)
	if err != nil {
		return "", err
	}
	return t.Format("02/01/2006"), nil
}

func groupThousands(value int64) string {
	digits := strconv.FormatInt(value, 10)
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
