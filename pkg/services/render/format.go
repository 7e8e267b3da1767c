package render

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	dateLayout = "1/2/2006"
	noDueDate  = "TBD"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency rounds to whole units and groups thousands, e.g. $12,345.
func Currency(v float64) string {
	rounded := int64(math.Round(v))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

func Hours(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

func Percent(v int) string {
	return fmt.Sprintf("%d%%", v)
}

func Date(t time.Time) string {
	return t.Format(dateLayout)
}

func DueDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return noDueDate
	}
	return Date(*t)
}

func funcs() map[string]any {
	return map[string]any{
		"currency": Currency,
		"hours":    Hours,
		"percent":  Percent,
		"date":     Date,
		"dueDate":  DueDate,
	}
}
