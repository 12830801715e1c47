package appointment

import (
	"fmt"
	"strings"
	"time"
)

// Time-of-day slots offered on each working day.
var slotHours = []int{9, 11, 14, 16, 18}

// maxDateOptions bounds the option list presented to the user.
const maxDateOptions = 8

var spanishDays = [...]string{"Domingo", "Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado"}

var spanishMonths = [...]string{"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"}

// GenerateDateOptions enumerates upcoming weekday slots, excluding the
// current day, in chronological order, truncated to maxDateOptions. The
// result is stored on the session and never regenerated, so numeric
// selections stay stable.
func GenerateDateOptions(now time.Time) []time.Time {
	var options []time.Time
	for i := 1; i <= 15 && len(options) < maxDateOptions; i++ {
		day := now.AddDate(0, 0, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		for _, hour := range slotHours {
			if len(options) >= maxDateOptions {
				break
			}
			options = append(options, time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, now.Location()))
		}
	}
	return options
}

// FormatDateOption renders a slot the way it is shown to the user, e.g.
// "Lunes 02 de Enero a las 09:00".
func FormatDateOption(t time.Time) string {
	return fmt.Sprintf("%s %02d de %s a las %02d:%02d",
		spanishDays[t.Weekday()], t.Day(), spanishMonths[t.Month()-1], t.Hour(), t.Minute())
}

// renderDateOptions renders the numbered option list.
func renderDateOptions(options []time.Time) string {
	lines := make([]string, len(options))
	for i, opt := range options {
		lines[i] = fmt.Sprintf("• %d. %s", i+1, FormatDateOption(opt))
	}
	return strings.Join(lines, "\n")
}

// matchDateLabel resolves free-text input against the displayed option
// labels, for users who type the slot out instead of its number.
func matchDateLabel(input string, options []time.Time) (time.Time, bool) {
	clean := strings.TrimSpace(input)
	for _, opt := range options {
		if strings.EqualFold(clean, FormatDateOption(opt)) {
			return opt, true
		}
	}
	return time.Time{}, false
}
