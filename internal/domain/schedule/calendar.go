package schedule

import (
	"time"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

const DateLayout = "2006-01-02"

// MonthDates devolve toda data do mês que cai no dia da semana pedido,
// em ordem, como calendário puro ("2006-01-02", sem fuso).
//
// Caminha dia a dia até o primeiro dia compatível e depois salta de 7 em 7.
func MonthDates(year int, month time.Month, weekday time.Weekday) []string {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	day := 1
	for day <= lastDay && first.AddDate(0, 0, day-1).Weekday() != weekday {
		day++
	}

	var dates []string
	for ; day <= lastDay; day += 7 {
		dates = append(dates, first.AddDate(0, 0, day-1).Format(DateLayout))
	}

	return dates
}

// NextMonth devolve o mês seguinte, virando o ano em dezembro.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}

// CombineDateTime junta um calendário puro e um relógio de parede no fuso
// do tenant, produzindo o instante agendado.
func CombineDateTime(date, hm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+hm, loc)
	if err != nil {
		return time.Time{}, httperr.ErrBusiness("invalid_date_or_time")
	}
	return t, nil
}
