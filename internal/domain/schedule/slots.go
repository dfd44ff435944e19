package schedule

import (
	"fmt"
	"time"

	"github.com/semprecheioapp/semprecheioapp-sub001/internal/httperr"
)

const TimeLayout = "15:04"

type TimeSlot struct {
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// SplitIntoSlots fatia [startTime, endTime) em janelas de duração fixa.
//
// A última janela só entra se terminar exatamente em endTime ou antes;
// sobra menor que a duração é descartada, nunca truncada. Intervalo vazio
// (start == end) devolve lista vazia; intervalo invertido é erro.
func SplitIntoSlots(startTime, endTime string, durationMin int) ([]TimeSlot, error) {
	if durationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	start, err := parseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, err
	}

	if end < start {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	slots := []TimeSlot{}
	for cur := start; cur+durationMin <= end; cur += durationMin {
		slots = append(slots, TimeSlot{
			Start: formatClock(cur),
			End:   formatClock(cur + durationMin),
		})
	}

	return slots, nil
}

// parseClock converte "HH:MM" em minutos desde a meia-noite.
func parseClock(hm string) (int, error) {
	t, err := time.Parse(TimeLayout, hm)
	if err != nil {
		return 0, httperr.ErrBusiness("invalid_time")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
