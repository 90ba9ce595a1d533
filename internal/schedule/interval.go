package schedule

import (
	"encoding/json"
	"fmt"
)

// Рабочие часы площадок — общесистемная константа, не настраивается per-field
const (
	OpeningTime TimeOfDay = 8 * 60  // 08:00
	ClosingTime TimeOfDay = 22 * 60 // 22:00
	SlotWidth   TimeOfDay = 60      // ширина слота в минутах
)

// TimeOfDay время суток в минутах от полуночи, точность до минуты
type TimeOfDay int

// ParseTimeOfDay разбирает время в формате "HH:MM"
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var hours, minutes int
	if _, err := fmt.Sscanf(s, "%2d:%2d", &hours, &minutes); err != nil || len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	return TimeOfDay(hours*60 + minutes), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// NewInterval создаёт интервал, конец должен быть строго позже начала
func NewInterval(start, end TimeOfDay) (Interval, error) {
	if end <= start {
		return Interval{}, fmt.Errorf("interval end %s must be after start %s", end, start)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов.
// Смежные интервалы ([8:00,9:00) и [9:00,10:00)) не пересекаются.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start < other.End && other.Start < i.End
}

// DaySlots возвращает разбиение рабочих часов на часовые слоты по порядку
func DaySlots() []Interval {
	var slots []Interval
	for start := OpeningTime; start < ClosingTime; start += SlotWidth {
		slots = append(slots, Interval{Start: start, End: start + SlotWidth})
	}
	return slots
}
