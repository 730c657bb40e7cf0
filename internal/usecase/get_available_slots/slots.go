package get_available_slots

import (
	"sort"
	"time"

	"github.com/mentorhub/MH-SessionService/internal/domain"
	"github.com/mentorhub/MH-SessionService/pkg/types"
)

// candidate кандидат в слоты: время стены плюс материализованный интервал
// в таймзоне породившего его шаблона
type candidate struct {
	startWall types.TimeString
	endWall   types.TimeString
	start     time.Time
	end       time.Time
}

// generateCandidates генерирует кандидатов из шаблонов доступности на дату
// Окно каждого шаблона обходится с фиксированным шагом SlotStepMinutes;
// кандидат попадает в список, только если целиком помещается в окно.
// Окна через полночь (end <= start) пустые: цикл не делает ни одной итерации.
// Кандидаты из пересекающихся шаблонов дедуплицируются по времени начала.
func generateCandidates(
	templates []*domain.AvailabilityTemplate,
	date time.Time,
	durationMinutes int,
) ([]candidate, error) {
	seen := make(map[types.TimeString]struct{})
	candidates := make([]candidate, 0)

	for _, tmpl := range templates {
		if tmpl.IsEmptyWindow() {
			continue
		}

		loc, err := tmpl.Location()
		if err != nil {
			return nil, err
		}

		startMin, err := tmpl.StartTime.Minutes()
		if err != nil {
			return nil, err
		}
		endMin, err := tmpl.EndTime.Minutes()
		if err != nil {
			return nil, err
		}

		for cur := startMin; cur+durationMinutes <= endMin; cur += domain.SlotStepMinutes {
			startWall, err := types.NewTimeStringFromMinutes(cur)
			if err != nil {
				return nil, err
			}

			if _, ok := seen[startWall]; ok {
				continue
			}
			seen[startWall] = struct{}{}

			endWall, err := types.NewTimeStringFromMinutes(cur + durationMinutes)
			if err != nil {
				return nil, err
			}

			start := wallTimeOn(date, cur, loc)
			candidates = append(candidates, candidate{
				startWall: startWall,
				endWall:   endWall,
				start:     start,
				end:       start.Add(time.Duration(durationMinutes) * time.Minute),
			})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].start.Before(candidates[j].start)
	})

	return candidates, nil
}

// markAvailability размечает кандидатов признаком доступности
// Кандидат недоступен, если пересекается с активной сессией ментора
// или его начало не в будущем
func markAvailability(candidates []candidate, sessions []*domain.Session, now time.Time) []domain.Slot {
	slots := make([]domain.Slot, len(candidates))

	for i, c := range candidates {
		available := c.start.After(now)

		if available && hasOverlap(c, sessions) {
			available = false
		}

		slots[i] = domain.Slot{
			StartTime: c.startWall,
			EndTime:   c.endWall,
			Available: available,
		}
	}

	return slots
}

// hasOverlap проверяет пересечение кандидата с активными сессиями
// Используются строгие неравенства: граничащие интервалы не пересекаются
func hasOverlap(c candidate, sessions []*domain.Session) bool {
	for _, s := range sessions {
		if !s.IsActive() {
			continue
		}
		if s.Overlaps(c.start, c.end) {
			return true
		}
	}
	return false
}

// queryWindow возвращает интервал, покрывающий всех кандидатов,
// для выборки потенциально конфликтующих сессий
func queryWindow(candidates []candidate) (time.Time, time.Time) {
	from := candidates[0].start
	to := candidates[0].end

	for _, c := range candidates[1:] {
		if c.start.Before(from) {
			from = c.start
		}
		if c.end.After(to) {
			to = c.end
		}
	}

	return from, to
}

// wallTimeOn материализует время стены (минуты с полуночи) на дате date
// в указанной таймзоне
func wallTimeOn(date time.Time, minutes int, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, loc)
}
