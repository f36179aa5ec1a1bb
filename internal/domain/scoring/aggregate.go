package scoring

import (
	"math"
	"strings"

	"github.com/okian/fitscore/internal/domain/model"
)

// Remark formatting.
const (
	remarkPrefix    = "缺："
	remarkSeparator = "、"
)

// Aggregate totals the scored slots and builds the missing-item remark in
// slot order.
func Aggregate(slots []model.SlotScore) model.ScoreResult {
	res := model.ScoreResult{Slots: slots}

	var total float64
	var matched int
	for _, sc := range slots {
		if p, ok := sc.Outcome.Points(); ok {
			total += p
			matched++
			continue
		}
		if sc.Outcome.IsUnscored() {
			res.Missing = append(res.Missing, string(sc.Event)+sc.Outcome.Reason().Qualifier())
		}
	}

	if matched == 0 {
		res.Total = model.Unscored(model.ReasonNoScores)
		res.Average = model.Unscored(model.ReasonNoScores)
	} else {
		res.Total = model.Scored(total)
		res.Average = model.Scored(round2(total / float64(matched)))
	}
	res.Remark = Remark(res.Missing)
	return res
}

// Remark joins missing-item labels, or returns "" when there are none.
func Remark(missing []string) string {
	if len(missing) == 0 {
		return ""
	}
	return remarkPrefix + strings.Join(missing, remarkSeparator)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
