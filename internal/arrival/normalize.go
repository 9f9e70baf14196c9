// Package arrival turns the raw station arrival list into per-direction boards.
package arrival

import (
	"sort"

	"github.com/jusunglee/mirror-go/internal/models"
)

// Line 4 (Dangogae - Oido)
const DefaultTargetLine = "1004"

// DefaultLimit is the number of trains kept per direction
const DefaultLimit = 3

// Normalizer filters, groups, sorts and classifies arrivals for one line
type Normalizer struct {
	TargetLine string
	Limit      int
}

// NewNormalizer creates a normalizer for a line code
func NewNormalizer(targetLine string, limit int) *Normalizer {
	if targetLine == "" {
		targetLine = DefaultTargetLine
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Normalizer{TargetLine: targetLine, Limit: limit}
}

// DirectionOf maps an updnLine value to a direction
func DirectionOf(updnLine string) (models.Direction, bool) {
	switch updnLine {
	case "0", "상행":
		return models.DirectionUp, true
	case "1", "하행":
		return models.DirectionDown, true
	}
	return "", false
}

// Normalize builds the board for one polling cycle.
// Records for other lines or with an unknown direction are dropped and counted.
func (n *Normalizer) Normalize(records []models.ArrivalRecord) models.Board {
	var board models.Board
	var up, down []models.ArrivalRecord

	for _, r := range records {
		if r.SubwayID != n.TargetLine {
			board.Dropped.Line++
			continue
		}
		dir, ok := DirectionOf(r.UpdnLine)
		if !ok {
			board.Dropped.Direction++
			continue
		}
		if dir == models.DirectionUp {
			up = append(up, r)
		} else {
			down = append(down, r)
		}
	}

	board.Up = n.bucket(up)
	board.Down = n.bucket(down)
	return board
}

func (n *Normalizer) bucket(records []models.ArrivalRecord) []models.ClassifiedArrival {
	sort.SliceStable(records, func(i, j int) bool {
		return Minutes(records[i].ArvlMsg2) < Minutes(records[j].ArvlMsg2)
	})

	if len(records) > n.Limit {
		records = records[:n.Limit]
	}

	result := make([]models.ClassifiedArrival, len(records))
	for i, r := range records {
		c := Classify(r.ArvlMsg2)
		result[i] = models.ClassifiedArrival{
			Destination: r.Destination(),
			Text:        c.Text,
			Urgent:      c.Urgent,
			Message:     r.ArvlMsg2,
		}
	}
	return result
}
