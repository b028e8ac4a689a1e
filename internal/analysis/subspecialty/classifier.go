// Package subspecialty assigns one of seven orthopedic subspecialty
// categories to a document via a weighted-keyword score over a fixed
// vocabulary.  Classification is pure and total: it always returns exactly
// one category, defaulting to sports medicine when no category reaches its
// qualifying threshold.
package subspecialty

import (
	"github.com/arthrokinetix/akx-engine/internal/analysis/features"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

// weightedKeyword couples a vocabulary entry with its contribution per hit.
type weightedKeyword struct {
	keyword string
	weight  float64
}

// categoryTable is one subspecialty's scoring configuration.  A category
// qualifies only when its summed score reaches minScore.
type categoryTable struct {
	name     emotion.Subspecialty
	minScore float64
	keywords []weightedKeyword
}

// categoryTables is the fixed classifier configuration, in declaration order.
// The order is load-bearing: score ties resolve to the earliest category.
// Sports medicine carries a raised threshold (5 instead of 3) because its
// vocabulary overlaps general rehabilitation language and it is already the
// default when nothing qualifies.
var categoryTables = []categoryTable{
	{
		name:     emotion.SportsMedicine,
		minScore: 5,
		keywords: []weightedKeyword{
			{"acl", 3}, {"meniscus", 2.5}, {"athlete", 2}, {"sports", 2},
			{"return to play", 3}, {"anterior cruciate", 3}, {"sprain", 1.5},
			{"overuse", 1.5}, {"athletic", 1.5},
		},
	},
	{
		name:     emotion.ShoulderElbow,
		minScore: 3,
		keywords: []weightedKeyword{
			{"shoulder", 2}, {"elbow", 2}, {"rotator cuff", 3}, {"labrum", 2.5},
			{"glenohumeral", 3}, {"subacromial", 2.5}, {"biceps", 1.5},
			{"cuff repair", 3}, {"instability", 1.5},
		},
	},
	{
		name:     emotion.JointReplacement,
		minScore: 3,
		keywords: []weightedKeyword{
			{"arthroplasty", 3}, {"replacement", 2.5}, {"prosthesis", 2.5},
			{"implant", 2}, {"revision", 2}, {"total knee", 3},
			{"total hip", 3}, {"bearing", 1.5}, {"osteoarthritis", 1.5},
		},
	},
	{
		name:     emotion.Trauma,
		minScore: 3,
		keywords: []weightedKeyword{
			{"fracture", 3}, {"fixation", 2.5}, {"trauma", 2.5}, {"plate", 1.5},
			{"nail", 1.5}, {"nonunion", 2.5}, {"polytrauma", 3},
			{"osteosynthesis", 2.5}, {"dislocation", 1.5},
		},
	},
	{
		name:     emotion.Spine,
		minScore: 3,
		keywords: []weightedKeyword{
			{"spine", 2.5}, {"spinal", 2.5}, {"vertebral", 2.5}, {"disc", 2},
			{"fusion", 2}, {"lumbar", 2.5}, {"cervical", 2.5},
			{"scoliosis", 3}, {"laminectomy", 3},
		},
	},
	{
		name:     emotion.HandUpperExtremity,
		minScore: 3,
		keywords: []weightedKeyword{
			{"hand", 2}, {"wrist", 2.5}, {"finger", 2}, {"carpal", 3},
			{"thumb", 2}, {"tendon transfer", 3}, {"dupuytren", 3},
			{"nerve repair", 2.5}, {"scaphoid", 3},
		},
	},
	{
		name:     emotion.FootAnkle,
		minScore: 3,
		keywords: []weightedKeyword{
			{"foot", 2}, {"ankle", 2}, {"plantar", 2.5}, {"achilles", 3},
			{"hallux", 3}, {"calcaneus", 3}, {"midfoot", 2.5},
			{"bunion", 2.5}, {"hindfoot", 2.5},
		},
	},
}

// shoulderOverrideThreshold is the hand-tuned disambiguation bound for the
// hand/wrist vs shoulder/elbow vocabulary overlap.  Do not generalize it to
// other category pairs without new evidence.
const shoulderOverrideThreshold = 2

// Scores maps every category to its raw (unthresholded) score.
type Scores map[emotion.Subspecialty]float64

// Score computes the raw weighted-keyword score for every category.
// Matching is case-insensitive and word-boundary anchored, so "handler"
// contributes nothing to "hand".
func Score(text string) Scores {
	scores := make(Scores, len(categoryTables))
	for _, table := range categoryTables {
		var total float64
		for _, kw := range table.keywords {
			if n := features.CountWord(text, kw.keyword); n > 0 {
				total += float64(n) * kw.weight
			}
		}
		scores[table.name] = total
	}
	return scores
}

// Classify returns the qualifying category with the highest score, falling
// back to sports medicine when none qualifies.  Ties resolve to the first
// category reaching the maximum in table-declaration order.
//
// Special case: a handUpperExtremity win flips to shoulderElbow when the
// latter's raw score exceeds shoulderOverrideThreshold, since shoulder
// papers frequently mention the hand without being hand papers.
func Classify(text string) emotion.Subspecialty {
	scores := Score(text)

	winner := emotion.SportsMedicine
	best := -1.0
	for _, table := range categoryTables {
		s := scores[table.name]
		if s >= table.minScore && s > best {
			winner = table.name
			best = s
		}
	}
	if best < 0 {
		return emotion.SportsMedicine
	}

	if winner == emotion.HandUpperExtremity && scores[emotion.ShoulderElbow] > shoulderOverrideThreshold {
		return emotion.ShoulderElbow
	}
	return winner
}
