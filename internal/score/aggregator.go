package score

import (
	"math"

	"broadwayscore/internal/catalog"
	"broadwayscore/internal/config"
)

// Source identifies one contributing score feed.
type Source string

const (
	// SourceCritics is the critic-consensus engine.
	SourceCritics Source = "critics"
	// SourceCrowd is the crowd-rating aggregator.
	SourceCrowd Source = "crowd"
	// SourceDiscourse is fan-discourse sentiment; it always carries the
	// fixed configured weight when blended.
	SourceDiscourse Source = "discourse"
)

// Sources holds the per-source inputs for one show. Nil means the source
// has not reported; it is excluded from the blend entirely.
type Sources struct {
	Critics   *catalog.SourceScore
	Crowd     *catalog.SourceScore
	Discourse *catalog.SourceScore
}

// Combined is the published result. Score is nil when no source reported.
// Weights are percentages summing to 100 over the present sources.
type Combined struct {
	Score       *int               `json:"score"`
	Weights     map[Source]float64 `json:"weights"`
	Designation string             `json:"designation,omitempty"`
}

// Aggregator computes combined scores with weights and bands from
// configuration.
type Aggregator struct {
	cfg config.Scoring
}

// NewAggregator constructs an aggregator.
func NewAggregator(cfg config.Scoring) *Aggregator {
	return &Aggregator{cfg: cfg}
}

type present struct {
	source Source
	score  float64
	sample int
}

// Combine blends the present sources into one score. Deterministic: the
// same inputs always produce the same output, so callers recompute it
// whenever a contributing source changes rather than storing it as
// authoritative state.
func (a *Aggregator) Combine(in Sources) Combined {
	sources := make([]present, 0, 3)
	if in.Critics != nil {
		sources = append(sources, present{SourceCritics, in.Critics.Score, in.Critics.SampleSize})
	}
	if in.Crowd != nil {
		sources = append(sources, present{SourceCrowd, in.Crowd.Score, in.Crowd.SampleSize})
	}
	if in.Discourse != nil {
		sources = append(sources, present{SourceDiscourse, in.Discourse.Score, in.Discourse.SampleSize})
	}

	combined := Combined{Weights: make(map[Source]float64, len(sources))}
	if len(sources) == 0 {
		return combined
	}

	if len(sources) == 1 {
		// A lone source takes the full weight; no blending artifacts.
		only := sources[0]
		combined.Weights[only.source] = 100
		rounded := int(math.Round(only.score))
		combined.Score = &rounded
		combined.Designation = a.Designation(rounded)
		return combined
	}

	remaining := 100.0
	weighted := make([]present, 0, len(sources))
	for _, s := range sources {
		if s.source == SourceDiscourse {
			combined.Weights[SourceDiscourse] = float64(a.cfg.DiscourseWeightPercent)
			remaining -= float64(a.cfg.DiscourseWeightPercent)
			continue
		}
		weighted = append(weighted, s)
	}

	switch len(weighted) {
	case 1:
		combined.Weights[weighted[0].source] = remaining
	default:
		totalSamples := 0
		for _, s := range weighted {
			totalSamples += s.sample
		}
		for _, s := range weighted {
			if totalSamples > 0 {
				combined.Weights[s.source] = remaining * float64(s.sample) / float64(totalSamples)
			} else {
				combined.Weights[s.source] = remaining / float64(len(weighted))
			}
		}
	}

	var sum float64
	for _, s := range sources {
		sum += s.score * combined.Weights[s.source] / 100
	}
	rounded := int(math.Round(sum))
	combined.Score = &rounded
	combined.Designation = a.Designation(rounded)
	return combined
}
