package adaptive

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/mathpath/mathpath-backend/internal/model"
)

// DefaultDrawSize is the target number of questions per practice run.
const DefaultDrawSize = 10

// ErrExhausted signals that no fallback tier produced any questions. A
// session must never start on an empty draw, so callers surface this to the
// student instead of proceeding.
var ErrExhausted = errors.New("no questions available at any fallback tier")

// Tier identifies how far the selector had to relax the request.
type Tier string

const (
	// TierExact means the requested criteria matched directly.
	TierExact Tier = "exact"
	// TierLowerLevel means the requested level was empty and a lower level
	// was served instead.
	TierLowerLevel Tier = "lower_level"
	// TierChapterWide means even level 1 was empty and the competency/level
	// constraints were dropped, serving any question in the chapter.
	TierChapterWide Tier = "chapter_wide"
)

// Filter is the partial query shape passed to the question source. Zero
// values mean "unconstrained" for Chapter, Competency and Level; Grade and
// Semester are always set.
type Filter struct {
	Grade      string
	Semester   int
	Chapter    string
	Competency model.Competency
	Level      int
}

// QuestionSource is the repository contract the selector draws from. A
// returned error means the backend is unavailable and is distinct from an
// empty (but successful) result.
type QuestionSource interface {
	Query(ctx context.Context, f Filter) ([]model.Question, error)
}

// Criteria is a fully resolved selection request. For adaptive mode the
// competency has already been fixed to the student's weakest skill.
type Criteria struct {
	Mode       model.PracticeMode
	Grade      string
	Semester   int
	Chapter    string
	Competency model.Competency
	Level      int
}

// Draw is a non-empty question set plus the tier that produced it.
// LevelServed generally differs from the requested level after fallback and
// is reported back for labeling and result storage.
type Draw struct {
	Questions   []model.Question
	LevelServed int
	Tier        Tier
}

// Selector resolves a selection request against the question bank with
// graceful fallback: exact match, then progressively lower levels, then (in
// chapter mode) any question in the chapter.
type Selector struct {
	source   QuestionSource
	drawSize int
	log      zerolog.Logger
}

// NewSelector creates a Selector. drawSize <= 0 falls back to DefaultDrawSize.
func NewSelector(source QuestionSource, drawSize int, log zerolog.Logger) *Selector {
	if drawSize <= 0 {
		drawSize = DefaultDrawSize
	}
	return &Selector{
		source:   source,
		drawSize: drawSize,
		log:      log.With().Str("component", "selector").Logger(),
	}
}

// Select walks the fallback tiers until a non-empty candidate set is found,
// then shuffles it and truncates to the draw size. Questions never repeat
// within one draw because each candidate appears once in the source set.
func (s *Selector) Select(ctx context.Context, c Criteria) (*Draw, error) {
	base := Filter{
		Grade:      c.Grade,
		Semester:   c.Semester,
		Competency: c.Competency,
	}
	if c.Mode == model.ModeChapter {
		base.Chapter = c.Chapter
	}

	// Tier 1+2: exact level, then decrement down to 1.
	for lvl := c.Level; lvl >= 1; lvl-- {
		f := base
		f.Level = lvl
		candidates, err := s.source.Query(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("query level %d: %w", lvl, err)
		}
		if len(candidates) == 0 {
			continue
		}
		tier := TierExact
		if lvl != c.Level {
			tier = TierLowerLevel
			s.log.Debug().
				Int("requested_level", c.Level).
				Int("served_level", lvl).
				Str("competency", string(c.Competency)).
				Msg("level fallback")
		}
		return s.draw(candidates, lvl, tier), nil
	}

	// Tier 3: chapter-wide relaxation. Only meaningful when the request was
	// scoped to a chapter in the first place.
	if c.Mode == model.ModeChapter && c.Chapter != "" {
		f := Filter{Grade: c.Grade, Semester: c.Semester, Chapter: c.Chapter}
		candidates, err := s.source.Query(ctx, f)
		if err != nil {
			return nil, fmt.Errorf("query chapter-wide: %w", err)
		}
		if len(candidates) > 0 {
			s.log.Debug().
				Str("chapter", c.Chapter).
				Msg("chapter-wide fallback")
			return s.draw(candidates, lowestLevel(candidates), TierChapterWide), nil
		}
	}

	return nil, ErrExhausted
}

func (s *Selector) draw(candidates []model.Question, level int, tier Tier) *Draw {
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > s.drawSize {
		candidates = candidates[:s.drawSize]
	}
	return &Draw{Questions: candidates, LevelServed: level, Tier: tier}
}

func lowestLevel(qs []model.Question) int {
	lowest := qs[0].Level
	for _, q := range qs[1:] {
		if q.Level < lowest {
			lowest = q.Level
		}
	}
	return lowest
}

// WeakestSkill picks the competency with the strictly lowest level for
// adaptive mode. Ties break by the canonical competency order.
func WeakestSkill(levels map[model.Competency]int) model.Competency {
	weakest := model.AllCompetencies[0]
	best := levels[weakest]
	for _, c := range model.AllCompetencies[1:] {
		if levels[c] < best {
			weakest = c
			best = levels[c]
		}
	}
	return weakest
}
