package service

import (
	"sort"
	"strings"

	"github.com/prateekdahiya/campusconnect/internal/ccerror"
	"github.com/prateekdahiya/campusconnect/internal/database"
	"github.com/prateekdahiya/campusconnect/internal/model"
)

// A Matcher ranks opposite-type lost-and-found items by textual overlap
// with a target item, to help spotting a likely lost/found pair.
//
// The heuristic is deliberately naive (substring containment of query
// tokens, not a bag-of-words comparison) and must stay that way: clients
// rely on the exact ranking it produces.
type Matcher struct {
	db database.Client
}

// NewMatcher returns a new Matcher.
func NewMatcher(db database.Client) *Matcher {
	return &Matcher{db: db}
}

// FindMatches returns the candidates of the opposite type ordered by
// descending keyword-overlap score. Candidates that share no token with
// the target are left out. Equal scores keep the pool order (newest
// first). Pure read, no side effects.
func (m *Matcher) FindMatches(targetID string) ([]*model.Item, error) {
	target, err := m.db.FindItem(targetID)
	if err != nil {
		if m.db.IsNotFound(err) {
			return nil, ccerror.NotFound("Item not found.")
		}
		return nil, err
	}

	opposite := model.ItemTypeFound
	if target.Type == model.ItemTypeFound {
		opposite = model.ItemTypeLost
	}

	pool, err := m.db.FindItems(database.ItemFilter{Type: opposite})
	if err != nil {
		return nil, err
	}

	// Token repeats count multiple times on purpose.
	tokens := strings.Fields(matchText(target))

	type scored struct {
		item  *model.Item
		score int
	}

	candidates := make([]scored, 0, len(pool))
	for _, c := range pool {
		if c.ID == targetID {
			continue
		}

		text := matchText(c)
		score := 0
		for _, w := range tokens {
			if strings.Contains(text, w) {
				score++
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{item: c, score: score})
		}
	}

	// Stable: equal scores retain pool order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	matches := make([]*model.Item, len(candidates))
	for i, c := range candidates {
		matches[i] = c.item
	}
	return matches, nil
}

func matchText(i *model.Item) string {
	return strings.ToLower(i.Title + " " + i.Description)
}
