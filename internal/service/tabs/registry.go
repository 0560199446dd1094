package tabs

import (
	"strings"

	"github.com/shuttleops/demand-scheduler/internal/domain"
)

// Registry holds the destination tabs of one run, split by direction, and answers
// airport-suffix lookups from a table built once at construction.
type Registry struct {
	groups map[domain.Direction][]domain.TabRef
	suffix map[domain.Direction]map[string][]domain.TabRef
}

// NewRegistry partitions metas by the direction prefixes of layout. Tabs matching neither
// prefix are ignored. Tab order follows metas.
func NewRegistry(metas []domain.TabMeta, layout domain.Layout) *Registry {
	r := &Registry{
		groups: make(map[domain.Direction][]domain.TabRef),
		suffix: make(map[domain.Direction]map[string][]domain.TabRef),
	}

	for _, direction := range domain.Directions() {
		prefix := layout.For(direction).TabPrefix
		index := make(map[string][]domain.TabRef)

		for _, meta := range metas {
			if prefix == "" || !strings.HasPrefix(meta.Title, prefix) {
				continue
			}

			tab := domain.TabRef{
				Title:     meta.Title,
				SheetID:   meta.SheetID,
				Direction: direction,
			}
			r.groups[direction] = append(r.groups[direction], tab)

			lower := strings.ToLower(meta.Title)
			for i := 0; i < len(lower); i++ {
				key := lower[i:]
				index[key] = append(index[key], tab)
			}
		}

		r.suffix[direction] = index
	}

	return r
}

// Tabs returns the tabs registered for a direction.
func (r *Registry) Tabs(direction domain.Direction) []domain.TabRef {
	return r.groups[direction]
}

// All returns arrival tabs followed by departure tabs.
func (r *Registry) All() []domain.TabRef {
	var all []domain.TabRef
	for _, direction := range domain.Directions() {
		all = append(all, r.groups[direction]...)
	}
	return all
}

// Resolve finds the tab of direction whose title ends with airport, ignoring case.
// matches reports how many tabs qualified; ok is true only for exactly one.
func (r *Registry) Resolve(direction domain.Direction, airport string) (tab domain.TabRef, matches int, ok bool) {
	code := strings.ToLower(strings.TrimSpace(airport))
	if code == "" {
		return domain.TabRef{}, 0, false
	}

	candidates := r.suffix[direction][code]
	if len(candidates) != 1 {
		return domain.TabRef{}, len(candidates), false
	}
	return candidates[0], 1, true
}
