package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/canopy/pkg/core"
	"github.com/aretw0/canopy/pkg/ports"
)

type piiMiddleware struct {
	next     ports.BlackboardStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of blackboard
// keys matching any of the patterns before snapshots are persisted. Loads are
// untouched; masking is one-way.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.BlackboardStore) ports.BlackboardStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, agentID string, snapshot *core.Snapshot) error {
	// Clone first so the in-memory blackboard the engine keeps ticking against
	// is not masked as a side effect.
	masked := &core.Snapshot{
		Base:  maskMap(snapshot.Base, m.patterns),
		Trees: make(map[string]core.TreeSnapshot, len(snapshot.Trees)),
	}
	for id, ts := range snapshot.Trees {
		nodes := make(map[string]map[string]any, len(ts.Nodes))
		for nodeID, nm := range ts.Nodes {
			nodes[nodeID] = maskMap(nm, m.patterns)
		}
		masked.Trees[id] = core.TreeSnapshot{
			Mem:   maskMap(ts.Mem, m.patterns),
			Nodes: nodes,
		}
	}
	return m.next.Save(ctx, agentID, masked)
}

func (m *piiMiddleware) Load(ctx context.Context, agentID string) (*core.Snapshot, error) {
	return m.next.Load(ctx, agentID)
}

func (m *piiMiddleware) Delete(ctx context.Context, agentID string) error {
	return m.next.Delete(ctx, agentID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskMap(src map[string]any, patterns []*regexp.Regexp) map[string]any {
	if src == nil {
		return nil
	}
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
		for _, p := range patterns {
			if p.MatchString(k) {
				out[k] = "***"
				break
			}
		}
	}
	return out
}
