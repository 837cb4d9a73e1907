package observability

import (
	"github.com/aretw0/canopy/pkg/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector exposes tick activity as Prometheus metrics. Install its Hooks on
// the engine (or on individual trees) and serve the registry with promhttp.
//
// Node metrics are labeled by node type name, not node ID, to keep
// cardinality bounded.
type Collector struct {
	treeTicks *prometheus.CounterVec
	nodeTicks *prometheus.CounterVec
	openNodes *prometheus.GaugeVec
}

// NewCollector creates a collector registered on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)
	return &Collector{
		treeTicks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "tree_ticks_total",
			Help:      "Tree ticks by tree and resulting status.",
		}, []string{"tree", "status"}),
		nodeTicks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "canopy",
			Name:      "node_ticks_total",
			Help:      "Node traversals by tree, node type and resulting status.",
		}, []string{"tree", "node", "status"}),
		openNodes: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "canopy",
			Name:      "open_nodes",
			Help:      "Nodes currently inside an activation, per tree.",
		}, []string{"tree"}),
	}
}

// Hooks returns lifecycle callbacks feeding this collector.
func (c *Collector) Hooks() core.Hooks {
	return core.Hooks{
		OnTreeTick: func(tree *core.BehaviorTree, status core.Status) {
			c.treeTicks.WithLabelValues(tree.ID(), status.String()).Inc()
		},
		OnNodeOpen: func(t *core.Tick, n core.Node) {
			c.openNodes.WithLabelValues(t.Tree().ID()).Inc()
		},
		OnNodeClose: func(t *core.Tick, n core.Node) {
			c.openNodes.WithLabelValues(t.Tree().ID()).Dec()
		},
		OnNodeExit: func(t *core.Tick, n core.Node, status core.Status) {
			c.nodeTicks.WithLabelValues(t.Tree().ID(), n.Name(), status.String()).Inc()
		},
	}
}
