package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/GoSim-25-26J-441/social-graph-api/internal/graphdb"
	"github.com/GoSim-25-26J-441/social-graph-api/internal/social/domain"
)

var (
	nodeGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graph_nodes",
		Help: "Nodes in the social graph by label, as of the last statistics run",
	}, []string{"label"})

	relationshipGauge = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "graph_relationships",
		Help: "Relationships in the social graph by type, as of the last statistics run",
	}, []string{"type"})
)

// Known labels and types are always reported, with zero when absent.
var (
	knownLabels = []string{domain.LabelUser, domain.LabelPost, domain.LabelComment}
	knownTypes  = []string{domain.RelFriendsWith, domain.RelCreated, domain.RelLikes, domain.RelHasComment}
)

// Snapshot is a point-in-time count of the graph contents.
// FRIENDS_WITH is stored in both directions, so Friendships is half its count.
type Snapshot struct {
	Nodes         map[string]int64 `json:"nodes"`
	Relationships map[string]int64 `json:"relationships"`
	Friendships   int64            `json:"friendships"`
	CollectedAt   time.Time        `json:"collected_at"`
}

// Collector counts nodes and relationships.
type Collector struct {
	db  graphdb.Runner
	now func() time.Time
}

func NewCollector(db graphdb.Runner) *Collector {
	return &Collector{db: db, now: time.Now}
}

// Collect runs the count queries and updates the gauges.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Nodes:         make(map[string]int64, len(knownLabels)),
		Relationships: make(map[string]int64, len(knownTypes)),
	}
	for _, l := range knownLabels {
		snap.Nodes[l] = 0
	}
	for _, t := range knownTypes {
		snap.Relationships[t] = 0
	}

	nodes, err := c.db.Read(ctx, `
		MATCH (n)
		UNWIND labels(n) AS label
		RETURN label, count(*) AS count
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("count nodes: %w", err)
	}
	for _, rec := range nodes {
		snap.Nodes[graphdb.StringValue(rec, "label")] = graphdb.Int64Value(rec, "count")
	}

	rels, err := c.db.Read(ctx, `
		MATCH ()-[r]->()
		RETURN type(r) AS type, count(r) AS count
	`, nil)
	if err != nil {
		return nil, fmt.Errorf("count relationships: %w", err)
	}
	for _, rec := range rels {
		snap.Relationships[graphdb.StringValue(rec, "type")] = graphdb.Int64Value(rec, "count")
	}

	snap.Friendships = snap.Relationships[domain.RelFriendsWith] / 2
	snap.CollectedAt = c.now().UTC()

	for label, n := range snap.Nodes {
		nodeGauge.WithLabelValues(label).Set(float64(n))
	}
	for typ, n := range snap.Relationships {
		relationshipGauge.WithLabelValues(typ).Set(float64(n))
	}
	return snap, nil
}
