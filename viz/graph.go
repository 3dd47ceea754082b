// ABOUTME: Graphviz rendering of who is contacted through which methods
// ABOUTME: Companies and methods are nodes; edges carry event counts
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

// GraphGenerator renders graphs from engine state.
type GraphGenerator struct {
	engine *schedule.Engine
}

func NewGraphGenerator(engine *schedule.Engine) *GraphGenerator {
	return &GraphGenerator{engine: engine}
}

type edgeKey struct {
	company uuid.UUID
	method  uuid.UUID
}

// GenerateCommunicationGraph returns DOT source linking each company to the
// methods used to reach it. Events for deleted companies or methods are left
// out.
func (g *GraphGenerator) GenerateCommunicationGraph(ctx context.Context) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	graph.SetLabel("Communication Graph")
	graph.SetRankDir(cgraph.LRRank)

	companyNodes := make(map[uuid.UUID]*cgraph.Node)
	for _, company := range g.engine.Companies() {
		node, err := graph.CreateNodeByName("company_" + company.ID.String())
		if err != nil {
			return "", fmt.Errorf("failed to create company node: %w", err)
		}
		node.SetLabel(fmt.Sprintf("%s\n(every %d days)", company.Name, company.CommunicationPeriodicity))
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor(statusColor(g.engine.Status(company)))
		companyNodes[company.ID] = node
	}

	methodNodes := make(map[uuid.UUID]*cgraph.Node)
	for _, method := range g.engine.Methods() {
		node, err := graph.CreateNodeByName("method_" + method.ID.String())
		if err != nil {
			return "", fmt.Errorf("failed to create method node: %w", err)
		}
		node.SetLabel(method.Name)
		node.SetShape("ellipse")
		if method.Mandatory {
			node.SetStyle("bold")
		}
		methodNodes[method.ID] = node
	}

	counts := make(map[edgeKey]int)
	var order []edgeKey
	for _, c := range g.engine.Communications() {
		k := edgeKey{company: c.CompanyID, method: c.CommunicationType}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	for _, k := range order {
		companyNode, ok1 := companyNodes[k.company]
		methodNode, ok2 := methodNodes[k.method]
		if !ok1 || !ok2 {
			continue
		}
		edge, err := graph.CreateEdgeByName(fmt.Sprintf("%s_%s", k.company, k.method), companyNode, methodNode)
		if err != nil {
			return "", fmt.Errorf("failed to create edge: %w", err)
		}
		edge.SetLabel(fmt.Sprintf("%d", counts[k]))
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

func statusColor(s models.ScheduleStatus) string {
	switch s {
	case models.StatusOverdue:
		return "lightpink"
	case models.StatusDueToday:
		return "lightyellow"
	case models.StatusScheduled:
		return "lightgreen"
	default:
		return "lightgrey"
	}
}
