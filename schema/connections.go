package schema

// RelayEdge is an edge of a relay connection. Node is nil when the server
// could not resolve it.
type RelayEdge[N any] struct {
	Node   *N     `json:"node,omitempty"`
	Cursor string `json:"cursor,omitempty"`
}

// RelayConnection is a relay-style page of N.
type RelayConnection[N any] struct {
	Edges    []RelayEdge[N] `json:"edges,omitempty"`
	PageInfo PageInfo       `json:"pageInfo"`
}

// Nodes returns the nodes of the page in order, skipping nil nodes.
func (c *RelayConnection[N]) Nodes() []N {
	if c == nil {
		return nil
	}
	nodes := make([]N, 0, len(c.Edges))
	for _, e := range c.Edges {
		if e.Node != nil {
			nodes = append(nodes, *e.Node)
		}
	}
	return nodes
}

// NextCursor returns the cursor of the next page, or false on the last one.
func (c *RelayConnection[N]) NextCursor() (string, bool) {
	if c == nil || !c.PageInfo.HasNextPage || c.PageInfo.EndCursor == nil {
		return "", false
	}
	return *c.PageInfo.EndCursor, true
}

type (
	TableConnection          = RelayConnection[WarehouseTable]
	IncidentConnection       = RelayConnection[Incident]
	EventConnection          = RelayConnection[Event]
	CustomRuleConnection     = RelayConnection[CustomRule]
	ObjectPropertyConnection = RelayConnection[ObjectProperty]
	UserConnection           = RelayConnection[User]
)
