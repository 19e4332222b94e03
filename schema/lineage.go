package schema

// LineageNode is a node of the lineage graph. Mcon identifies it in
// edges and lookups.
type LineageNode struct {
	Mcon        string  `json:"mcon,omitempty"`
	ObjectType  string  `json:"objectType,omitempty"`
	DisplayName *string `json:"displayName,omitempty"`
	ObjectID    *string `json:"objectId,omitempty"`
}

// LineageEdge links Source to Destination. Edges with ExpireAt set are
// dropped by the server after that time.
type LineageEdge struct {
	Source      LineageNode `json:"source"`
	Destination LineageNode `json:"destination"`
	ExpireAt    *DateTime   `json:"expireAt,omitempty"`
}

// TableLineage is the lineage of one table up to Hops levels in one
// direction.
type TableLineage struct {
	Mcon            string           `json:"mcon,omitempty"`
	Direction       LineageDirection `json:"direction"`
	Hops            int              `json:"hops"`
	ConnectedTables []LineageNode    `json:"connectedTables,omitempty"`
	FlattenedEdges  []LineageEdge    `json:"flattenedEdges,omitempty"`
}
