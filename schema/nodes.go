package schema

import (
	"bytes"
	"encoding/json"

	"github.com/llehouerou/go-mcd/graphql"
)

// NodeResult is the result of the node query: any type implementing the
// Node interface. The fragment named by Typename is populated, the others
// are left zero.
type NodeResult struct {
	Typename       string         `graphql:"__typename"`
	ID             graphql.ID     `graphql:"id"`
	User           User           `graphql:"... on User"`
	Account        Account        `graphql:"... on Account"`
	Warehouse      Warehouse      `graphql:"... on Warehouse"`
	WarehouseTable WarehouseTable `graphql:"... on WarehouseTable"`
	Incident       Incident       `graphql:"... on Incident"`
	Event          Event          `graphql:"... on Event"`
}

// MarshalJSON encodes the populated fragment together with __typename.
func (n NodeResult) MarshalJSON() ([]byte, error) {
	var fragment any
	switch n.Typename {
	case "User":
		fragment = n.User
	case "Account":
		fragment = n.Account
	case "Warehouse":
		fragment = n.Warehouse
	case "WarehouseTable":
		fragment = n.WarehouseTable
	case "Incident":
		fragment = n.Incident
	case "Event":
		fragment = n.Event
	default:
		fragment = struct {
			ID graphql.ID `json:"id,omitempty"`
		}{n.ID}
	}
	return marshalFragment(n.Typename, fragment)
}

// marshalFragment encodes fragment as an object whose first key is
// __typename.
func marshalFragment(typename string, fragment any) ([]byte, error) {
	head, err := json.Marshal(map[string]string{"__typename": typename})
	if err != nil {
		return nil, err
	}
	if fragment == nil {
		return head, nil
	}
	body, err := json.Marshal(fragment)
	if err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(body, []byte("{")) || bytes.Equal(body, []byte("{}")) {
		return head, nil
	}
	out := append(head[:len(head)-1], ',')
	return append(out, body[1:]...), nil
}

func (n *NodeResult) is(typename string) bool {
	return n != nil && n.Typename == typename
}

// AsUser returns the node if it is a User.
func (n *NodeResult) AsUser() (User, bool) {
	if !n.is("User") {
		return User{}, false
	}
	return n.User, true
}

// AsAccount returns the node if it is an Account.
func (n *NodeResult) AsAccount() (Account, bool) {
	if !n.is("Account") {
		return Account{}, false
	}
	return n.Account, true
}

// AsWarehouse returns the node if it is a Warehouse.
func (n *NodeResult) AsWarehouse() (Warehouse, bool) {
	if !n.is("Warehouse") {
		return Warehouse{}, false
	}
	return n.Warehouse, true
}

// AsWarehouseTable returns the node if it is a WarehouseTable.
func (n *NodeResult) AsWarehouseTable() (WarehouseTable, bool) {
	if !n.is("WarehouseTable") {
		return WarehouseTable{}, false
	}
	return n.WarehouseTable, true
}

// AsIncident returns the node if it is an Incident.
func (n *NodeResult) AsIncident() (Incident, bool) {
	if !n.is("Incident") {
		return Incident{}, false
	}
	return n.Incident, true
}

// AsEvent returns the node if it is an Event.
func (n *NodeResult) AsEvent() (Event, bool) {
	if !n.is("Event") {
		return Event{}, false
	}
	return n.Event, true
}
