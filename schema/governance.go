package schema

// Domain is a named set of tables, used to scope monitors and
// authorization.
type Domain struct {
	UUID           UUID      `json:"uuid"`
	Name           string    `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Assignments    []string  `json:"assignments,omitempty"`
	CreatedByEmail *string   `json:"createdByEmail,omitempty"`
	CreatedTime    *DateTime `json:"createdTime,omitempty"`
}

// AuthorizationGroup grants Permissions to Users, optionally restricted
// to some domains.
type AuthorizationGroup struct {
	Name               string        `json:"name,omitempty"`
	Label              *string       `json:"label,omitempty"`
	Description        *string       `json:"description,omitempty"`
	Permissions        []string      `json:"permissions,omitempty"`
	IsManaged          bool          `json:"isManaged"`
	Users              []UserSummary `json:"users,omitempty"`
	DomainRestrictions []Domain      `json:"domainRestrictions,omitempty"`
}
