package schema

import (
	"github.com/llehouerou/go-mcd/graphql"
)

// Incident groups related events detected on one or more tables.
type Incident struct {
	ID           graphql.ID        `json:"id,omitempty"`
	UUID         UUID              `json:"uuid"`
	IncidentType IncidentType      `json:"incidentType"`
	IncidentTime DateTime          `json:"incidentTime"`
	CreatedTime  *DateTime         `json:"createdTime,omitempty"`
	UpdatedTime  *DateTime         `json:"updatedTime,omitempty"`
	Severity     *IncidentSeverity `json:"severity,omitempty"`
	Feedback     *IncidentFeedback `json:"feedback,omitempty"`
	Owner        *string           `json:"owner,omitempty"`
	Warehouse    *Warehouse        `json:"warehouse,omitempty"`
}

// IncidentDetail is an Incident together with its first events. The
// enclosing operation declares $eventsFirst.
type IncidentDetail struct {
	Incident
	Events *EventConnection `graphql:"events(first: $eventsFirst)" json:"events,omitempty"`
}

// Event is a single anomaly. Details is free-form and depends on the
// event type.
type Event struct {
	ID                 graphql.ID      `json:"id,omitempty"`
	UUID               UUID            `json:"uuid"`
	EventType          EventType       `json:"eventType"`
	EventGeneratedTime DateTime        `json:"eventGeneratedTime"`
	EventState         *string         `json:"eventState,omitempty"`
	Details            GenericScalar   `json:"details,omitempty"`
	Table              *WarehouseTable `json:"table,omitempty"`
}
