package schema

import (
	"github.com/llehouerou/go-mcd/graphql"
)

// Object types select every field of their GraphQL type, except that
// fields leading back to an enclosing type are left out: a selection set
// cannot be recursive. Nullable fields are pointers, lists are slices.

// PageInfo is the relay PageInfo type.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor,omitempty"`
	EndCursor       *string `json:"endCursor,omitempty"`
}

// Account is the account owning the API key.
type Account struct {
	ID             graphql.ID      `json:"id,omitempty"`
	UUID           UUID            `json:"uuid"`
	Name           *string         `json:"name,omitempty"`
	CreatedOn      *DateTime       `json:"createdOn,omitempty"`
	Warehouses     []Warehouse     `json:"warehouses,omitempty"`
	DataCollectors []DataCollector `json:"dataCollectors,omitempty"`
}

// User is a user of an account.
type User struct {
	ID            graphql.ID `json:"id,omitempty"`
	CognitoUserID string     `json:"cognitoUserId,omitempty"`
	Email         string     `json:"email,omitempty"`
	FirstName     *string    `json:"firstName,omitempty"`
	LastName      *string    `json:"lastName,omitempty"`
	IsSSOUser     bool       `json:"isSsoUser"`
	Role          *string    `json:"role,omitempty"`
	CreatedOn     *DateTime  `json:"createdOn,omitempty"`
	LastLoggedIn  *DateTime  `json:"lastLoggedIn,omitempty"`
	Account       *Account   `json:"account,omitempty"`
}

// UserSummary selects the identifying fields of a User.
type UserSummary struct {
	ID        graphql.ID `json:"id,omitempty"`
	Email     string     `json:"email,omitempty"`
	FirstName *string    `json:"firstName,omitempty"`
	LastName  *string    `json:"lastName,omitempty"`
}

type DataCollector struct {
	UUID                 UUID    `json:"uuid"`
	StackARN             *string `json:"stackArn,omitempty"`
	TemplateVersion      *string `json:"templateVersion,omitempty"`
	Active               bool    `json:"active"`
	CustomerAWSAccountID *string `json:"customerAwsAccountId,omitempty"`
}

// Warehouse is a monitored data store.
type Warehouse struct {
	ID             graphql.ID     `json:"id,omitempty"`
	UUID           UUID           `json:"uuid"`
	Name           *string        `json:"name,omitempty"`
	ConnectionType WarehouseType  `json:"connectionType"`
	CreatedOn      *DateTime      `json:"createdOn,omitempty"`
	DataCollector  *DataCollector `json:"dataCollector,omitempty"`
	Connections    []Connection   `json:"connections,omitempty"`
}

// Connection is an integration attached to a warehouse.
type Connection struct {
	UUID      UUID           `json:"uuid"`
	Type      ConnectionType `json:"type"`
	CreatedOn *DateTime      `json:"createdOn,omitempty"`
	JobTypes  []string       `json:"jobTypes,omitempty"`
}

// WarehouseTable is a table tracked by the platform. Tags are its object
// properties.
type WarehouseTable struct {
	ID           graphql.ID       `json:"id,omitempty"`
	Mcon         string           `json:"mcon,omitempty"`
	FullTableID  string           `json:"fullTableId,omitempty"`
	TableID      *string          `json:"tableId,omitempty"`
	Description  *string          `json:"description,omitempty"`
	TableType    *string          `json:"tableType,omitempty"`
	IsImportant  bool             `json:"isImportant"`
	IsDeleted    bool             `json:"isDeleted"`
	LastObserved *DateTime        `json:"lastObserved,omitempty"`
	CreatedTime  *DateTime        `json:"createdTime,omitempty"`
	LastModified *DateTime        `json:"lastModified,omitempty"`
	Path         []string         `json:"path,omitempty"`
	Warehouse    *Warehouse       `json:"warehouse,omitempty"`
	Tags         []ObjectProperty `json:"tags,omitempty"`
}

// ObjectProperty is a key/value tag set on an object identified by MCON.
type ObjectProperty struct {
	ID                 graphql.ID `json:"id,omitempty"`
	MconID             string     `json:"mconId,omitempty"`
	PropertyName       string     `json:"propertyName,omitempty"`
	PropertyValue      *string    `json:"propertyValue,omitempty"`
	PropertySourceType *string    `json:"propertySourceType,omitempty"`
	CreatedTime        *DateTime  `json:"createdTime,omitempty"`
	LastUpdateTime     *DateTime  `json:"lastUpdateTime,omitempty"`
}

type RowCountPoint struct {
	Date     Date    `json:"date"`
	RowCount *BigInt `json:"rowCount,omitempty"`
}

type ValidationResult struct {
	Type    *string `json:"type,omitempty"`
	Message *string `json:"message,omitempty"`
}
