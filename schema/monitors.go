package schema

type ScheduleConfig struct {
	ScheduleType    ScheduleType `json:"scheduleType"`
	IntervalMinutes *int         `json:"intervalMinutes,omitempty"`
	StartTime       *DateTime    `json:"startTime,omitempty"`
	Timezone        *string      `json:"timezone,omitempty"`
}

type FreshnessConfiguration struct {
	Mcon             string `json:"mcon,omitempty"`
	ThresholdMinutes int    `json:"thresholdMinutes"`
}

type VolumeConfiguration struct {
	Mcon         string  `json:"mcon,omitempty"`
	Sensitivity  *string `json:"sensitivity,omitempty"`
	LookbackDays *int    `json:"lookbackDays,omitempty"`
}

type CustomSqlConfiguration struct {
	SQL         string                 `json:"sql,omitempty"`
	Comparisons []CustomRuleComparison `json:"comparisons,omitempty"`
}

// MonitorConfiguration is the MonitorConfiguration union. Only the
// fragment matching Typename is populated.
type MonitorConfiguration struct {
	Typename  string                 `graphql:"__typename"`
	Freshness FreshnessConfiguration `graphql:"... on FreshnessConfiguration"`
	Volume    VolumeConfiguration    `graphql:"... on VolumeConfiguration"`
	CustomSQL CustomSqlConfiguration `graphql:"... on CustomSqlConfiguration"`
}

// MarshalJSON encodes the populated fragment together with __typename.
func (c MonitorConfiguration) MarshalJSON() ([]byte, error) {
	var fragment any
	switch c.Typename {
	case "FreshnessConfiguration":
		fragment = c.Freshness
	case "VolumeConfiguration":
		fragment = c.Volume
	case "CustomSqlConfiguration":
		fragment = c.CustomSQL
	}
	return marshalFragment(c.Typename, fragment)
}

// AsFreshness returns the freshness settings if the configuration is one.
func (c *MonitorConfiguration) AsFreshness() (FreshnessConfiguration, bool) {
	if c == nil || c.Typename != "FreshnessConfiguration" {
		return FreshnessConfiguration{}, false
	}
	return c.Freshness, true
}

// AsVolume returns the volume settings if the configuration is one.
func (c *MonitorConfiguration) AsVolume() (VolumeConfiguration, bool) {
	if c == nil || c.Typename != "VolumeConfiguration" {
		return VolumeConfiguration{}, false
	}
	return c.Volume, true
}

// AsCustomSQL returns the custom SQL settings if the configuration is one.
func (c *MonitorConfiguration) AsCustomSQL() (CustomSqlConfiguration, bool) {
	if c == nil || c.Typename != "CustomSqlConfiguration" {
		return CustomSqlConfiguration{}, false
	}
	return c.CustomSQL, true
}

type TagKeyValuePair struct {
	Name  string  `json:"name,omitempty"`
	Value *string `json:"value,omitempty"`
}

// Monitor is a monitor on one or more tables. Entities holds the MCONs it
// watches.
type Monitor struct {
	UUID           UUID                  `json:"uuid"`
	MonitorType    MonitorType           `json:"monitorType"`
	MonitorStatus  *MonitorStatus        `json:"monitorStatus,omitempty"`
	Description    *string               `json:"description,omitempty"`
	Notes          *string               `json:"notes,omitempty"`
	Entities       []string              `json:"entities,omitempty"`
	CreatedTime    DateTime              `json:"createdTime"`
	LastUpdateTime *DateTime             `json:"lastUpdateTime,omitempty"`
	CreatorID      *string               `json:"creatorId,omitempty"`
	IsPaused       bool                  `json:"isPaused"`
	Schedule       *ScheduleConfig       `json:"schedule,omitempty"`
	Configuration  *MonitorConfiguration `json:"configuration,omitempty"`
	Tags           []TagKeyValuePair     `json:"tags,omitempty"`
}

type CustomRuleComparison struct {
	ComparisonType      string             `json:"comparisonType,omitempty"`
	Operator            ComparisonOperator `json:"operator"`
	Threshold           *float64           `json:"threshold,omitempty"`
	Baseline            *float64           `json:"baseline,omitempty"`
	IsThresholdRelative *bool              `json:"isThresholdRelative,omitempty"`
}

// CustomRule is a SQL rule. Circuit breakers are custom rules run on
// demand.
type CustomRule struct {
	UUID        UUID                   `json:"uuid"`
	RuleType    string                 `json:"ruleType,omitempty"`
	Description *string                `json:"description,omitempty"`
	CustomSQL   *string                `json:"customSql,omitempty"`
	IsPaused    bool                   `json:"isPaused"`
	CreatedTime DateTime               `json:"createdTime"`
	UpdatedTime *DateTime              `json:"updatedTime,omitempty"`
	Schedule    *ScheduleConfig        `json:"schedule,omitempty"`
	Comparisons []CustomRuleComparison `json:"comparisons,omitempty"`
	Warehouse   *Warehouse             `json:"warehouse,omitempty"`
}
