package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrStrategy = "strategy"
	AttrOutcome  = "outcome"
	AttrValid    = "valid"
	AttrSource   = "source"
)
