package events

// Instance is a triggered, currently-active event.
type Instance struct {
	TemplateID        string
	Category          Category
	RemainingDuration int
	Multipliers       Multipliers
}
