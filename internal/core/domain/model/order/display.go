package order

// DisplayMeta carries the presentation attributes of a status: the label shown
// on a badge, the badge color tag, and the icon tag. It is defined once here
// and referenced by every view instead of being re-implemented per consumer.
type DisplayMeta struct {
	Label string
	Color string
	Icon  string
}

// getDisplayMeta returns the status-to-display-metadata lookup table.
func getDisplayMeta() map[Status]DisplayMeta {
	return map[Status]DisplayMeta{
		Placed:    {Label: "Placed", Color: "secondary", Icon: "clock"},
		Confirmed: {Label: "Confirmed", Color: "secondary", Icon: "check-circle"},
		Preparing: {Label: "Preparing", Color: "warning", Icon: "alert-circle"},
		Ready:     {Label: "Ready", Color: "secondary", Icon: "package"},
		PickedUp:  {Label: "Picked up", Color: "secondary", Icon: "package"},
		InTransit: {Label: "In transit", Color: "default", Icon: "truck"},
		Delivered: {Label: "Delivered", Color: "success", Icon: "check-circle"},
		Cancelled: {Label: "Cancelled", Color: "destructive", Icon: "x-circle"},
	}
}

// Display returns the presentation attributes for the status.
// Unrecognized statuses fall back to a neutral badge.
func (s Status) Display() DisplayMeta {
	if meta, ok := getDisplayMeta()[s]; ok {
		return meta
	}
	return DisplayMeta{Label: "Unknown", Color: "secondary", Icon: "clock"}
}

// getMilestoneDescriptions returns the human-readable description shown on the
// tracking timeline for each linear fulfillment stage.
func getMilestoneDescriptions() map[Status]string {
	return map[Status]string{
		Placed:    "Order placed successfully",
		Confirmed: "Merchant confirmed order",
		Preparing: "Preparation started",
		Ready:     "Order ready for pickup",
		PickedUp:  "Driver picked up order",
		InTransit: "On the way to delivery address",
		Delivered: "Order delivered",
	}
}
