package order

import "time"

// Milestone is one step of the rendered tracking timeline.
//
// Timestamp semantics:
//   - a reached milestone carries the recorded transition time
//   - the unreached Delivered milestone carries the order's estimated
//     delivery time, flagged Estimated
//   - other unreached milestones carry a zero Timestamp (pending)
type Milestone struct {
	Status      Status
	Description string
	Timestamp   time.Time
	Estimated   bool
	Completed   bool
	Current     bool
}

// Timeline derives the tracking timeline from the order's current state.
//
// It always returns exactly one Milestone per status in the canonical
// sequence (seven in total), in fixed order. Every milestone up to and
// including the current status is Completed; the rest are not. The milestone
// for the current status is additionally flagged Current.
//
// For a cancelled order the completed prefix reflects the status held at
// cancellation and no milestone is flagged Current, since the order is no
// longer at any linear stage.
func (o *Order) Timeline() ([]Milestone, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := o.status.Validate(); err != nil {
		return nil, err
	}

	linear := o.status
	if o.status == Cancelled {
		linear = o.cancelledFrom
	}
	reachedIdx, ok := progressIndex(linear)
	if !ok {
		return nil, linear.Validate()
	}

	descriptions := getMilestoneDescriptions()
	steps := progression()
	timeline := make([]Milestone, 0, len(steps))
	for i, step := range steps {
		milestone := Milestone{
			Status:      step,
			Description: descriptions[step],
			Completed:   i <= reachedIdx,
			Current:     step == o.status,
		}

		if t, reached := o.reachedAt[step]; reached {
			milestone.Timestamp = t
		} else if step == Delivered {
			milestone.Timestamp = o.estimatedDeliveryAt
			milestone.Estimated = true
		}

		timeline = append(timeline, milestone)
	}

	return timeline, nil
}

// ProgressPercent reports how far the order has advanced along the canonical
// sequence, as an integer in [0,100]. Placed is 0 and Delivered is 100.
// A cancelled order reports the percent it had reached when cancelled.
func (o *Order) ProgressPercent() int {
	linear := o.status
	if o.status == Cancelled {
		linear = o.cancelledFrom
	}

	percent, ok := linear.ProgressPercent()
	if !ok {
		return 0
	}
	return percent
}
