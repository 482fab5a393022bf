package domain

// TrackingEvent is one entry of the synthesized shipment narrative.
type TrackingEvent struct {
	Date  string `json:"date"`
	Stage string `json:"stage"`
}

// Tracking is the display-only progress view of a distribution. It is
// computed from the record's fixed date and status by constant offsets and
// must never be treated as authoritative shipment state.
type Tracking struct {
	DistributionID    string             `json:"distributionId"`
	Status            DistributionStatus `json:"status"`
	PercentComplete   int                `json:"percentComplete"`
	EstimatedDelivery string             `json:"estimatedDelivery"`
	Events            []TrackingEvent    `json:"events"`
}

// Narrative synthesizes the tracking view for a distribution. It is a pure
// function of the record: same inputs always yield the same narrative.
//
// Stages are fixed offsets from the distribution date: prepared two days
// before, out for delivery one day before, delivered on the date itself
// (only when the record says delivered). Delivered shipments report their
// own date as the delivery date; anything else estimates date plus three
// days.
func Narrative(d Distribution) Tracking {
	t := Tracking{
		DistributionID: d.ID,
		Status:         d.Status,
	}

	date, err := ParseDate(d.Date)
	if err != nil {
		// Keep the view renderable even for a malformed record.
		t.PercentComplete = percentFor(d.Status)
		return t
	}

	t.Events = []TrackingEvent{
		{Date: date.AddDate(0, 0, -2).Format(DateLayout), Stage: "Prepared at origin warehouse"},
		{Date: date.AddDate(0, 0, -1).Format(DateLayout), Stage: "Out for delivery"},
	}

	if d.Status == DistributionDelivered {
		t.Events = append(t.Events, TrackingEvent{
			Date:  date.Format(DateLayout),
			Stage: "Delivered to destination",
		})
		t.EstimatedDelivery = date.Format(DateLayout)
	} else {
		t.EstimatedDelivery = date.AddDate(0, 0, 3).Format(DateLayout)
	}

	t.PercentComplete = percentFor(d.Status)
	return t
}

func percentFor(s DistributionStatus) int {
	switch s {
	case DistributionDelivered:
		return 100
	case DistributionInTransit:
		return 60
	case DistributionPending:
		return 25
	default:
		return 0
	}
}
