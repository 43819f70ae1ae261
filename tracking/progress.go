// Package tracking holds the delivery progress policy and the rider-facing
// helpers built on it.
//
// Status labels are free text, so there is no transition table. Progress is
// driven by how often an order is updated, not by which label is chosen.
package tracking

const (
	// ProgressStep is added on every status update, whatever the new label.
	ProgressStep = 20
	MaxProgress  = 100
)

// Advance returns the progress after one status update.
func Advance(progress int) int {
	next := progress + ProgressStep
	if next > MaxProgress {
		return MaxProgress
	}
	return next
}

// Timeline labels of a freshly created order, in order.
const (
	StepPlaced     = "Order Placed"
	StepProcessing = "Processing"
	StepOutForDel  = "Out for Delivery"
	StepDelivered  = "Delivered"

	// PendingTime fills the time column of steps not reached yet.
	PendingTime = "Pending"
)

// TimelineLabels lists the four delivery steps.
func TimelineLabels() []string {
	return []string{StepPlaced, StepProcessing, StepOutForDel, StepDelivered}
}
