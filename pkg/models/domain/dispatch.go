package domain

import "time"

type DeliveryStatus string

const (
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryPending   DeliveryStatus = "pending"
	DeliveryFailed    DeliveryStatus = "failed"
)

// ReportMessage is the rendered content handed to a delivery channel.
type ReportMessage struct {
	Kind        ReportKind
	Subject     string
	HTML        string
	Text        string
	Recipients  []string
	GeneratedAt time.Time
}

// SendResult reports the outcome of a generate-render-dispatch run. Success
// reflects report generation only; Delivery carries the hand-off outcome.
type SendResult struct {
	Success    bool
	Recipients []string
	Delivery   DeliveryStatus
	Subject    string
	HTML       string
}
