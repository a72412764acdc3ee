package service

import (
	"context"
	"time"
)

// Event types published by the store workflows.
const (
	EventOrderPlaced = "order.placed"
	EventSaleLogged  = "sale.logged"
)

// StoreEvent represents a store activity to be processed by downstream consumers
type StoreEvent struct {
	RequestID   string    `json:"request_id,omitempty"` // For distributed tracing
	Type        string    `json:"type"`                 // order.placed or sale.logged
	EntityID    string    `json:"entity_id"`            // Order or sale record ID
	TotalAmount string    `json:"total_amount"`         // Decimal string, avoids float drift
	OccurredAt  time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishStoreEvent publishes a store event for async processing
	PublishStoreEvent(ctx context.Context, event *StoreEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
