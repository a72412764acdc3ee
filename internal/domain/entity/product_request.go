package entity

import (
	"time"

	"github.com/google/uuid"
)

// RequestStatus tracks the lifecycle of a restock request.
type RequestStatus string

const (
	RequestPending    RequestStatus = "Pending"
	RequestApproved   RequestStatus = "Approved"
	RequestRejected   RequestStatus = "Rejected"
	RequestProcessing RequestStatus = "Processing"
	RequestCompleted  RequestStatus = "Completed"
	RequestCancelled  RequestStatus = "Cancelled"
)

// String returns the string representation of the RequestStatus.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid checks if the RequestStatus is a valid value.
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestPending, RequestApproved, RequestRejected,
		RequestProcessing, RequestCompleted, RequestCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed out of s.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestCompleted || s == RequestCancelled
}

// ProductRequest is a seller's restock request. Stock is credited exactly
// once, on the first transition into Completed.
type ProductRequest struct {
	ID                uuid.UUID     // The Global Unique Identifier (GUID) for the request.
	ProductID         uuid.UUID     // The product to restock.
	SellerID          uuid.UUID     // The requesting seller.
	QuantityRequested int           // Units requested, always positive.
	Status            RequestStatus // Current lifecycle status.
	Notes             string        // Seller's note, optional.
	AdminNotes        string        // Admin's note recorded with the latest transition.
	CreatedAt         time.Time     // Timestamp of when the request was filed.
	UpdatedAt         time.Time     // Timestamp of the last status change.
}
