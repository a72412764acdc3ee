package service

import (
	"github.com/google/uuid"
)

// QRCodeService defines the interface for QR code generation and parsing services
type QRCodeService interface {
	// GeneratePaymentQR generates a QR code encoding the bank-transfer
	// reference for an order.
	GeneratePaymentQR(orderID uuid.UUID) ([]byte, error)

	// ParsePaymentQR parses QR code data and returns the order ID.
	ParsePaymentQR(qrData string) (uuid.UUID, error)
}
