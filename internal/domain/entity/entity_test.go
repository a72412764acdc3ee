package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_IsValid(t *testing.T) {
	for _, status := range []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled} {
		assert.True(t, status.IsValid(), status.String())
	}
	assert.False(t, OrderStatus("Teleported").IsValid())
}

func TestPaymentStatus_IsValid(t *testing.T) {
	for _, status := range []PaymentStatus{PaymentUnpaid, PaymentPaid, PaymentRefunded} {
		assert.True(t, status.IsValid(), status.String())
	}
	assert.False(t, PaymentStatus("Bartered").IsValid())
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	terminal := map[RequestStatus]bool{
		RequestPending:    false,
		RequestApproved:   false,
		RequestRejected:   false,
		RequestProcessing: false,
		RequestCompleted:  true,
		RequestCancelled:  true,
	}

	for status, want := range terminal {
		assert.True(t, status.IsValid(), status.String())
		assert.Equal(t, want, status.IsTerminal(), status.String())
	}
}

func TestRole_IsValid(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleSeller, RoleCustomer} {
		assert.True(t, role.IsValid(), role.String())
	}
	assert.False(t, Role("superuser").IsValid())
}

func TestOrderItem_Subtotal(t *testing.T) {
	item := OrderItem{
		UnitPrice: decimal.RequireFromString("10.50"),
		Quantity:  3,
	}

	assert.True(t, item.Subtotal().Equal(decimal.RequireFromString("31.50")))
}
