package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-management/internal/model"
)

func TestPurchaseStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to model.PurchaseStatus
		allowed  bool
	}{
		{model.PurchaseStatusPending, model.PurchaseStatusIncoming, true},
		{model.PurchaseStatusPending, model.PurchaseStatusReturned, true},
		{model.PurchaseStatusPending, model.PurchaseStatusPending, false},
		{model.PurchaseStatusIncoming, model.PurchaseStatusReturned, false},
		{model.PurchaseStatusIncoming, model.PurchaseStatusPending, false},
		{model.PurchaseStatusReturned, model.PurchaseStatusIncoming, false},
		{model.PurchaseStatusReturned, model.PurchaseStatusPending, false},
		{model.PurchaseStatusPending, model.PurchaseStatus(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
			err := tt.from.CheckTransition(tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, model.ErrInvalidTransition)
			}
		})
	}

	assert.True(t, model.PurchaseStatusIncoming.IsTerminal())
	assert.True(t, model.PurchaseStatusReturned.IsTerminal())
	assert.False(t, model.PurchaseStatusPending.IsTerminal())
	assert.Empty(t, model.PurchaseStatusIncoming.Successors())
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, model.OrderStatusProcessing.CanTransitionTo(model.OrderStatusSent))
	assert.True(t, model.OrderStatusProcessing.CanTransitionTo(model.OrderStatusCancelled))

	for _, terminal := range []model.OrderStatus{model.OrderStatusSent, model.OrderStatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range []model.OrderStatus{model.OrderStatusProcessing, model.OrderStatusSent, model.OrderStatusCancelled} {
			assert.ErrorIs(t, terminal.CheckTransition(target), model.ErrInvalidTransition)
		}
	}

	assert.Equal(t, []model.OrderStatus{model.OrderStatusSent, model.OrderStatusCancelled},
		model.OrderStatusProcessing.Successors())
}

func TestParseStatus(t *testing.T) {
	s, err := model.ParsePurchaseStatus("incoming")
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusIncoming, s)

	s, err = model.ParsePurchaseStatus("3")
	require.NoError(t, err)
	assert.Equal(t, model.PurchaseStatusReturned, s)

	_, err = model.ParsePurchaseStatus("Unknown")
	assert.Error(t, err)

	o, err := model.ParseOrderStatus("Cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCancelled, o)

	_, err = model.ParseOrderStatus("0")
	assert.Error(t, err)
}

func TestPurchaseJSON(t *testing.T) {
	p := model.Purchase{
		ID:           4,
		ProductName:  "Flour",
		Quantity:     100,
		UnitPrice:    2.5,
		PurchaseDate: model.NewDate(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		Status:       model.PurchaseStatusIncoming,
	}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "Incoming", fields["status"])
	assert.EqualValues(t, 2, fields["purchaseStatusId"])
	assert.Equal(t, "2024-05-01T00:00:00Z", fields["purchaseDate"])

	var decoded model.Purchase
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, p.Status, decoded.Status)
	assert.True(t, p.PurchaseDate.Equal(decoded.PurchaseDate.Time))
}

func TestDateAcceptsDatePickerFormat(t *testing.T) {
	var d model.Date
	require.NoError(t, json.Unmarshal([]byte(`"2024-05-01"`), &d))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.True(t, d.IsZero())
}
