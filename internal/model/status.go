package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned when a requested status is not a direct
// successor of the current one.
var ErrInvalidTransition = errors.New("invalid status transition")

// PurchaseStatus is the lifecycle state of an inbound purchase. The numeric
// value is the status code used on the wire.
type PurchaseStatus uint8

const (
	PurchaseStatusUnknown PurchaseStatus = iota
	PurchaseStatusPending
	PurchaseStatusIncoming
	PurchaseStatusReturned
)

var purchaseStatusNames = [...]string{"Unknown", "Pending", "Incoming", "Returned"}

var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchaseStatusPending: {PurchaseStatusIncoming, PurchaseStatusReturned},
}

func (s PurchaseStatus) String() string {
	if int(s) >= len(purchaseStatusNames) {
		return purchaseStatusNames[0]
	}
	return purchaseStatusNames[s]
}

// Valid reports whether s is one of the known purchase states.
func (s PurchaseStatus) Valid() bool {
	return s >= PurchaseStatusPending && s <= PurchaseStatusReturned
}

// Validate satisfies the "enum" validation tag.
func (s PurchaseStatus) Validate() error {
	if !s.Valid() {
		return fmt.Errorf("unknown purchase status %d", s)
	}
	return nil
}

func (s PurchaseStatus) IsTerminal() bool {
	return s.Valid() && len(purchaseTransitions[s]) == 0
}

// Successors returns the states reachable from s in one step.
func (s PurchaseStatus) Successors() []PurchaseStatus {
	return append([]PurchaseStatus(nil), purchaseTransitions[s]...)
}

func (s PurchaseStatus) CanTransitionTo(target PurchaseStatus) bool {
	for _, next := range purchaseTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// CheckTransition returns ErrInvalidTransition when target is not reachable
// from s in one step.
func (s PurchaseStatus) CheckTransition(target PurchaseStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: purchase %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// ParsePurchaseStatus accepts a status name (case-insensitive) or its code.
func ParsePurchaseStatus(v string) (PurchaseStatus, error) {
	for i, name := range purchaseStatusNames {
		s := PurchaseStatus(i)
		if s.Valid() && (strings.EqualFold(v, name) || v == fmt.Sprint(i)) {
			return s, nil
		}
	}
	return PurchaseStatusUnknown, fmt.Errorf("unknown purchase status %q", v)
}

// OrderStatus is the lifecycle state of an outbound customer order.
type OrderStatus uint8

const (
	OrderStatusUnknown OrderStatus = iota
	OrderStatusProcessing
	OrderStatusSent
	OrderStatusCancelled
)

var orderStatusNames = [...]string{"Unknown", "Processing", "Sent", "Cancelled"}

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {OrderStatusSent, OrderStatusCancelled},
}

func (s OrderStatus) String() string {
	if int(s) >= len(orderStatusNames) {
		return orderStatusNames[0]
	}
	return orderStatusNames[s]
}

func (s OrderStatus) Valid() bool {
	return s >= OrderStatusProcessing && s <= OrderStatusCancelled
}

// Validate satisfies the "enum" validation tag.
func (s OrderStatus) Validate() error {
	if !s.Valid() {
		return fmt.Errorf("unknown order status %d", s)
	}
	return nil
}

func (s OrderStatus) IsTerminal() bool {
	return s.Valid() && len(orderTransitions[s]) == 0
}

func (s OrderStatus) Successors() []OrderStatus {
	return append([]OrderStatus(nil), orderTransitions[s]...)
}

func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s OrderStatus) CheckTransition(target OrderStatus) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: order %s -> %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// ParseOrderStatus accepts a status name (case-insensitive) or its code.
func ParseOrderStatus(v string) (OrderStatus, error) {
	for i, name := range orderStatusNames {
		s := OrderStatus(i)
		if s.Valid() && (strings.EqualFold(v, name) || v == fmt.Sprint(i)) {
			return s, nil
		}
	}
	return OrderStatusUnknown, fmt.Errorf("unknown order status %q", v)
}
