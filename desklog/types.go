/*
types.go - Desklog domain types

PURPOSE:
  A desklog entry records one sales transaction: status, deal and
  vehicle classification, the customer, the people who worked the deal,
  and the negotiated gross-profit figures.

MONEY:
  All gross figures are decimal.Decimal. The store does not enforce any
  arithmetic relationship between them (total is whatever was entered,
  not front+back); they are plain recorded figures.

STATUS LIFECYCLE:
  Pending -> Delivered | Cancelled | Unwound. Moving an entry to
  Delivered marks the referenced vehicle (matched by stock number) as
  sold - see appstate/controller.go.
*/
package desklog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DealStatus is the lifecycle state of a sales transaction.
type DealStatus string

const (
	StatusPending   DealStatus = "Pending"
	StatusDelivered DealStatus = "Delivered"
	StatusCancelled DealStatus = "Cancelled"
	StatusUnwound   DealStatus = "Unwound"
)

// Valid reports whether s is a known deal status.
func (s DealStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusCancelled, StatusUnwound:
		return true
	}
	return false
}

// DealType classifies how the vehicle was sold.
type DealType string

const (
	DealRetail    DealType = "Retail"
	DealLease     DealType = "Lease"
	DealFleet     DealType = "Fleet"
	DealWholesale DealType = "Wholesale"
)

// Valid reports whether t is a known deal type.
func (t DealType) Valid() bool {
	switch t {
	case DealRetail, DealLease, DealFleet, DealWholesale:
		return true
	}
	return false
}

// VehicleType classifies the vehicle side of the deal.
type VehicleType string

const (
	VehicleNew     VehicleType = "New"
	VehicleUsed    VehicleType = "Used"
	VehicleDemo    VehicleType = "Demo"
	VehicleProgram VehicleType = "Program"
)

// Valid reports whether t is a known vehicle type.
func (t VehicleType) Valid() bool {
	switch t {
	case VehicleNew, VehicleUsed, VehicleDemo, VehicleProgram:
		return true
	}
	return false
}

// Customer is the buyer-side contact recorded on a deal.
type Customer struct {
	Name  string
	Phone string
	Email string
}

// Entry is one desklog record: a sales transaction and its negotiated
// financial terms. CreatedAt/UpdatedAt are system-assigned.
type Entry struct {
	ID           string
	DealStatus   DealStatus
	DealType     DealType
	VehicleType  VehicleType
	RDR          string
	DealNumber   string
	Date         time.Time
	Customer     Customer
	StockNumber  string
	Salesperson  string
	SalesManager string
	FIManager    string
	FrontGross   decimal.Decimal
	BackGross    decimal.Decimal
	TotalGross   decimal.Decimal
	ACV          decimal.Decimal
	Allowance    decimal.Decimal
	Delta        decimal.Decimal
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ParseDealStatus converts a string into a DealStatus, rejecting
// unknown values.
func ParseDealStatus(s string) (DealStatus, error) {
	st := DealStatus(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown deal status %q", s)
	}
	return st, nil
}

// ParseDealType converts a string into a DealType, rejecting unknown
// values.
func ParseDealType(s string) (DealType, error) {
	t := DealType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown deal type %q", s)
	}
	return t, nil
}

// ParseVehicleType converts a string into a VehicleType, rejecting
// unknown values.
func ParseVehicleType(s string) (VehicleType, error) {
	t := VehicleType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown vehicle type %q", s)
	}
	return t, nil
}
