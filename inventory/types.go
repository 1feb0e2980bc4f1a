/*
types.go - Vehicle inventory domain types

PURPOSE:
  Defines the purchased-vehicle record, its availability status, and the
  stock-number/Bluetooth-device pairing log.

STATUS MODEL:
  Availability is a tagged variant rather than a free-form string:
  either Available, or Sold carrying the deal type that sold it. The
  externally observable states are "Available" and "Sold - <DealType>".

SOURCE REFERENCE:
  A vehicle keeps a by-value copy of the source it was purchased from
  (location name + sub-category). No referential integrity is enforced
  against the source directory.
*/
package inventory

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/lotworks/dealdesk/desklog"
)

// Status is a vehicle's availability: Available, or Sold with the deal
// type that sold it. The zero value is Available.
type Status struct {
	Sold     bool
	DealType desklog.DealType // set only when Sold
}

// Available returns the unsold status.
func Available() Status {
	return Status{}
}

// Sold returns a sold status carrying the deal type.
func Sold(t desklog.DealType) Status {
	return Status{Sold: true, DealType: t}
}

// String renders the externally observable form: "Available" or
// "Sold - <DealType>".
func (s Status) String() string {
	if s.Sold {
		return "Sold - " + string(s.DealType)
	}
	return "Available"
}

// ParseStatus converts the external string form back into a Status.
// The empty string means Available.
func ParseStatus(v string) (Status, error) {
	if v == "" || v == "Available" {
		return Available(), nil
	}
	rest, ok := strings.CutPrefix(v, "Sold - ")
	if !ok {
		return Status{}, fmt.Errorf("unknown vehicle status %q", v)
	}
	t, err := desklog.ParseDealType(rest)
	if err != nil {
		return Status{}, fmt.Errorf("unknown vehicle status %q: %w", v, err)
	}
	return Sold(t), nil
}

// MarshalJSON renders Status as its external string form.
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", s.String())), nil
}

// UnmarshalJSON parses the external string form.
func (s *Status) UnmarshalJSON(b []byte) error {
	v := strings.Trim(string(b), `"`)
	if v == "null" {
		*s = Available()
		return nil
	}
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// SourceRef is a by-value reference to the source a vehicle was
// purchased from.
type SourceRef struct {
	Location    string
	SubCategory string
}

// Vehicle is a purchased vehicle on the lot. StockNumber is assigned
// exactly once at creation and never changes afterwards.
type Vehicle struct {
	ID                string
	Make              string
	Model             string
	Year              int
	VIN               string
	PurchaseDate      time.Time
	PurchasePrice     decimal.Decimal
	Buyer             string
	Source            SourceRef
	StockNumber       string
	BluetoothDeviceID string
	Status            Status
}

// StockNumberEntry pairs a stock number with a Bluetooth device id.
// It is a side-channel log, independent of Vehicle records; entries are
// never updated or deleted.
type StockNumberEntry struct {
	ID          string
	StockNumber string
	DeviceID    string
	CreatedAt   time.Time
}
