package models

import (
	"errors"
	"math"
)

// ErrValidation is returned when a record is missing a required field.
var ErrValidation = errors.New("validation failed")

// UnitOfCharge says how a supplier charge amount is counted.
type UnitOfCharge string

const (
	ChargePerBox      UnitOfCharge = "Per Box"
	ChargePerShipment UnitOfCharge = "Per Shipment"
)

// AdditionalCharge is an ad-hoc charge stored on the supplier itself (early schema).
type AdditionalCharge struct {
	Reason string  `json:"reason"`
	Amount float64 `json:"amount"`
}

// Supplier defines the struct for the 'suppliers' table
type Supplier struct {
	ID                string             `json:"id" db:"id"`
	Name              string             `json:"name" db:"name"`
	Location          string             `json:"location" db:"location"`
	AdditionalCharges []AdditionalCharge `json:"additionalCharges"`
}

// SupplierInput is a supplier before it has been created.
type SupplierInput struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Validate checks that at least a name or a location is present.
func (s SupplierInput) Validate() error {
	if s.Name == "" && s.Location == "" {
		return errors.Join(ErrValidation, errors.New("supplier needs a name or a location"))
	}
	return nil
}

// SupplierCharge is a freight, handling, or other fee owed to a supplier for a date.
type SupplierCharge struct {
	ID           string       `json:"id" db:"id"`
	ChargeType   string       `json:"chargeType" db:"charge_type"`
	Description  string       `json:"description" db:"description"`
	Amount       float64      `json:"amount" db:"amount"`
	SupplierID   string       `json:"supplierId,omitempty" db:"supplier_id"`
	SupplierName string       `json:"supplierName,omitempty" db:"-"`
	Date         string       `json:"date,omitempty" db:"charge_date"`
	UnitOfCharge UnitOfCharge `json:"unitOfCharge" db:"unit_of_charge"`
	// BoxCount is only meaningful for "Per Box". NULL means the charge covers all boxes.
	BoxCount *int `json:"boxCount" db:"box_count"`
}

// SupplierChargeInput is a supplier charge before it has been created.
type SupplierChargeInput struct {
	ChargeType   string       `json:"chargeType"`
	Description  string       `json:"description"`
	Amount       float64      `json:"amount"`
	SupplierID   string       `json:"supplierId"`
	Date         string       `json:"date"`
	UnitOfCharge UnitOfCharge `json:"unitOfCharge"`
	BoxCount     *int         `json:"boxCount"`
}

// Validate enforces the charge invariants: finite non-negative amount,
// positive box count, and box count only under "Per Box".
func (in SupplierChargeInput) Validate() error {
	if in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return errors.Join(ErrValidation, errors.New("charge amount must be a non-negative number"))
	}
	if in.UnitOfCharge != ChargePerBox && in.UnitOfCharge != ChargePerShipment {
		return errors.Join(ErrValidation, errors.New("unit of charge must be 'Per Box' or 'Per Shipment'"))
	}
	if in.BoxCount != nil {
		if *in.BoxCount <= 0 {
			return errors.Join(ErrValidation, errors.New("box count must be a positive whole number"))
		}
		if in.UnitOfCharge != ChargePerBox {
			return errors.Join(ErrValidation, errors.New("box count only applies to 'Per Box' charges"))
		}
	}
	return nil
}
