package models

import (
	"errors"
	"math"
	"testing"
)

func TestSupplierChargeInputValidate(t *testing.T) {
	two := 2
	tests := []struct {
		name  string
		input SupplierChargeInput
		ok    bool
	}{
		{"per box with count", SupplierChargeInput{Amount: 5, UnitOfCharge: ChargePerBox, BoxCount: &two}, true},
		{"free shipment", SupplierChargeInput{Amount: 0, UnitOfCharge: ChargePerShipment}, true},
		{"negative amount", SupplierChargeInput{Amount: -1, UnitOfCharge: ChargePerShipment}, false},
		{"NaN amount", SupplierChargeInput{Amount: math.NaN(), UnitOfCharge: ChargePerShipment}, false},
		{"infinite amount", SupplierChargeInput{Amount: math.Inf(1), UnitOfCharge: ChargePerBox}, false},
		{"unknown unit", SupplierChargeInput{Amount: 1, UnitOfCharge: "Per Pallet"}, false},
		{"box count on shipment", SupplierChargeInput{Amount: 1, UnitOfCharge: ChargePerShipment, BoxCount: &two}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}
