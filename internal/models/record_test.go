package models

import (
	"testing"
)

func TestTripRecord_IsActivity(t *testing.T) {
	tests := []struct {
		name     string
		record   TripRecord
		expected bool
	}{
		{"all zero", TripRecord{}, false},
		{"distance only", TripRecord{Distance: 120}, true},
		{"fuel only", TripRecord{FuelQuantity: 30}, true},
		{"revenue only", TripRecord{Revenue: 450}, true},
		{"price and maintenance only", TripRecord{FuelUnitPrice: 2, MaintenanceCost: 15}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.record.IsActivity(); got != tt.expected {
				t.Errorf("IsActivity() = %v, want %v", got, tt.expected)
			}
		})
	}
}
