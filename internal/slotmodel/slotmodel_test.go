package slotmodel

import "testing"

func TestTableValues(t *testing.T) {
	cases := []struct {
		dr       DataRate
		slots    int
		slotSize float64
		maxPush  int
	}{
		{DR0, 1986, 1.81269, 5},
		{DR1, 3972, 0.90634, 11},
		{DR2, 7944, 0.45317, 22},
		{DR3, 15888, 0.22659, 44},
		{DR4, 31776, 0.11329, 88},
		{DR5, 63552, 0.05665, 176},
	}

	for _, tc := range cases {
		if got := tc.dr.Slots(); got != tc.slots {
			t.Errorf("dr %d: Slots() = %d, want %d", tc.dr, got, tc.slots)
		}
		if got := tc.dr.SlotSize(); got != tc.slotSize {
			t.Errorf("dr %d: SlotSize() = %v, want %v", tc.dr, got, tc.slotSize)
		}
		if got := tc.dr.MaxPush(); got != tc.maxPush {
			t.Errorf("dr %d: MaxPush() = %d, want %d", tc.dr, got, tc.maxPush)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := DR5.Validate(); err != nil {
		t.Fatalf("DR5 should be valid: %v", err)
	}
	if err := DataRate(6).Validate(); err == nil {
		t.Fatalf("expected error for out-of-range data rate")
	}
}

func TestValidateObservation(t *testing.T) {
	obs := make([]byte, DR0.Slots())
	if err := ValidateObservation(obs, DR0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	short := make([]byte, DR0.Slots()-1)
	if err := ValidateObservation(short, DR0); err == nil {
		t.Fatalf("expected length mismatch error")
	}

	if err := ValidateObservation(obs, DataRate(9)); err == nil {
		t.Fatalf("expected invalid data rate error")
	}
}
