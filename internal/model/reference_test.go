package model

import "testing"

func TestAuthorityWeight(t *testing.T) {
	tests := []struct {
		typ      InstrumentType
		expected int
	}{
		{InstrumentStatute, 3},
		{InstrumentDecree, 2},
		{InstrumentProvisionalMeasure, 2},
		{InstrumentOrdinance, 1},
		{InstrumentNormativeInstruction, 1},
		{InstrumentResolution, 1},
		{InstrumentType("unknown"), 1},
	}

	for _, tt := range tests {
		if got := tt.typ.AuthorityWeight(); got != tt.expected {
			t.Errorf("AuthorityWeight(%s): expected %d, got %d", tt.typ, tt.expected, got)
		}
	}
}
