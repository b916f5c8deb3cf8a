package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskForOccupancy(t *testing.T) {
	for v := Variant(0); v < VariantCount; v++ {
		for rot := 0; rot < RotationCount; rot++ {
			mask := MaskFor(v, rot)
			occupied := 0
			for _, row := range mask {
				for _, cell := range row {
					if cell == 0 {
						continue
					}
					occupied++
					assert.Equal(t, v.CellValue(), cell, "variant %s rotation %d carries wrong value", v, rot)
				}
			}
			assert.Equal(t, PieceSize, occupied, "variant %s rotation %d", v, rot)
		}
	}
}

func TestSquareRotationsIdentical(t *testing.T) {
	base := MaskFor(VariantO, 0)
	for rot := 1; rot < RotationCount; rot++ {
		assert.Equal(t, base, MaskFor(VariantO, rot), "rotation %d", rot)
	}
}

func TestOtherVariantsRotate(t *testing.T) {
	for v := Variant(0); v < VariantCount; v++ {
		if v == VariantO {
			continue
		}
		assert.NotEqual(t, MaskFor(v, 0), MaskFor(v, 1), "variant %s", v)
	}
}

func TestMaskForOutOfRangePanics(t *testing.T) {
	assert.Panics(t, func() { MaskFor(VariantT, RotationCount) })
	assert.Panics(t, func() { MaskFor(Variant(VariantCount), 0) })
}

func TestVariantForCell(t *testing.T) {
	tests := []struct {
		value uint8
		want  Variant
		ok    bool
	}{
		{0, 0, false},
		{1, VariantI, true},
		{2, VariantO, true},
		{7, VariantL, true},
		{8, 0, false},
	}

	for _, tc := range tests {
		v, ok := VariantForCell(tc.value)
		assert.Equal(t, tc.ok, ok, "value %d", tc.value)
		if tc.ok {
			assert.Equal(t, tc.want, v, "value %d", tc.value)
		}
	}
}

func TestVariantString(t *testing.T) {
	names := ""
	for v := Variant(0); v < VariantCount; v++ {
		names += v.String()
	}
	assert.Equal(t, "IOTSZJL", names)
	assert.Equal(t, "?", Variant(42).String())
}
