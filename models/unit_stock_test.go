package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitStockAvailable(t *testing.T) {
	assert.Equal(t, 7, UnitStock{TotalUnits: 10, BookedUnits: 3}.Available())
	assert.Equal(t, 0, UnitStock{TotalUnits: 10, BookedUnits: 10}.Available())

	// oversold counters clamp instead of rendering negative
	assert.Equal(t, 0, UnitStock{TotalUnits: 10, BookedUnits: 12}.Available())
	assert.Equal(t, 0, UnitStock{}.Available())
}
