package led

import (
	"fmt"

	"github.com/frontporchlabs/rooflights/internal/lighting"
)

// IndexMap maps logical pixel index (0 = left edge of the roof, facing
// the house) to physical index in the strip wire run. Built once at
// startup; immutable afterward.
type IndexMap []int

// BuildIndexMap constructs the logical-to-physical mapping for the given
// layout. The left segment is wired from the display's center outward,
// so the mapping reverses it; the right segment follows in wire order, an
// identity mapping offset by the left segment's length. The result is a
// bijection over [0, LEDCount).
func BuildIndexMap(layout lighting.Layout) (IndexMap, error) {
	left := layout.LeftPanels * layout.PanelSize
	right := layout.RightPanels * layout.PanelSize
	if left <= 0 || right < 0 {
		return nil, fmt.Errorf("invalid layout: %d left, %d right pixels", left, right)
	}

	m := make(IndexMap, left+right)
	for i := 0; i < left; i++ {
		m[i] = left - 1 - i
	}
	for i := 0; i < right; i++ {
		m[left+i] = left + i
	}
	return m, nil
}
