package game

import (
	"strconv"
	"strings"
)

// MaxLayers is the amount of collision layers a LayerMask can address.
const MaxLayers = 32

const (
	LayerDefault = iota
	LayerStairs
	LayerClimbable
	LayerWater
	LayerPlatform
)

var layerNames = map[string]int{
	"default":   LayerDefault,
	"stairs":    LayerStairs,
	"climbable": LayerClimbable,
	"water":     LayerWater,
	"platform":  LayerPlatform,
}

// ParseLayer returns the layer with the name passed. Numeric names are accepted for layers
// without a name.
func ParseLayer(name string) (int, bool) {
	if l, ok := layerNames[name]; ok {
		return l, true
	}
	l, err := strconv.Atoi(name)
	if err != nil || l < 0 || l >= MaxLayers {
		return 0, false
	}
	return l, true
}

// LayerMask is a bit set of collision layers.
type LayerMask uint32

// AllLayers is a LayerMask containing every layer.
const AllLayers = LayerMask(^uint32(0))

// MaskOf returns a LayerMask containing the layers passed.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l >= 0 && l < MaxLayers {
			m |= 1 << l
		}
	}
	return m
}

// Contains returns true if the layer is part of the mask.
func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer >= MaxLayers {
		return false
	}
	return m&(1<<layer) != 0
}

// String ...
func (m LayerMask) String() string {
	var layers []string
	for l := 0; l < MaxLayers; l++ {
		if m.Contains(l) {
			layers = append(layers, strconv.Itoa(l))
		}
	}
	return "[" + strings.Join(layers, " ") + "]"
}
