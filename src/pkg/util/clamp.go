package util

import (
	"cmp"

	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Clamp clamps val to the range [min, max] for any ordered type.
func Clamp[T cmp.Ordered](val, min, max T) T {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

/*
ClampSetting clamps a configured value into its allowed range, logging
when the configuration was out of bounds so the adjustment is visible.
*/
func ClampSetting[T cmp.Ordered](name string, val, min, max T) T {
	clamped := Clamp(val, min, max)
	if clamped != val {
		tl.Log(tl.Warning, palette.YellowBold, "%s value %v is %s, using %v", name, val, "out of range", clamped)
	}
	return clamped
}
