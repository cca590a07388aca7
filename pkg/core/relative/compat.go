package relative

// Platform levels at which relative layout behaviour changed.
const (
	levelJellyBeanMR1 = 17
	levelJellyBeanMR2 = 18
	levelKitKat       = 19

	// CurrentPlatformLevel is the level documents default to.
	CurrentPlatformLevel = 34
)

// Compat selects legacy behaviours kept for layouts authored against older
// platform levels. The zero value is the current behaviour.
type Compat struct {
	// LegacyRules resolves start/end rules without regard to direction and
	// lets left/right rules win.
	LegacyRules bool
	// AllowBrokenMeasureSpecs measures children of an unbounded container
	// through the bounded branch table using the container's negative size.
	AllowBrokenMeasureSpecs bool
	// MeasureVerticalIgnoringPaddingMargin keeps the container's vertical
	// padding and the child's vertical margins in the height bound used
	// during the horizontal pass.
	MeasureVerticalIgnoringPaddingMargin bool
	// WrapIgnoresMargins leaves the far-edge margin of children out of a
	// wrap-content container's size.
	WrapIgnoresMargins bool
}

// CompatForLevel returns the behaviour a layout targeting the given platform
// level gets.
func CompatForLevel(level int) Compat {
	return Compat{
		LegacyRules:                          level < levelJellyBeanMR1,
		AllowBrokenMeasureSpecs:              level <= levelJellyBeanMR1,
		MeasureVerticalIgnoringPaddingMargin: level < levelJellyBeanMR2,
		WrapIgnoresMargins:                   level < levelKitKat,
	}
}
