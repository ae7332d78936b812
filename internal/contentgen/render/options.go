package render

// Options carries the layout knobs for the slide-deck renderer. The values
// drive slide count, so they are configuration rather than constants buried
// in the packing code.
type Options struct {
	// DividerMinSections: divider slides appear before sections after the
	// first only when the deck has more than this many sections.
	DividerMinSections int

	// MaxItemsPerSlide bounds how many content items pack onto one slide.
	MaxItemsPerSlide int

	// LongItemChars: an item longer than this gets a slide of its own.
	LongItemChars int

	// MaxKeyPoints bounds bullets on a key-points slide; overflow is
	// silently dropped.
	MaxKeyPoints int

	// MaxCitationsPerSlide bounds citations on the citations slide;
	// overflow is silently dropped.
	MaxCitationsPerSlide int
}

// DefaultOptions mirrors the layout the service has always produced.
func DefaultOptions() Options {
	return Options{
		DividerMinSections:   3,
		MaxItemsPerSlide:     4,
		LongItemChars:        500,
		MaxKeyPoints:         6,
		MaxCitationsPerSlide: 8,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.DividerMinSections <= 0 {
		o.DividerMinSections = d.DividerMinSections
	}
	if o.MaxItemsPerSlide <= 0 {
		o.MaxItemsPerSlide = d.MaxItemsPerSlide
	}
	if o.LongItemChars <= 0 {
		o.LongItemChars = d.LongItemChars
	}
	if o.MaxKeyPoints <= 0 {
		o.MaxKeyPoints = d.MaxKeyPoints
	}
	if o.MaxCitationsPerSlide <= 0 {
		o.MaxCitationsPerSlide = d.MaxCitationsPerSlide
	}
	return o
}
