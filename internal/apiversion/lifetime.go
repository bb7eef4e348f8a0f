package apiversion

const (
	gaRemovalYears       = 3
	previewRemovalMonths = 6
)

// Lifetime records the release history of a versioned entity. An entity with
// neither a preview nor a GA date is never visible.
type Lifetime struct {
	Preview    *Date
	GA         *Date
	Deprecated *Date
}

// RemovalDate returns the date from which a deprecated entity disappears from
// every channel. Generally available entities are kept for three years after
// deprecation, preview-only entities for six months.
func (l Lifetime) RemovalDate() (Date, bool) {
	if l.Deprecated == nil {
		return Date{}, false
	}

	switch {
	case l.GA != nil:
		return l.Deprecated.AddYears(gaRemovalYears), true
	case l.Preview != nil:
		return l.Deprecated.AddMonths(previewRemovalMonths), true
	default:
		return Date{}, false
	}
}

// IsVisible reports whether the entity appears in the document for target.
func (l Lifetime) IsVisible(target Target) bool {
	if removal, ok := l.RemovalDate(); ok && AtMost(removal, target.Date) {
		return false
	}

	gaVisible := l.GA != nil && AtMost(*l.GA, target.Date)
	if target.Channel == GA {
		return gaVisible
	}
	return gaVisible || (l.Preview != nil && AtMost(*l.Preview, target.Date))
}

// Since returns a lifetime with the given preview and GA dates; either may be nil.
func Since(preview, ga *Date) Lifetime {
	return Lifetime{Preview: preview, GA: ga}
}

// Ptr returns a pointer to d, for building lifetimes inline.
func Ptr(d Date) *Date {
	return &d
}
