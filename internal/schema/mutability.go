package schema

// Mutability is the set of lifecycle points at which a property value may be
// supplied (Create, Write) or observed (Read). The zero value means the
// property carries no annotation, which on the wire is the same as
// Create|Read|Write.
type Mutability uint8

const (
	Create Mutability = 1 << iota
	Read
	Write
)

// Canonical mutability shapes.
const (
	ReadOnly        = Read
	CreateOnly      = Create
	SecretReadWrite = Create | Write
)

// mutabilityTags lists tags in lexicographic order, which is also bit order.
var mutabilityTags = []struct {
	flag Mutability
	tag  string
}{
	{Create, "create"},
	{Read, "read"},
	{Write, "write"},
}

// Has reports whether m contains every flag in other.
func (m Mutability) Has(other Mutability) bool {
	return m&other == other
}

// IsSet reports whether m carries an explicit annotation.
func (m Mutability) IsSet() bool {
	return m != 0
}

// IsSecret reports whether m is one of the secret shapes: a value that can be
// written but never read back.
func (m Mutability) IsSecret() bool {
	return m == CreateOnly || m == SecretReadWrite
}

// Tags returns m's tags in lexicographic order.
func (m Mutability) Tags() []string {
	tags := make([]string, 0, len(mutabilityTags))
	for _, t := range mutabilityTags {
		if m.Has(t.flag) {
			tags = append(tags, t.tag)
		}
	}
	return tags
}

// ParseMutability builds a set from tag names. Unknown tags are reported.
func ParseMutability(tags []string) (Mutability, bool) {
	var m Mutability
	for _, tag := range tags {
		found := false
		for _, t := range mutabilityTags {
			if t.tag == tag {
				m |= t.flag
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	return m, true
}

// SerializeMutability returns the wire annotations for m: x-ms-mutability with
// the sorted tags, readOnly for exactly {read}, and x-ms-secret for the two
// secret shapes. An unset m yields an empty fragment.
func SerializeMutability(m Mutability) map[string]interface{} {
	fragment := make(map[string]interface{})
	if !m.IsSet() {
		return fragment
	}

	fragment["x-ms-mutability"] = m.Tags()
	if m == ReadOnly {
		fragment["readOnly"] = true
	}
	if m.IsSecret() {
		fragment["x-ms-secret"] = true
	}
	return fragment
}
