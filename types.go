package gorecord

// UnknownPolicy controls how supplied names that are not declared keywords are
// handled at construction.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown names with an error.
	UnknownStrip                       // Drop unknown names.
)

// String returns the policy name used in declaration documents and config.
func (p UnknownPolicy) String() string {
	if p == UnknownStrip {
		return "strip"
	}
	return "strict"
}

// ParseUnknownPolicy maps "strict"/"strip" to a policy; anything else is strict.
func ParseUnknownPolicy(s string) UnknownPolicy {
	if s == "strip" {
		return UnknownStrip
	}
	return UnknownStrict
}

// Visibility controls whether a keyword reader is exposed to decomposition.
type Visibility int

const (
	Public    Visibility = iota // Included in Deconstruct/DeconstructKeys.
	Protected                   // Readable by name, hidden from decomposition.
	Private                     // Readable by name, hidden from decomposition.
)

// String returns the lowercase visibility name.
func (v Visibility) String() string {
	switch v {
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "public"
	}
}

// ParseVisibility maps "public"/"protected"/"private" to a Visibility. The
// second result is false for unrecognized input.
func ParseVisibility(s string) (Visibility, bool) {
	switch s {
	case "", "public":
		return Public, true
	case "protected":
		return Protected, true
	case "private":
		return Private, true
	}
	return Public, false
}

// NewOpt bundles per-call construction options.
type NewOpt struct {
	Unknown UnknownPolicy
}

// Values is the set of explicitly supplied keyword values for construction.
type Values map[string]any
