package gorecord

// Presence records how a keyword obtained its value at construction.
type Presence uint8

const (
	PresenceSupplied       Presence = 1 << iota // Value was passed explicitly.
	PresenceDefaultApplied                      // Value came from an eager or computed default.
)

// PresenceMap maps keyword names to Presence flags.
type PresenceMap map[string]Presence

// Supplied lists keywords whose value was passed explicitly, in the order of
// fields.
func (pm PresenceMap) Supplied(fields []string) []string {
	return pm.filter(fields, PresenceSupplied)
}

// Defaulted lists keywords filled by a default, in the order of fields.
func (pm PresenceMap) Defaulted(fields []string) []string {
	return pm.filter(fields, PresenceDefaultApplied)
}

func (pm PresenceMap) filter(fields []string, flag Presence) []string {
	var out []string
	for _, f := range fields {
		if pm[f]&flag != 0 {
			out = append(out, f)
		}
	}
	return out
}

func (pm PresenceMap) clone() PresenceMap {
	if pm == nil {
		return nil
	}
	out := make(PresenceMap, len(pm))
	for k, v := range pm {
		out[k] = v
	}
	return out
}
