package subdomains

// choiceKind enumerates the ways a caller can ask for a subdomain.
type choiceKind uint8

const (
	choiceAmbient choiceKind = iota
	choiceExplicit
	choiceNone
	choiceSameGroup
)

// Choice is the subdomain argument of [Config.Select].
// The zero value is [Ambient].
type Choice struct {
	label string
	kind  choiceKind
}

// Ambient selects the subdomain the current request arrived on.
func Ambient() Choice {
	return Choice{kind: choiceAmbient}
}

// Explicit selects the given subdomain regardless of the request.
// An empty label is treated as [SameGroup].
func Explicit(label string) Choice {
	if label == "" {
		return SameGroup()
	}
	return Choice{kind: choiceExplicit, label: label}
}

// NoSubdomain selects the bare domain regardless of the request.
func NoSubdomain() Choice {
	return Choice{kind: choiceNone}
}

// SameGroup selects the request's subdomain when it shares the routing
// configuration of the bare domain, and the configured default otherwise.
func SameGroup() Choice {
	return Choice{kind: choiceSameGroup}
}

// String describes the choice for logs.
func (c Choice) String() string {
	switch c.kind {
	case choiceExplicit:
		return "explicit:" + c.label
	case choiceNone:
		return "none"
	case choiceSameGroup:
		return "same-group"
	default:
		return "ambient"
	}
}
