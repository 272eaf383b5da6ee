package solidity

import (
	"strconv"
	"strings"
)

// Pragma is a parsed "pragma solidity" version requirement.
//
// Design decision: We reduce the requirement to a guaranteed lower bound
// rather than modeling full semver ranges because:
// 1. Version-gated rules only ask "is every allowed compiler at least X"
// 2. Upper bounds never enable a rule, they only disable compilation
// 3. A conservative bound means a mis-parse suppresses findings instead of
//    inventing them
type Pragma struct {
	// Raw is the requirement as written, e.g. "^0.8.19" or ">=0.7.0 <0.9.0".
	Raw string

	// Pos is the location of the pragma directive.
	Pos Position

	// lower is the guaranteed minimum version across all alternatives,
	// nil when the requirement could not be parsed.
	lower *Version
}

// Version is a Solidity compiler version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// Compare returns -1, 0, or 1 as v is less than, equal to, or greater
// than other.
func (v Version) Compare(other Version) int {
	if v.Major != other.Major {
		return compareInt(v.Major, other.Major)
	}
	if v.Minor != other.Minor {
		return compareInt(v.Minor, other.Minor)
	}
	return compareInt(v.Patch, other.Patch)
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders the version in dotted form.
func (v Version) String() string {
	return strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor) + "." + strconv.Itoa(v.Patch)
}

// ParsePragma parses a solidity version requirement. It never fails: a
// requirement it cannot understand produces a Pragma with no guaranteed
// bound, which version-gated rules treat as "unknown, stay quiet".
func ParsePragma(raw string, pos Position) *Pragma {
	p := &Pragma{Raw: strings.TrimSpace(raw), Pos: pos}

	// Alternatives joined by || are satisfied by any branch, so the
	// guaranteed bound is the weakest branch bound.
	var lowest *Version
	for _, alt := range strings.Split(p.Raw, "||") {
		bound, ok := parseConjunction(alt)
		if !ok {
			return p
		}
		if lowest == nil || bound.Compare(*lowest) < 0 {
			lowest = &bound
		}
	}
	p.lower = lowest
	return p
}

// parseConjunction extracts the lower bound of a space-separated
// constraint conjunction like ">=0.7.0 <0.9.0".
func parseConjunction(constraint string) (Version, bool) {
	fields := tokenizeConstraint(constraint)
	if len(fields) == 0 {
		return Version{}, false
	}

	var bound *Version
	for _, field := range fields {
		op, ver := splitConstraintOp(field)
		switch op {
		case "<", "<=":
			// Upper bounds do not raise the guaranteed minimum.
			continue
		}
		v, ok := parseVersion(ver)
		if !ok {
			return Version{}, false
		}
		if bound == nil || v.Compare(*bound) > 0 {
			bound = &v
		}
	}
	if bound == nil {
		// Only upper bounds present: any old compiler is allowed.
		return Version{}, true
	}
	return *bound, true
}

// tokenizeConstraint splits a constraint string into operator-version
// fields. Whitespace is irrelevant: "^ 0.8.0", "^0.8.0", and
// ">=0.7.0<0.9.0" all tokenize the same way.
func tokenizeConstraint(constraint string) []string {
	compact := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, constraint)

	var fields []string
	i := 0
	for i < len(compact) {
		start := i
		for i < len(compact) && isConstraintOp(compact[i]) {
			i++
		}
		for i < len(compact) && (compact[i] == '.' || (compact[i] >= '0' && compact[i] <= '9')) {
			i++
		}
		if i == start {
			// Unrecognized character: the requirement is not a plain
			// version range.
			return nil
		}
		fields = append(fields, compact[start:i])
	}
	return fields
}

func isConstraintOp(c byte) bool {
	return c == '<' || c == '>' || c == '^' || c == '~' || c == '='
}

// splitConstraintOp splits "^0.8.0" into its operator and version parts.
func splitConstraintOp(field string) (op, version string) {
	for i := 0; i < len(field); i++ {
		c := field[i]
		if c == '^' || c == '~' || c == '<' || c == '>' || c == '=' {
			continue
		}
		return field[:i], field[i:]
	}
	return field, ""
}

// parseVersion parses "0.8.19" or "0.8" into a Version.
func parseVersion(s string) (Version, bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 || len(parts) > 3 {
		return Version{}, false
	}
	var nums [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return Version{}, false
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, true
}

// GuaranteesAtLeast reports whether every compiler version the pragma
// allows is at least the given version. False when the requirement could
// not be parsed.
func (p *Pragma) GuaranteesAtLeast(major, minor, patch int) bool {
	if p == nil || p.lower == nil {
		return false
	}
	want := Version{Major: major, Minor: minor, Patch: patch}
	return p.lower.Compare(want) >= 0
}

// LowerBound returns the guaranteed minimum version and whether one is
// known.
func (p *Pragma) LowerBound() (Version, bool) {
	if p == nil || p.lower == nil {
		return Version{}, false
	}
	return *p.lower, true
}
