package format

import "regexp"

// Matcher is a pure predicate over a candidate tracking ID, backed by a
// compiled regular expression. Matchers are stateless and safe to share
// between concurrent lookups.
type Matcher struct {
	re *regexp.Regexp
}

// New compiles pattern into a Matcher. Patterns are fixed at startup, so an
// invalid one panics instead of returning an error.
func New(pattern string) Matcher {
	return Matcher{re: regexp.MustCompile(pattern)}
}

// Accepts reports whether candidate matches this format.
func (m Matcher) Accepts(candidate string) bool {
	return m.re.MatchString(candidate)
}

// Generic formats shared across carriers. Several couriers issue plain
// digit-count tracking numbers, so these deliberately overlap; disambiguation
// happens at the carrier-detection layer, not here.
var (
	Digits10 = New(`^\d{10}$`)
	Digits11 = New(`^\d{11}$`)
	Digits12 = New(`^\d{12}$`)
	Digits14 = New(`^\d{14}$`)
	Digits16 = New(`^\d{16}$`)
	Digits18 = New(`^\d{18}$`)
	Digits20 = New(`^\d{20}$`)

	// UPU is the S10 international format, e.g. "CB123456789DE".
	// EMS numbers use it too.
	UPU = New(`^[A-Z]{2}\d{9}[A-Z]{2}$`)
)

// Any reports whether candidate is accepted by at least one matcher.
func Any(candidate string, matchers ...Matcher) bool {
	for _, m := range matchers {
		if m.Accepts(candidate) {
			return true
		}
	}
	return false
}
