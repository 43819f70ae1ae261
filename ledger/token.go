package ledger

import "math/rand/v2"

const hexDigits = "0123456789abcdef"

// TokenSource produces the decorative "hash" stamped on each entry.
type TokenSource func() string

// PlaceholderToken returns "0x" followed by 40 random hex digits. It only
// looks like a transaction hash: it is not derived from any data and proves
// nothing.
func PlaceholderToken() string {
	b := make([]byte, 42)
	b[0], b[1] = '0', 'x'
	for i := 2; i < len(b); i++ {
		b[i] = hexDigits[rand.IntN(len(hexDigits))]
	}
	return string(b)
}
