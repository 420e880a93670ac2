package validation

import "regexp"

const (
	// ResourceIDLength is the length of a header signature in hex.
	ResourceIDLength = 128
	// StateAddressLength is the length of a full state address in hex.
	StateAddressLength = 70
	// MaxCount is the largest page size a client may ask for.
	MaxCount = 1000
)

var (
	resourceIDPattern    = regexp.MustCompile(`^[0-9a-f]{128}$`)
	stateAddressPattern  = regexp.MustCompile(`^[0-9a-f]{70}$`)
	addressPrefixPattern = regexp.MustCompile(`^[0-9a-f]{0,70}$`)
)

// IsResourceID reports whether s is a block, batch or transaction id.
func IsResourceID(s string) bool { return resourceIDPattern.MatchString(s) }

// IsStateAddress reports whether s is a full state address.
func IsStateAddress(s string) bool { return stateAddressPattern.MatchString(s) }

// IsAddressPrefix reports whether s can prefix a state address. The empty
// prefix matches every address.
func IsAddressPrefix(s string) bool { return addressPrefixPattern.MatchString(s) }
