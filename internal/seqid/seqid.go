package seqid

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	dateLayout = "20060102"

	// PrefixLen is the length of the YYYYMMDD day prefix.
	PrefixLen = len(dateLayout)

	// MinSuffixWidth is the minimum zero-padded width of the counter.
	// Counters past 999 grow to four or more digits.
	MinSuffixWidth = 3
)

// ErrMalformed is returned when a persisted identifier cannot be split into a
// valid day prefix and a positive numeric counter.
var ErrMalformed = errors.New("malformed sequential identifier")

// Kind describes one family of entities sharing a sequence: the field the
// identifier is stored in and the collection holding those entities.
type Kind struct {
	Name       string `json:"name"`
	Field      string `json:"field"`
	Collection string `json:"collection"`
}

// Known kinds.
var (
	User               = Kind{Name: "user", Field: "uid", Collection: "users"}
	Food               = Kind{Name: "food", Field: "fid", Collection: "foods"}
	Order              = Kind{Name: "order", Field: "oid", Collection: "orders"}
	DeliveryPerson     = Kind{Name: "delivery_person", Field: "did", Collection: "delivery_persons"}
	DeliveryAssignment = Kind{Name: "delivery_assignment", Field: "did", Collection: "delivery_assignments"}
	Review             = Kind{Name: "review", Field: "rid", Collection: "reviews"}
	ContactMessage     = Kind{Name: "contact_message", Field: "cid", Collection: "contact_messages"}
)

// Prefix returns the UTC calendar day of t as YYYYMMDD.
func Prefix(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// Format joins a day prefix and counter, padding the counter to MinSuffixWidth.
func Format(prefix string, n int) string {
	return fmt.Sprintf("%s%0*d", prefix, MinSuffixWidth, n)
}

// Parse splits id into its day prefix and counter.
func Parse(id string) (string, int, error) {
	if len(id) < PrefixLen+MinSuffixWidth {
		return "", 0, fmt.Errorf("%w: %q is too short", ErrMalformed, id)
	}

	prefix, suffix := id[:PrefixLen], id[PrefixLen:]
	if _, err := time.Parse(dateLayout, prefix); err != nil {
		return "", 0, fmt.Errorf("%w: %q has an invalid day prefix", ErrMalformed, id)
	}

	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return "", 0, fmt.Errorf("%w: %q has a non-numeric counter", ErrMalformed, id)
		}
	}

	n, err := strconv.Atoi(suffix)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("%w: %q has an invalid counter", ErrMalformed, id)
	}
	return prefix, n, nil
}
