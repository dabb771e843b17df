package framework

import (
	"encoding/json"
	"fmt"
)

// Address is a structural locator identifying exactly one test within a
// suite: the spec's index, the path of child-topic indices from that spec's
// root, and the test's index among the addressed topic's direct tests.
//
// The JSON shape ({"spec":0,"topic":[1,0],"test":2}) is what a hosting
// harness passes back as a query parameter to re-invoke one test in
// isolation.
type Address struct {
	Spec  int   `json:"spec"`
	Topic []int `json:"topic"`
	Test  int   `json:"test"`
}

// Equal reports whether two addresses identify the same position: all three
// components must match.
func (a Address) Equal(other Address) bool {
	if a.Spec != other.Spec || a.Test != other.Test || len(a.Topic) != len(other.Topic) {
		return false
	}
	for i, index := range a.Topic {
		if other.Topic[i] != index {
			return false
		}
	}
	return true
}

// String renders the address in its serialized query-parameter form.
func (a Address) String() string {
	data, _ := json.Marshal(a)
	return string(data)
}

// ParseAddress parses a serialized address. A value that does not parse is a
// fatal configuration error for the caller; unlike an out-of-range address,
// it is never treated as a silent miss.
func ParseAddress(serialized string) (Address, error) {
	var a Address
	if err := json.Unmarshal([]byte(serialized), &a); err != nil {
		return Address{}, fmt.Errorf("malformed test address %q: %w", serialized, err)
	}
	return a, nil
}
