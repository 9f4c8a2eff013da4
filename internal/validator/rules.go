package validator

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	statusMin = 10
	statusMax = 3600
)

// IntRange checks that each named property, when present, is an integer
// within [lo, hi]. Names are checked in order and the first failure is
// returned. Unparsable values get the same message as out-of-range ones.
func IntRange(lo, hi int, names ...string) Validator {
	return Func(func(props Properties) *ValidationError {
		for _, name := range names {
			raw, ok := props[name]
			if !ok {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || n < lo || n > hi {
				return &ValidationError{
					PropertyName: name,
					Message: fmt.Sprintf("The property '%s' must be an integer with value >= %d and <= %d",
						name, lo, hi),
				}
			}
		}
		return nil
	})
}

// LsbRuntimeStatus validates status_interval and status_timeout of an
// lsb-runtime item.
func LsbRuntimeStatus() Validator {
	return IntRange(statusMin, statusMax, "status_interval", "status_timeout")
}

// CmwClusterNetworks validates the TIPC network settings of a cmw-cluster
// item: internal_network must be a single name and tipc_networks must not
// name the same network twice.
func CmwClusterNetworks() Validator {
	return Func(func(props Properties) *ValidationError {
		hbNets := props["tipc_networks"]
		mgmtNet := props["internal_network"]
		if hbNets == "" || mgmtNet == "" {
			return nil
		}

		if len(strings.Split(mgmtNet, ",")) > 1 {
			return &ValidationError{
				PropertyName: "internal_network",
				Message:      "TIPC internal link should not be a list",
			}
		}

		seen := make(map[string]int)
		for _, net := range strings.Split(hbNets, ",") {
			seen[net]++
		}
		for _, count := range seen {
			if count > 1 {
				return &ValidationError{
					PropertyName: "tipc_networks",
					Message:      "Cannot create more than one TIPC link for the same network",
				}
			}
		}
		return nil
	})
}
