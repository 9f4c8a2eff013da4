package validator

import "sort"

// Names under which the schema data refers to validators.
const (
	NameLsbRuntimeStatus   = "lsb-runtime-status"
	NameCmwClusterNetworks = "cmw-cluster-networks"
)

var registry = map[string]func() Validator{
	NameLsbRuntimeStatus:   LsbRuntimeStatus,
	NameCmwClusterNetworks: CmwClusterNetworks,
}

// Lookup returns the validator registered under name.
func Lookup(name string) (Validator, bool) {
	build, ok := registry[name]
	if !ok {
		return nil, false
	}
	return build(), true
}

// Names returns the registered validator names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
