package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunc(t *testing.T) {
	called := 0
	v := Func(func(props Properties) *ValidationError {
		called++
		if props["name"] == "" {
			return &ValidationError{PropertyName: "name", Message: "name is empty"}
		}
		return nil
	})

	assert.Nil(t, v.Validate(Properties{"name": "x"}))
	err := v.Validate(Properties{})
	require.NotNil(t, err)
	assert.Equal(t, "<name - ValidationError - name is empty>", err.Error())
	assert.Equal(t, 2, called)
}

func TestRun(t *testing.T) {
	props := Properties{
		"tipc_networks":    "hb1,hb1",
		"internal_network": "hb2",
		"status_interval":  "5000",
	}

	errs := Run(props, CmwClusterNetworks(), LsbRuntimeStatus())
	require.Len(t, errs, 2)
	assert.Equal(t, "tipc_networks", errs[0].PropertyName)
	assert.Equal(t, "status_interval", errs[1].PropertyName)

	assert.Empty(t, Run(Properties{}, CmwClusterNetworks(), LsbRuntimeStatus()))
	assert.Empty(t, Run(props))
}

func TestLookup(t *testing.T) {
	v, ok := Lookup(NameLsbRuntimeStatus)
	require.True(t, ok)
	assert.NotNil(t, v.Validate(Properties{"status_interval": "1"}))

	v, ok = Lookup(NameCmwClusterNetworks)
	require.True(t, ok)
	assert.NotNil(t, v.Validate(Properties{"tipc_networks": "a,a", "internal_network": "b"}))

	_, ok = Lookup("no-such-validator")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{NameCmwClusterNetworks, NameLsbRuntimeStatus}, Names())
}
