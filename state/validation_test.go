package state

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameValidator_Valid(t *testing.T) {
	assert.NoError(t, NameValidator("1"))
	assert.NoError(t, NameValidator("edge_router-1.example.com"))
}

func TestNameValidator_Invalid(t *testing.T) {
	assert.Error(t, NameValidator("1A"))
	assert.Error(t, NameValidator("router name"))
	assert.Error(t, NameValidator(""))
	assert.Error(t, NameValidator("\t"))
	assert.Error(t, NameValidator(strings.Repeat("a", 200)))
}

func TestAddressPrefixValidator(t *testing.T) {
	assert.NoError(t, AddressPrefixValidator("/orders"))
	assert.NoError(t, AddressPrefixValidator("amq.topic"))
	assert.Error(t, AddressPrefixValidator(""))
	assert.Error(t, AddressPrefixValidator("has space"))
	assert.Error(t, AddressPrefixValidator("has\nnewline"))
}

func TestRouterConfigValidator_Valid(t *testing.T) {
	cfg := sampleConfig()
	assert.NoError(t, RouterConfigValidator(&cfg))
}

func TestRouterConfigValidator_BadId(t *testing.T) {
	cfg := RouterCfg{Id: "Bad Id"}
	assert.Error(t, RouterConfigValidator(&cfg))
}

func TestRouterConfigValidator_NegativeDepth(t *testing.T) {
	cfg := RouterCfg{Id: "edge-1", QueueDepth: -1}
	assert.ErrorContains(t, RouterConfigValidator(&cfg), "negative")
}

func TestRouterConfigValidator_BadScope(t *testing.T) {
	cfg := RouterCfg{Id: "edge-1", Addresses: []AddressCfg{
		{Prefix: "/a", Scope: "galactic"},
	}}
	assert.ErrorContains(t, RouterConfigValidator(&cfg), "scope")
}

func TestRouterConfigValidator_BadSemantics(t *testing.T) {
	cfg := RouterCfg{Id: "edge-1", Addresses: []AddressCfg{
		{Prefix: "/a", Distribution: "everywhere"},
	}}
	assert.ErrorContains(t, RouterConfigValidator(&cfg), "semantics")
}

func TestRouterConfigValidator_DuplicateAddress(t *testing.T) {
	cfg := RouterCfg{Id: "edge-1", Addresses: []AddressCfg{
		{Prefix: "/a"},
		{Prefix: "/a", Scope: ScopeLocal},
	}}
	assert.ErrorContains(t, RouterConfigValidator(&cfg), "duplicate")
}

func TestRouterConfigValidator_SameTextDifferentScope(t *testing.T) {
	// identical literal text in different scopes never aliases
	cfg := RouterCfg{Id: "edge-1", Addresses: []AddressCfg{
		{Prefix: "/a"},
		{Prefix: "/a", Scope: ScopeRouter},
	}}
	assert.NoError(t, RouterConfigValidator(&cfg))
}

func TestSemantics_Valid(t *testing.T) {
	assert.NoError(t, Multicast.Valid())
	assert.NoError(t, Closest.Valid())
	assert.NoError(t, Balanced.Valid())
	assert.Error(t, Semantics("everywhere").Valid())
}

func TestScope_Markers(t *testing.T) {
	cases := map[Scope]byte{
		ScopeLocal:       'L',
		ScopeTopological: 'T',
		ScopeArea:        'A',
		ScopeRouter:      'R',
	}
	for scope, want := range cases {
		got, err := scope.Marker()
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := Scope("galactic").Marker()
	assert.Error(t, err)
}
