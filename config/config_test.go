package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avlund/lnfeat/features"
)

func writePolicyFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "features.toml")
	err := os.WriteFile(path, []byte(contents), 0o600)
	require.NoError(t, err)
	return path
}

func TestDefaultPolicyMatchesKnown(t *testing.T) {
	t.Parallel()
	p := DefaultPolicy()
	require.True(t, p.InitFeatures().Equal(features.KnownInitFeatures()))
	require.True(t, p.NodeFeatures().Equal(features.KnownNodeFeatures()))
}

func TestLoadPolicyOverlay(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	path := writePolicyFile(t, `
initial_routing_sync = false
basic_mpp = false
`)

	p, err := LoadPolicy(path)
	require.NoError(err)

	// Keys absent from the file keep their defaults.
	require.True(p.DataLossProtect)
	require.True(p.PaymentSecret)
	require.False(p.InitialRoutingSync)
	require.False(p.BasicMPP)

	initFeatures := p.InitFeatures()
	require.False(initFeatures.InitialRoutingSync())
	require.False(initFeatures.SupportsBasicMPP())
	require.True(initFeatures.SupportsDataLossProtect())
	require.False(initFeatures.RequiresUnknownBits())
}

func TestLoadPolicyMissingFile(t *testing.T) {
	t.Parallel()
	_, err := LoadPolicy(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoadPolicyMalformed(t *testing.T) {
	t.Parallel()
	path := writePolicyFile(t, "basic_mpp = maybe")
	_, err := LoadPolicy(path)
	require.Error(t, err)
}

func TestPolicyVectorsStayKnown(t *testing.T) {
	t.Parallel()
	// No policy combination can produce unknown bits.
	p := Policy{PaymentSecret: true, BasicMPP: true}
	require.False(t, p.InitFeatures().SupportsUnknownBits())
	require.False(t, p.NodeFeatures().SupportsUnknownBits())
}
