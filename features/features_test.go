package features

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

// setRequireUnknownBit sets bit 22, an even bit no context knows.
func setRequireUnknownBit(v *vector) {
	for len(v.flags) < 3 {
		v.flags = append(v.flags, 0)
	}
	v.flags[2] |= 0x40
}

// clearRequireUnknownBit clears bit 22 and trims trailing zero bytes.
func clearRequireUnknownBit(v *vector) {
	if len(v.flags) >= 3 {
		v.flags[2] &^= 0x40
	}
	for len(v.flags) > 0 && v.flags[len(v.flags)-1] == 0 {
		v.flags = v.flags[:len(v.flags)-1]
	}
}

func TestKnownFeaturesSane(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	require.False(KnownChannelFeatures().RequiresUnknownBits())
	require.False(KnownChannelFeatures().SupportsUnknownBits())
	require.False(KnownInitFeatures().RequiresUnknownBits())
	require.False(KnownInitFeatures().SupportsUnknownBits())
	require.False(KnownNodeFeatures().RequiresUnknownBits())
	require.False(KnownNodeFeatures().SupportsUnknownBits())

	require.True(KnownInitFeatures().SupportsDataLossProtect())
	require.True(KnownNodeFeatures().SupportsDataLossProtect())

	require.True(KnownInitFeatures().SupportsUpfrontShutdownScript())
	require.True(KnownNodeFeatures().SupportsUpfrontShutdownScript())

	require.True(KnownInitFeatures().SupportsVariableLengthOnion())
	require.True(KnownNodeFeatures().SupportsVariableLengthOnion())

	require.True(KnownInitFeatures().SupportsPaymentSecret())
	require.True(KnownNodeFeatures().SupportsPaymentSecret())

	require.True(KnownInitFeatures().SupportsBasicMPP())
	require.True(KnownNodeFeatures().SupportsBasicMPP())

	initFeatures := KnownInitFeatures()
	require.True(initFeatures.InitialRoutingSync())
	initFeatures.ClearInitialRoutingSync()
	require.False(initFeatures.InitialRoutingSync())
}

func TestKnownFlagBytes(t *testing.T) {
	t.Parallel()
	require.Equal(t, []byte{0b00101010, 0b10000010, 0b00000010}, initKnownFlags)
	require.Equal(t, []byte{0b00100010, 0b10000010, 0b00000010}, nodeKnownFlags)
	require.Empty(t, channelKnownFlags)

	require.Equal(t, []byte{0b00111111, 0b11000011, 0b00000110}, initKnownMask)
	require.Equal(t, []byte{0b00110011, 0b11000011, 0b00000110}, nodeKnownMask)
	require.Empty(t, channelKnownMask)
}

func TestSetClearUnknownBit(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	channelFeatures := KnownChannelFeatures()
	setRequireUnknownBit(&channelFeatures.v)
	require.True(channelFeatures.RequiresUnknownBits())
	clearRequireUnknownBit(&channelFeatures.v)
	require.False(channelFeatures.RequiresUnknownBits())

	// Setting then clearing on an empty vector returns to the empty state.
	initFeatures := EmptyInitFeatures()
	setRequireUnknownBit(&initFeatures.v)
	clearRequireUnknownBit(&initFeatures.v)
	require.True(initFeatures.Equal(EmptyInitFeatures()))
	require.Equal(0, initFeatures.ByteCount())
}

func TestUnknownBitParity(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	// Bit 24, even: beyond every known mask, so it is a required unknown.
	evenHigh := InitFeaturesFromWireBytes([]byte{0b00000001, 0, 0, 0})
	require.True(evenHigh.SupportsUnknownBits())
	require.True(evenHigh.RequiresUnknownBits())

	// Bit 25, odd: unknown but merely optional.
	oddHigh := InitFeaturesFromWireBytes([]byte{0b00000010, 0, 0, 0})
	require.True(oddHigh.SupportsUnknownBits())
	require.False(oddHigh.RequiresUnknownBits())
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		features InitFeatures
	}{
		{"empty", EmptyInitFeatures()},
		{"known", KnownInitFeatures()},
		{"unknown high bits", InitFeaturesFromWireBytes([]byte{0xa5, 0, 0, 0x2a, 0x82, 0x02})},
		{"single byte", InitFeaturesFromWireBytes([]byte{0x02})},
	}

	for _, tst := range tests {
		t.Run(tst.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			err := tst.features.Encode(&buf)
			require.NoError(t, err)

			decoded, err := DecodeInitFeatures(&buf)
			require.NoError(t, err)
			require.True(t, decoded.Equal(tst.features))
		})
	}
}

func TestEncodeWireBytes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := KnownInitFeatures().Encode(&buf)
	require.NoError(t, err)

	// Length prefix, then storage bytes swapped back to big-endian.
	require.Equal(t, []byte{0x00, 0x03, 0x02, 0x82, 0x2a}, buf.Bytes())
}

func TestEncodeUpTo13(t *testing.T) {
	t.Parallel()
	features := InitFeaturesFromWireBytes([]byte{0x02, 0x82, 0x02})

	var buf bytes.Buffer
	err := features.EncodeUpTo13(&buf)
	require.NoError(t, err)

	// Two bytes declared, third byte dropped, bits 14-15 masked off.
	require.Equal(t, []byte{0x00, 0x02, 0x02, 0x02}, buf.Bytes())
}

func TestEncodeUpTo13Short(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	err := InitFeaturesFromWireBytes([]byte{0x0a}).EncodeUpTo13(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x01, 0x0a}, buf.Bytes())

	buf.Reset()
	err = EmptyInitFeatures().EncodeUpTo13(&buf)
	require.NoError(t, err)
	require.Equal(t, []byte{0x00, 0x00}, buf.Bytes())
}

func TestDecodeErrorsPropagate(t *testing.T) {
	t.Parallel()
	_, err := DecodeInitFeatures(bytes.NewReader(nil))
	require.ErrorIs(t, err, io.EOF)

	// Length prefix promises more bytes than the stream holds.
	_, err = DecodeInitFeatures(bytes.NewReader([]byte{0x00, 0x05, 0x01}))
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestOr(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	a := InitFeaturesFromWireBytes([]byte{0x01, 0x00, 0x10})
	b := InitFeaturesFromWireBytes([]byte{0x22})

	// Commutative, and the shorter operand is zero-padded.
	require.True(a.Or(b).Equal(b.Or(a)))
	require.True(a.Or(b).Equal(InitFeaturesFromWireBytes([]byte{0x01, 0x00, 0x32})))
	require.Equal(3, a.Or(b).ByteCount())

	// Identity.
	require.True(a.Or(EmptyInitFeatures()).Equal(a))

	// Associative.
	c := KnownInitFeatures()
	require.True(a.Or(b).Or(c).Equal(a.Or(b.Or(c))))
}

func TestNodeFeaturesFromInit(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	initFeatures := KnownInitFeatures()
	require.True(initFeatures.InitialRoutingSync())

	nodeFeatures := NodeFeaturesFromInit(initFeatures)

	// initial_routing_sync is blanked out, everything else survives.
	require.Equal(3, nodeFeatures.ByteCount())
	require.Equal([]byte{0b00100010, 0b10000010, 0b00000010}, nodeFeatures.v.flags)

	reinterpreted := InitFeatures{v: nodeFeatures.v.clone()}
	require.False(reinterpreted.InitialRoutingSync())
}

func TestNodeFeaturesFromInitDropsHighBytes(t *testing.T) {
	t.Parallel()
	// Five wire bytes; the node context only has room for three.
	initFeatures := InitFeaturesFromWireBytes([]byte{0xff, 0xff, 0x02, 0x82, 0x2a})

	nodeFeatures := NodeFeaturesFromInit(initFeatures)
	require.Equal(t, 3, nodeFeatures.ByteCount())
	require.False(t, nodeFeatures.SupportsUnknownBits())
}
