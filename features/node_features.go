package features

import (
	"io"
	"slices"
)

// NodeFeatures is the feature vector carried by a node_announcement message.
// It knows the same capabilities as the init context except
// initial_routing_sync, which is only meaningful during the handshake.
type NodeFeatures struct {
	v vector
}

func EmptyNodeFeatures() NodeFeatures {
	return NodeFeatures{}
}

// KnownNodeFeatures returns the vector this implementation advertises in its
// own node_announcement.
func KnownNodeFeatures() NodeFeatures {
	return NodeFeatures{v: vector{flags: slices.Clone(nodeKnownFlags)}}
}

func DecodeNodeFeatures(r io.Reader) (NodeFeatures, error) {
	v, err := decodeVector(r)
	if err != nil {
		return NodeFeatures{}, err
	}
	return NodeFeatures{v: v}, nil
}

// NodeFeaturesFromInit projects a handshake vector into the node-announcement
// context, keeping only the bits that context recognizes. Bytes beyond the
// node context's known length are dropped.
func NodeFeaturesFromInit(init InitFeatures) NodeFeatures {
	return NodeFeatures{v: withKnownRelevant(init.v, nodeKnownMask)}
}

func (f NodeFeatures) Encode(w io.Writer) error {
	return f.v.encode(w)
}

func (f NodeFeatures) Or(o NodeFeatures) NodeFeatures {
	return NodeFeatures{v: f.v.or(o.v)}
}

func (f NodeFeatures) Clone() NodeFeatures {
	return NodeFeatures{v: f.v.clone()}
}

func (f NodeFeatures) Equal(o NodeFeatures) bool {
	return f.v.equal(o.v)
}

func (f NodeFeatures) ByteCount() int {
	return f.v.byteCount()
}

func (f NodeFeatures) String() string {
	return f.v.String()
}

func (f NodeFeatures) RequiresUnknownBits() bool {
	return f.v.requiresUnknownBits(nodeKnownMask)
}

func (f NodeFeatures) SupportsUnknownBits() bool {
	return f.v.supportsUnknownBits(nodeKnownMask)
}

func (f NodeFeatures) SupportsDataLossProtect() bool {
	return DataLossProtect.Supported(f.v.flags)
}

func (f *NodeFeatures) SetDataLossProtect() {
	f.v.flags = DataLossProtect.SetOptional(f.v.flags)
}

func (f NodeFeatures) SupportsUpfrontShutdownScript() bool {
	return UpfrontShutdownScript.Supported(f.v.flags)
}

func (f *NodeFeatures) SetUpfrontShutdownScript() {
	f.v.flags = UpfrontShutdownScript.SetOptional(f.v.flags)
}

func (f *NodeFeatures) ClearUpfrontShutdownScript() {
	UpfrontShutdownScript.ClearBits(f.v.flags)
}

func (f NodeFeatures) SupportsVariableLengthOnion() bool {
	return VariableLengthOnion.Supported(f.v.flags)
}

func (f *NodeFeatures) SetVariableLengthOnion() {
	f.v.flags = VariableLengthOnion.SetOptional(f.v.flags)
}

func (f NodeFeatures) SupportsPaymentSecret() bool {
	return PaymentSecret.Supported(f.v.flags)
}

func (f *NodeFeatures) SetPaymentSecret() {
	f.v.flags = PaymentSecret.SetOptional(f.v.flags)
}

func (f NodeFeatures) SupportsBasicMPP() bool {
	return BasicMPP.Supported(f.v.flags)
}

func (f *NodeFeatures) SetBasicMPP() {
	f.v.flags = BasicMPP.SetOptional(f.v.flags)
}
