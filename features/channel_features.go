package features

import (
	"io"
	"slices"
)

// ChannelFeatures is the feature vector carried by a channel_announcement
// message. No capabilities are currently defined for this context, so every
// set bit a peer sends here is unknown.
type ChannelFeatures struct {
	v vector
}

func EmptyChannelFeatures() ChannelFeatures {
	return ChannelFeatures{}
}

// KnownChannelFeatures returns the empty vector: nothing is known in the
// channel context.
func KnownChannelFeatures() ChannelFeatures {
	return ChannelFeatures{v: vector{flags: slices.Clone(channelKnownFlags)}}
}

func DecodeChannelFeatures(r io.Reader) (ChannelFeatures, error) {
	v, err := decodeVector(r)
	if err != nil {
		return ChannelFeatures{}, err
	}
	return ChannelFeatures{v: v}, nil
}

func (f ChannelFeatures) Encode(w io.Writer) error {
	return f.v.encode(w)
}

func (f ChannelFeatures) Clone() ChannelFeatures {
	return ChannelFeatures{v: f.v.clone()}
}

func (f ChannelFeatures) Equal(o ChannelFeatures) bool {
	return f.v.equal(o.v)
}

func (f ChannelFeatures) ByteCount() int {
	return f.v.byteCount()
}

func (f ChannelFeatures) String() string {
	return f.v.String()
}

func (f ChannelFeatures) RequiresUnknownBits() bool {
	return f.v.requiresUnknownBits(channelKnownMask)
}

func (f ChannelFeatures) SupportsUnknownBits() bool {
	return f.v.supportsUnknownBits(channelKnownMask)
}
