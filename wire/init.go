package wire

import (
	"bytes"
	"errors"

	"github.com/avlund/lnfeat/features"
)

// Init is the first message each side sends on a fresh connection. It carries
// two feature vectors: the legacy global field, which never uses bits beyond
// 13 on the wire, and the full local features field.
type Init struct {
	GlobalFeatures features.InitFeatures
	Features       features.InitFeatures
}

func NewInit(local features.InitFeatures) *Init {
	return &Init{
		GlobalFeatures: local.Clone(),
		Features:       local.Clone(),
	}
}

func (iMsg *Init) ToMessage() *Message {
	var buf bytes.Buffer
	// Writing to a bytes.Buffer cannot fail.
	iMsg.GlobalFeatures.EncodeUpTo13(&buf) //nolint:errcheck
	iMsg.Features.Encode(&buf)             //nolint:errcheck

	return &Message{
		Type:    MsgInit,
		Payload: buf.Bytes(),
	}
}

func ToInit(msg *Message) (*Init, error) {
	if msg == nil || msg.Type != MsgInit {
		return nil, errors.New("cant convert to Init")
	}

	r := bytes.NewReader(msg.Payload)
	globalFeatures, err := features.DecodeInitFeatures(r)
	if err != nil {
		return nil, err
	}
	localFeatures, err := features.DecodeInitFeatures(r)
	if err != nil {
		return nil, err
	}

	return &Init{
		GlobalFeatures: globalFeatures,
		Features:       localFeatures,
	}, nil
}
