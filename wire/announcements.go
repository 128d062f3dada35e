package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"

	"github.com/avlund/lnfeat/features"
)

// NodeAnnouncement advertises a node's presence and its node-context feature
// vector to the gossip network.
type NodeAnnouncement struct {
	Signature [64]byte
	Features  features.NodeFeatures
	Timestamp uint32
	NodeID    [33]byte
	RGBColor  [3]byte
	Alias     [32]byte
}

func (nMsg *NodeAnnouncement) ToMessage() *Message {
	var buf bytes.Buffer
	buf.Write(nMsg.Signature[:])
	nMsg.Features.Encode(&buf) //nolint:errcheck

	var timestamp [4]byte
	binary.BigEndian.PutUint32(timestamp[:], nMsg.Timestamp)
	buf.Write(timestamp[:])

	buf.Write(nMsg.NodeID[:])
	buf.Write(nMsg.RGBColor[:])
	buf.Write(nMsg.Alias[:])

	return &Message{
		Type:    MsgNodeAnnouncement,
		Payload: buf.Bytes(),
	}
}

func ToNodeAnnouncement(msg *Message) (*NodeAnnouncement, error) {
	if msg == nil || msg.Type != MsgNodeAnnouncement {
		return nil, errors.New("cant convert to NodeAnnouncement")
	}

	r := bytes.NewReader(msg.Payload)
	nMsg := NodeAnnouncement{}

	if _, err := io.ReadFull(r, nMsg.Signature[:]); err != nil {
		return nil, err
	}

	nodeFeatures, err := features.DecodeNodeFeatures(r)
	if err != nil {
		return nil, err
	}
	nMsg.Features = nodeFeatures

	var timestamp [4]byte
	if _, err := io.ReadFull(r, timestamp[:]); err != nil {
		return nil, err
	}
	nMsg.Timestamp = binary.BigEndian.Uint32(timestamp[:])

	if _, err := io.ReadFull(r, nMsg.NodeID[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, nMsg.RGBColor[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, nMsg.Alias[:]); err != nil {
		return nil, err
	}

	return &nMsg, nil
}

// ChannelAnnouncement advertises a channel between two nodes along with its
// channel-context feature vector.
type ChannelAnnouncement struct {
	Features       features.ChannelFeatures
	ChainHash      [32]byte
	ShortChannelID uint64
	NodeID1        [33]byte
	NodeID2        [33]byte
}

func (cMsg *ChannelAnnouncement) ToMessage() *Message {
	var buf bytes.Buffer
	cMsg.Features.Encode(&buf) //nolint:errcheck
	buf.Write(cMsg.ChainHash[:])

	var scid [8]byte
	binary.BigEndian.PutUint64(scid[:], cMsg.ShortChannelID)
	buf.Write(scid[:])

	buf.Write(cMsg.NodeID1[:])
	buf.Write(cMsg.NodeID2[:])

	return &Message{
		Type:    MsgChannelAnnouncement,
		Payload: buf.Bytes(),
	}
}

func ToChannelAnnouncement(msg *Message) (*ChannelAnnouncement, error) {
	if msg == nil || msg.Type != MsgChannelAnnouncement {
		return nil, errors.New("cant convert to ChannelAnnouncement")
	}

	r := bytes.NewReader(msg.Payload)
	cMsg := ChannelAnnouncement{}

	channelFeatures, err := features.DecodeChannelFeatures(r)
	if err != nil {
		return nil, err
	}
	cMsg.Features = channelFeatures

	if _, err := io.ReadFull(r, cMsg.ChainHash[:]); err != nil {
		return nil, err
	}

	var scid [8]byte
	if _, err := io.ReadFull(r, scid[:]); err != nil {
		return nil, err
	}
	cMsg.ShortChannelID = binary.BigEndian.Uint64(scid[:])

	if _, err := io.ReadFull(r, cMsg.NodeID1[:]); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(r, cMsg.NodeID2[:]); err != nil {
		return nil, err
	}

	return &cMsg, nil
}
