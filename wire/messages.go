// Package wire frames the protocol messages that carry feature vectors.
package wire

import (
	"encoding/binary"
	"errors"
	"io"
)

type msgType uint16

const (
	MsgInit                msgType = 16
	MsgChannelAnnouncement msgType = 256
	MsgNodeAnnouncement    msgType = 257
)

// Message is a framed protocol message: a 2-byte big-endian type followed by
// the type-specific payload. On the stream every message is preceded by a
// 2-byte big-endian length covering the type and payload.
type Message struct {
	Type    msgType
	Payload []byte
}

func (msg *Message) Serialize() []byte {
	length := uint16(len(msg.Payload) + 2)
	buf := make([]byte, int(length)+2)

	binary.BigEndian.PutUint16(buf[0:2], length)
	binary.BigEndian.PutUint16(buf[2:4], uint16(msg.Type))
	copy(buf[4:], msg.Payload)

	return buf
}

func ReadMessage(r io.Reader) (*Message, error) {
	lenBuf := make([]byte, 2)
	if _, err := io.ReadFull(r, lenBuf); err != nil {
		return nil, err
	}

	msgLen := binary.BigEndian.Uint16(lenBuf)
	if msgLen < 2 {
		return nil, errors.New("message too short")
	}

	msgBuf := make([]byte, msgLen)
	if _, err := io.ReadFull(r, msgBuf); err != nil {
		return nil, err
	}

	msg := Message{
		Type: msgType(binary.BigEndian.Uint16(msgBuf[0:2])),
	}
	if msgLen > 2 {
		msg.Payload = msgBuf[2:]
	}
	return &msg, nil
}
