// Package peer dials protocol peers and negotiates feature vectors with them
// over the init message exchange.
package peer

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avlund/lnfeat/features"
	"github.com/avlund/lnfeat/wire"
)

// ErrUnknownRequiredFeatures means the remote set a required bit we do not
// understand, so the connection cannot proceed.
var ErrUnknownRequiredFeatures = errors.New("peer requires unknown features")

type PeerAddr struct {
	IP   net.IP
	Port uint16
}

func (p *PeerAddr) String() string {
	return fmt.Sprintf("%s:%d", p.IP, p.Port)
}

func ParsePeerAddr(addr string) (PeerAddr, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return PeerAddr{}, err
	}

	return PeerAddr{IP: tcpAddr.IP, Port: uint16(tcpAddr.Port)}, nil
}

type Peer struct {
	Con    net.Conn
	Addr   PeerAddr
	Local  features.InitFeatures
	Remote features.InitFeatures
}

func (p *Peer) SendMessage(msg *wire.Message) error {
	_, err := p.Con.Write(msg.Serialize())
	return err
}

func (p *Peer) ReceiveMessage() (*wire.Message, error) {
	return wire.ReadMessage(p.Con)
}

func (p *Peer) Close() {
	p.Con.Close() //nolint:errcheck
}

// RemoteNodeFeatures projects the remote init vector into the
// node-announcement context.
func (p *Peer) RemoteNodeFeatures() features.NodeFeatures {
	return features.NodeFeaturesFromInit(p.Remote)
}

// Handshake sends our init message and validates the remote's. The remote's
// legacy global field and features field are merged into one vector. An
// unknown required bit on the remote side aborts the connection; unknown
// optional bits are tolerated and only logged.
func Handshake(con net.Conn, local features.InitFeatures) (features.InitFeatures, error) {
	iMsg := wire.NewInit(local)
	if _, err := con.Write(iMsg.ToMessage().Serialize()); err != nil {
		return features.InitFeatures{}, fmt.Errorf("init send error: %w", err)
	}

	msg, err := wire.ReadMessage(con)
	if err != nil {
		return features.InitFeatures{}, fmt.Errorf("init receive error: %w", err)
	}

	remoteInit, err := wire.ToInit(msg)
	if err != nil {
		return features.InitFeatures{}, err
	}

	remote := remoteInit.GlobalFeatures.Or(remoteInit.Features)
	if remote.RequiresUnknownBits() {
		log.Warn().
			Str("addr", con.RemoteAddr().String()).
			Stringer("features", remote).
			Msg("peer requires unknown feature bits")
		return features.InitFeatures{}, ErrUnknownRequiredFeatures
	}

	if remote.SupportsUnknownBits() {
		log.Debug().
			Str("addr", con.RemoteAddr().String()).
			Stringer("features", remote).
			Msg("peer supports unknown optional feature bits")
	}

	log.Info().
		Str("addr", con.RemoteAddr().String()).
		Bool("data_loss_protect", remote.SupportsDataLossProtect()).
		Bool("initial_routing_sync", remote.InitialRoutingSync()).
		Bool("upfront_shutdown_script", remote.SupportsUpfrontShutdownScript()).
		Bool("var_onion_optin", remote.SupportsVariableLengthOnion()).
		Bool("payment_secret", remote.SupportsPaymentSecret()).
		Bool("basic_mpp", remote.SupportsBasicMPP()).
		Msg("feature negotiation complete")

	return remote, nil
}

// Connect dials a peer and performs the init exchange within timeout.
func Connect(addr PeerAddr, local features.InitFeatures, timeout time.Duration) (*Peer, error) {
	deadline := time.Now().Add(timeout)
	con, err := net.DialTimeout("tcp", addr.String(), timeout)
	if err != nil {
		return nil, err
	}
	if err := con.SetDeadline(deadline); err != nil {
		con.Close() //nolint:errcheck
		return nil, err
	}

	remote, err := Handshake(con, local)
	if err != nil {
		con.Close() //nolint:errcheck
		return nil, err
	}

	if err := con.SetDeadline(time.Time{}); err != nil {
		con.Close() //nolint:errcheck
		return nil, err
	}

	return &Peer{Con: con, Addr: addr, Local: local, Remote: remote}, nil
}
