// Package config loads the node's feature advertisement policy.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/avlund/lnfeat/features"
)

// Policy controls which optional capabilities the node advertises to peers
// and in its node_announcement.
type Policy struct {
	DataLossProtect       bool
	InitialRoutingSync    bool
	UpfrontShutdownScript bool
	VariableLengthOnion   bool
	PaymentSecret         bool
	BasicMPP              bool
}

// DefaultPolicy advertises every capability the implementation knows.
func DefaultPolicy() Policy {
	return Policy{
		DataLossProtect:       true,
		InitialRoutingSync:    true,
		UpfrontShutdownScript: true,
		VariableLengthOnion:   true,
		PaymentSecret:         true,
		BasicMPP:              true,
	}
}

type filePolicy struct {
	DataLossProtect       bool `toml:"data_loss_protect"`
	InitialRoutingSync    bool `toml:"initial_routing_sync"`
	UpfrontShutdownScript bool `toml:"upfront_shutdown_script"`
	VariableLengthOnion   bool `toml:"var_onion_optin"`
	PaymentSecret         bool `toml:"payment_secret"`
	BasicMPP              bool `toml:"basic_mpp"`
}

// LoadPolicy overlays settings from a TOML file onto the defaults. Keys left
// out of the file keep their default value.
func LoadPolicy(path string) (Policy, error) {
	cfg := DefaultPolicy()

	var raw filePolicy
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Policy{}, fmt.Errorf("load feature policy: %w", err)
	}

	if meta.IsDefined("data_loss_protect") {
		cfg.DataLossProtect = raw.DataLossProtect
	}
	if meta.IsDefined("initial_routing_sync") {
		cfg.InitialRoutingSync = raw.InitialRoutingSync
	}
	if meta.IsDefined("upfront_shutdown_script") {
		cfg.UpfrontShutdownScript = raw.UpfrontShutdownScript
	}
	if meta.IsDefined("var_onion_optin") {
		cfg.VariableLengthOnion = raw.VariableLengthOnion
	}
	if meta.IsDefined("payment_secret") {
		cfg.PaymentSecret = raw.PaymentSecret
	}
	if meta.IsDefined("basic_mpp") {
		cfg.BasicMPP = raw.BasicMPP
	}

	return cfg, nil
}

// InitFeatures builds the handshake vector the policy allows.
func (p Policy) InitFeatures() features.InitFeatures {
	f := features.EmptyInitFeatures()
	if p.DataLossProtect {
		f.SetDataLossProtect()
	}
	if p.InitialRoutingSync {
		f.SetInitialRoutingSync()
	}
	if p.UpfrontShutdownScript {
		f.SetUpfrontShutdownScript()
	}
	if p.VariableLengthOnion {
		f.SetVariableLengthOnion()
	}
	if p.PaymentSecret {
		f.SetPaymentSecret()
	}
	if p.BasicMPP {
		f.SetBasicMPP()
	}
	return f
}

// NodeFeatures builds the node_announcement vector the policy allows.
// initial_routing_sync has no meaning outside the handshake and is ignored.
func (p Policy) NodeFeatures() features.NodeFeatures {
	f := features.EmptyNodeFeatures()
	if p.DataLossProtect {
		f.SetDataLossProtect()
	}
	if p.UpfrontShutdownScript {
		f.SetUpfrontShutdownScript()
	}
	if p.VariableLengthOnion {
		f.SetVariableLengthOnion()
	}
	if p.PaymentSecret {
		f.SetPaymentSecret()
	}
	if p.BasicMPP {
		f.SetBasicMPP()
	}
	return f
}
