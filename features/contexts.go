package features

// contextDef states which capabilities a message context requires and which it
// treats as optional. The per-context byte tables below are derived from these
// definitions once, at package init.
type contextDef struct {
	required []Feature
	optional []Feature
}

func (d contextDef) byteCount() int {
	n := 0
	for _, f := range d.required {
		n = max(n, f.ByteOffset()+1)
	}
	for _, f := range d.optional {
		n = max(n, f.ByteOffset()+1)
	}
	return n
}

// knownFlags builds the vector this implementation advertises for the
// context: the required mask of every required capability OR'd with the
// optional mask of every optional one.
func (d contextDef) knownFlags() []byte {
	flags := make([]byte, d.byteCount())
	for _, f := range d.required {
		flags[f.ByteOffset()] |= f.RequiredMask()
	}
	for _, f := range d.optional {
		flags[f.ByteOffset()] |= f.OptionalMask()
	}
	return flags
}

// knownMask selects both bit positions of every capability known in the
// context, regardless of whether the context requires it.
func (d contextDef) knownMask() []byte {
	mask := make([]byte, d.byteCount())
	for _, f := range d.required {
		mask[f.ByteOffset()] |= f.RequiredMask() | f.OptionalMask()
	}
	for _, f := range d.optional {
		mask[f.ByteOffset()] |= f.RequiredMask() | f.OptionalMask()
	}
	return mask
}

var (
	initContext = contextDef{
		optional: []Feature{
			DataLossProtect,
			InitialRoutingSync,
			UpfrontShutdownScript,
			VariableLengthOnion,
			PaymentSecret,
			BasicMPP,
		},
	}

	// initial_routing_sync is only meaningful during the handshake.
	nodeContext = contextDef{
		optional: []Feature{
			DataLossProtect,
			UpfrontShutdownScript,
			VariableLengthOnion,
			PaymentSecret,
			BasicMPP,
		},
	}

	channelContext = contextDef{}
)

var (
	initKnownFlags = initContext.knownFlags()
	initKnownMask  = initContext.knownMask()

	nodeKnownFlags = nodeContext.knownFlags()
	nodeKnownMask  = nodeContext.knownMask()

	channelKnownFlags = channelContext.knownFlags()
	channelKnownMask  = channelContext.knownMask()
)
