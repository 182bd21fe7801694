package blfshot

type config struct {
	limits        Limits
	strictLengths bool
	snapshotComp  Compression
}

func defaultConfig() config {
	return config{limits: defaultLimits(), snapshotComp: CompZSTD}
}

type Option func(*config)

func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithStrictLengths makes LoadImage reject containers whose redundant size
// fields at 0x10C and 0x144 disagree with the one at 0x2B4.
func WithStrictLengths(v bool) Option {
	return func(c *config) { c.strictLengths = v }
}

// WithSnapshotCompression selects the codec used by Container.Snapshot.
func WithSnapshotCompression(comp Compression) Option {
	return func(c *config) { c.snapshotComp = comp }
}
