package blfshot

import "math"

type Limits struct {
	MaxImageSize    uint32 // embedded image bytes, never above math.MaxInt32
	MaxSnapshotSize uint64 // raw container bytes inside a snapshot
}

func defaultLimits() Limits {
	return Limits{
		MaxImageSize:    32 << 20, // 32 MiB
		MaxSnapshotSize: 64 << 20, // 64 MiB
	}
}

func (l Limits) withDefaults() Limits {
	d := defaultLimits()
	if l.MaxImageSize == 0 {
		l.MaxImageSize = d.MaxImageSize
	}
	if l.MaxImageSize > math.MaxInt32 {
		l.MaxImageSize = math.MaxInt32
	}
	if l.MaxSnapshotSize == 0 {
		l.MaxSnapshotSize = d.MaxSnapshotSize
	}
	if l.MaxSnapshotSize > math.MaxInt64-1 {
		l.MaxSnapshotSize = math.MaxInt64 - 1
	}
	return l
}
