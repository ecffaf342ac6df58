package implinject

import (
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/pboyd/implinject/static"
)

// Capability identifies the mechanism Inject uses.
type Capability int

const (
	Unavailable Capability = iota
	RawMemoryWriteAvailable
	ModifierPatchAvailable
)

func (c Capability) String() string {
	switch c {
	case RawMemoryWriteAvailable:
		return "raw memory write"
	case ModifierPatchAvailable:
		return "modifier patch"
	default:
		return "unavailable"
	}
}

type injector interface {
	inject(f *static.Field, instance any) error
}

type capabilityRecord struct {
	kind     Capability
	injector injector
}

// capability is only replaced by tests.
var capability = sync.OnceValue(probe)

// Mechanism reports which mechanism Inject uses. The first call probes the
// environment.
func Mechanism() Capability {
	return capability().kind
}

func probe() capabilityRecord {
	log := logger()

	mp, mpErr := probeModifierPatch()
	rw, rwErr := probeRawWrite()

	if mpErr != nil {
		log.Debug("implinject: modifier patch unavailable", "error", mpErr)
	}
	if rwErr != nil {
		log.Debug("implinject: raw memory write unavailable", "error", rwErr)
	}

	var rec capabilityRecord
	switch {
	case mpErr == nil:
		rec = capabilityRecord{kind: ModifierPatchAvailable, injector: mp}
	case rwErr == nil:
		rec = capabilityRecord{kind: RawMemoryWriteAvailable, injector: rw}
	}

	log.Debug("implinject: probed environment", "capability", rec.kind.String())
	return rec
}

var logp atomic.Pointer[slog.Logger]

// SetLogger sets the logger for diagnostic messages. A nil logger restores
// the default.
func SetLogger(l *slog.Logger) {
	logp.Store(l)
}

func logger() *slog.Logger {
	if l := logp.Load(); l != nil {
		return l
	}
	return slog.Default()
}
