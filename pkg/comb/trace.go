package comb

import "sync/atomic"

type RuleKind int

const (
	RuleUnknown RuleKind = iota
	RuleI
	RuleK
	RuleW
	RuleS
	RuleB
	RuleC
	numRules
)

func (k RuleKind) String() string {
	switch k {
	case RuleI:
		return "I"
	case RuleK:
		return "K"
	case RuleW:
		return "W"
	case RuleS:
		return "S"
	case RuleB:
		return "B"
	case RuleC:
		return "C"
	default:
		return "Unknown"
	}
}

type TraceEvent struct {
	Step   uint64
	Rule   RuleKind
	Redex  string
	Result string
}

// EnableTrace starts recording the first capacity rewrites.
func (r *Reducer) EnableTrace(capacity int) {
	if capacity <= 0 {
		capacity = 1
	}
	r.traceBuf = make([]TraceEvent, capacity)
	r.traceCap = uint64(capacity)
	atomic.StoreUint64(&r.traceIdx, 0)
	atomic.StoreUint32(&r.traceOn, 1)
}

func (r *Reducer) DisableTrace() {
	atomic.StoreUint32(&r.traceOn, 0)
}

func (r *Reducer) TraceSnapshot() []TraceEvent {
	if atomic.LoadUint32(&r.traceOn) == 0 {
		return nil
	}
	count := atomic.LoadUint64(&r.traceIdx)
	if count > r.traceCap {
		count = r.traceCap
	}
	res := make([]TraceEvent, count)
	copy(res, r.traceBuf[:count])
	return res
}

func (r *Reducer) recordTrace(rule RuleKind, redex, result Term) {
	if atomic.LoadUint32(&r.traceOn) == 0 || r.traceCap == 0 {
		return
	}
	idx := atomic.AddUint64(&r.traceIdx, 1) - 1
	if idx >= r.traceCap {
		return
	}
	r.traceBuf[idx] = TraceEvent{
		Step:   idx,
		Rule:   rule,
		Redex:  redex.String(),
		Result: result.String(),
	}
}
