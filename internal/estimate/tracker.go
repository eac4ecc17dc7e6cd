package estimate

import "github.com/reloadkit/cartgeo/pkg/core"

// Tracker records which fields of one generator call were estimated.
// A zero Tracker is ready to use; it is not safe for concurrent use and is
// not meant to outlive the call that created it.
type Tracker struct {
	fields core.FieldSet
}

// Estimator produces a fallback value for a missing field.
type Estimator func() (float64, bool)

// Resolve prefers the actual value. When it is nil the estimator is consulted
// and, only if it produces a value, field is recorded as estimated.
func (t *Tracker) Resolve(field string, actual *float64, est Estimator) (float64, bool) {
	if actual != nil {
		return *actual, true
	}
	if est == nil {
		return 0, false
	}
	v, ok := est()
	if !ok {
		return 0, false
	}
	t.Mark(field)
	return v, true
}

// Mark records field as estimated.
func (t *Tracker) Mark(field string) {
	t.fields = t.fields.Add(field)
}

// Fields returns a copy of the estimated field names.
func (t *Tracker) Fields() core.FieldSet {
	if len(t.fields) == 0 {
		return core.FieldSet{}
	}
	out := make(core.FieldSet, len(t.fields))
	copy(out, t.fields)
	return out
}

// Completeness grades the fields recorded so far.
func (t *Tracker) Completeness() core.Completeness {
	return Grade(len(t.fields))
}

// Grade maps a count of estimated fields to a completeness tier:
// none is Full, one to three is Basic, more is Insufficient.
func Grade(estimated int) core.Completeness {
	switch {
	case estimated <= 0:
		return core.Full
	case estimated <= 3:
		return core.Basic
	default:
		return core.Insufficient
	}
}
