package date

import (
	"fmt"
	"time"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/internal"

	"gitlab.com/variadico/lctime"
)

// DefaultFormat is the format used by date when none is given.
const DefaultFormat = "%Y-%m-%d %H:%M:%S"

func init() {
	internal.Register(initDate)
}

func initDate(vm *refl.VM) {
	vm.SetFunction("time", now)
	vm.SetFunction("clock", clock)
	vm.SetFunction("date", date)
	vm.SetFunction("parsedate", parseDate)
}

// Seconds converts a time to the number of seconds since 1970-01-01 00:00:00
// UTC.
func Seconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}

// FromSeconds converts a number of seconds since 1970-01-01 00:00:00 UTC to a
// time.
func FromSeconds(s float64) time.Time {
	return time.Unix(0, int64(s*1e9))
}

// now is a builtin.
//
// time returns the current time in seconds since 1970-01-01 00:00:00 UTC.
func now(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	return refl.Number(Seconds(time.Now())), refl.NoStop, nil
}

// clock is a builtin.
//
// clock returns the number of seconds since the VM was created.
func clock(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	dur := time.Since(vm.StartTime)
	return refl.Number(dur.Seconds()), refl.NoStop, nil
}

// date is a builtin.
//
// date formats a time using ANSI C datetime formatting. The first argument is
// the format, by default "%Y-%m-%d %H:%M:%S", and the second is the time in
// seconds, by default now. The named argument utc selects UTC instead of the
// local timezone. See https://godoc.org/github.com/variadico/lctime for the
// full list of supported directives.
func date(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	format := DefaultFormat
	if len(call.Args) > 0 {
		s, ok := call.Args[0].Str()
		if !ok {
			return refl.Nil, refl.NoStop, fmt.Errorf("date: argument 0 must be a string, not %s", call.Args[0].Kind())
		}
		format = s
	}
	d := time.Now()
	if len(call.Args) > 1 {
		s, err := call.NumberArgAt(1)
		if err != nil {
			return refl.Nil, refl.NoStop, fmt.Errorf("date: %w", err)
		}
		d = FromSeconds(s)
	}
	if utc, ok := call.NamedArg("utc"); ok && utc.IsTruthy() {
		d = d.UTC()
	}
	return refl.String(lctime.Strftime(format, d)), refl.NoStop, nil
}

// parseDate is a builtin.
//
// parsedate parses a time from its first argument using the format given as
// the second, and returns it in seconds. A string which does not match the
// format gives nil.
func parseDate(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	str, ok := call.ArgAt(0).Str()
	if !ok {
		return refl.Nil, refl.NoStop, fmt.Errorf("parsedate: argument 0 must be a string, not %s", call.ArgAt(0).Kind())
	}
	format := DefaultFormat
	if len(call.Args) > 1 {
		if format, ok = call.Args[1].Str(); !ok {
			return refl.Nil, refl.NoStop, fmt.Errorf("parsedate: argument 1 must be a string, not %s", call.Args[1].Kind())
		}
	}
	longDate := time.Date(2006, time.January, 2, 15, 4, 5, 0, time.FixedZone("MST", -7*60*60))
	longForm := lctime.Strftime(format, longDate)
	v, err := time.Parse(longForm, str)
	if err != nil {
		return refl.Nil, refl.NoStop, nil
	}
	return refl.Number(Seconds(v)), refl.NoStop, nil
}
