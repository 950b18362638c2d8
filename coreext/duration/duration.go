package duration

import (
	"fmt"
	"strings"
	"time"

	"github.com/rofleksey/refl"
	"github.com/rofleksey/refl/internal"
)

// DefaultFormat is the format used by duration when none is given.
const DefaultFormat = "%Y years %d days %H:%M:%S"

func init() {
	internal.Register(initDuration)
}

func initDuration(vm *refl.VM) {
	vm.SetFunction("duration", duration)
	vm.SetFunction("seconds", seconds)
}

// Format formats d. %Y is replaced with whole years of 365 days, %y with the
// same padded to four digits, %d with days within the year, %H, %M with
// hours and minutes, and %S with fractional seconds.
func Format(d time.Duration, format string) string {
	// There's no way to escape % characters, and years and days are kinda
	// nonsense, but they're easy to program.
	const (
		year = 365 * 24 * time.Hour
		day  = 24 * time.Hour
	)
	rep := strings.NewReplacer(
		"%Y", fmt.Sprintf("%d", d/year),
		"%y", fmt.Sprintf("%04d", d/year),
		"%d", fmt.Sprintf("%02d", d%year/day),
		"%H", fmt.Sprintf("%02d", d%day/time.Hour),
		"%M", fmt.Sprintf("%02d", d%time.Hour/time.Minute),
		"%S", fmt.Sprintf("%.6f", float64(d%time.Minute)/float64(time.Second)))
	return rep.Replace(format)
}

// duration is a builtin.
//
// duration formats a number of seconds as a duration. The optional second
// argument is the format, by default "%Y years %d days %H:%M:%S".
func duration(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	s, err := call.NumberArgAt(0)
	if err != nil {
		return refl.Nil, refl.NoStop, fmt.Errorf("duration: %w", err)
	}
	format := DefaultFormat
	if len(call.Args) > 1 {
		f, ok := call.Args[1].Str()
		if !ok {
			return refl.Nil, refl.NoStop, fmt.Errorf("duration: argument 1 must be a string, not %s", call.Args[1].Kind())
		}
		format = f
	}
	d := time.Duration(s * float64(time.Second))
	return refl.String(Format(d, format)), refl.NoStop, nil
}

// seconds is a builtin.
//
// seconds parses a Go duration string such as "1h30m" and returns the number
// of seconds it represents. A string which is not a duration gives nil.
func seconds(vm *refl.VM, call *refl.Call) (refl.Value, refl.Stop, error) {
	str, ok := call.ArgAt(0).Str()
	if !ok {
		return refl.Nil, refl.NoStop, fmt.Errorf("seconds: argument 0 must be a string, not %s", call.ArgAt(0).Kind())
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		return refl.Nil, refl.NoStop, nil
	}
	return refl.Number(d.Seconds()), refl.NoStop, nil
}
