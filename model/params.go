package model

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// dateLayout is the string form accepted for date parameters.
const dateLayout = "2006-01-02"

var errNilValue = errors.New("nil value")

// Params holds the named market parameters of one Price call.
type Params map[string]interface{}

// Decoder reads parameters of p into typed destinations. It keeps the first
// error, after which every call is a no-op, and Err reports parameters that
// were never read.
type Decoder struct {
	op   string
	p    Params
	seen map[string]bool
	err  error
}

// Decode starts decoding p on behalf of op.
func (p Params) Decode(op string) *Decoder {
	return &Decoder{op: op, p: p, seen: make(map[string]bool, len(p))}
}

// Float reads a required number.
func (d *Decoder) Float(name string, dst *float64) {
	d.float(name, dst, true)
}

// OptFloat reads a number, leaving dst untouched when name is absent.
func (d *Decoder) OptFloat(name string, dst *float64) {
	d.float(name, dst, false)
}

// Int reads a required integer.
func (d *Decoder) Int(name string, dst *int) {
	d.integer(name, dst, true)
}

// OptInt reads an integer, leaving dst untouched when name is absent.
func (d *Decoder) OptInt(name string, dst *int) {
	d.integer(name, dst, false)
}

// OptUint reads a non-negative integer such as a seed.
func (d *Decoder) OptUint(name string, dst *uint64) {
	var n int
	if !d.integer(name, &n, false) {
		return
	}
	if n < 0 {
		d.err = Domainf(d.op, name, "must be non-negative, got %d", n)
		return
	}
	*dst = uint64(n)
}

// OptBool reads a flag, leaving dst untouched when name is absent.
func (d *Decoder) OptBool(name string, dst *bool) {
	v, ok := d.lookup(name, false)
	if !ok {
		return
	}
	var b bool
	if err := convert(v, &b); err != nil {
		d.err = mismatchf(d.op, name, "must be a bool, got %T", v)
		return
	}
	*dst = b
}

// OptString reads a string option, leaving dst untouched when name is absent.
func (d *Decoder) OptString(name string, dst *string) {
	v, ok := d.lookup(name, false)
	if !ok {
		return
	}
	var str string
	if err := convert(v, &str); err != nil {
		d.err = mismatchf(d.op, name, "must be a string, got %T", v)
		return
	}
	*dst = str
}

// Floats reads a required sequence of numbers.
func (d *Decoder) Floats(name string, dst *[]float64) {
	v, ok := d.lookup(name, true)
	if !ok {
		return
	}
	// a single number is a sequence of one
	if f, isNum := toFloat(v); isNum {
		*dst = []float64{f}
		return
	}
	var out []float64
	if err := convert(v, &out); err != nil {
		d.err = mismatchf(d.op, name, "must be a sequence of numbers, got %T", v)
		return
	}
	*dst = out
}

// Date reads a required date given as time.Time or YYYY-MM-DD.
func (d *Decoder) Date(name string, dst *time.Time) {
	d.date(name, dst, true)
}

// OptDate reads a date, leaving dst untouched when name is absent.
func (d *Decoder) OptDate(name string, dst *time.Time) {
	d.date(name, dst, false)
}

// Err returns the first decoding error, or an invalid-argument error naming
// parameters that no call consumed.
func (d *Decoder) Err() error {
	if d.err != nil {
		return d.err
	}
	var unknown []string
	for name := range d.p {
		if !d.seen[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return Invalidf(d.op, strings.Join(unknown, ","), "unexpected parameter")
	}
	return nil
}

func (d *Decoder) lookup(name string, required bool) (interface{}, bool) {
	if d.err != nil {
		return nil, false
	}
	d.seen[name] = true
	v, ok := d.p[name]
	if !ok && required {
		d.err = Invalidf(d.op, name, "missing required parameter")
	}
	return v, ok
}

func (d *Decoder) float(name string, dst *float64, required bool) {
	v, ok := d.lookup(name, required)
	if !ok {
		return
	}
	f, isNum := toFloat(v)
	if !isNum {
		d.err = mismatchf(d.op, name, "must be a number, got %T", v)
		return
	}
	*dst = f
}

func (d *Decoder) date(name string, dst *time.Time, required bool) {
	v, ok := d.lookup(name, required)
	if !ok {
		return
	}
	var t time.Time
	if err := convert(v, &t); err != nil {
		if _, isString := v.(string); isString {
			d.err = Invalidf(d.op, name, "want YYYY-MM-DD, got %q", v)
			return
		}
		d.err = mismatchf(d.op, name, "must be a date, got %T", v)
		return
	}
	*dst = t
}

func (d *Decoder) integer(name string, dst *int, required bool) bool {
	v, ok := d.lookup(name, required)
	if !ok {
		return false
	}
	f, isNum := toFloat(v)
	if !isNum {
		d.err = mismatchf(d.op, name, "must be an integer, got %T", v)
		return false
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		d.err = mismatchf(d.op, name, "must be an integer, got %v", v)
		return false
	}
	*dst = int(f)
	return true
}

// convert decodes one parameter value into dst. Numbers of any Go kind
// convert to float64; strings convert only to strings and dates.
func convert(v interface{}, dst interface{}) error {
	if v == nil {
		return errNilValue
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeHookFunc(dateLayout),
		Result:     dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(v)
}

// toFloat converts any Go numeric kind to float64.
func toFloat(v interface{}) (float64, bool) {
	var f float64
	if convert(v, &f) != nil {
		return 0, false
	}
	return f, true
}
