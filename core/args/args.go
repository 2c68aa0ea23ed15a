// Package args reads the process argument vector into named options and
// positional values.
//
// The grammar is deliberately small:
//
//	program [positional ...] [--key[=value] ...]
//
// A token starting with "--" is a named option. Everything after the first
// "=" is its value; without "=" the option is a flag and carries a null
// value. Any other token is positional. There are no short flags, no flag
// clustering and no typed flags.
package args

import (
	"sort"
	"strconv"
	"strings"
)

// Prefix marks a named option token.
const Prefix = "--"

// Value is a single option value. A flag given without "=value" is present
// but not Valid, mirroring sql.NullString.
type Value struct {
	String string
	Valid  bool
}

// Str returns a valid Value holding s.
func Str(s string) Value {
	return Value{String: s, Valid: true}
}

// Null returns the value of a bare flag.
func Null() Value {
	return Value{}
}

// Or returns the string value, or def when the value is null.
func (v Value) Or(def string) string {
	if !v.Valid {
		return def
	}
	return v.String
}

// Options maps option names (without leading dashes) to values.
type Options map[string]Value

// Clone returns a shallow copy of o. A nil receiver yields an empty map.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	for k, v := range o {
		out[k] = v
	}
	return out
}

// Keys returns the option names in sorted order.
func (o Options) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is present, with or without a value.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// String returns the string value of key, or "" when absent or null.
func (o Options) String(key string) string {
	return o[key].String
}

// Bool reports whether key is switched on. A bare flag is on; an explicit
// value is parsed with strconv.ParseBool and anything unparsable is off.
func (o Options) Bool(key string) bool {
	v, ok := o[key]
	if !ok {
		return false
	}
	if !v.Valid {
		return true
	}
	b, err := strconv.ParseBool(v.String)
	return err == nil && b
}

// Parsed holds one parsed argument vector.
type Parsed struct {
	Named      Options
	Positional []string
}

// Parse reads raw, skipping raw[0] (the program name). Repeated named
// options keep the last value. Parse has no hidden state: the same input
// always yields an equal result.
func Parse(raw []string) Parsed {
	p := Parsed{Named: Options{}}

	for i := 1; i < len(raw); i++ {
		tok := raw[i]

		if !strings.HasPrefix(tok, Prefix) {
			p.Positional = append(p.Positional, tok)
			continue
		}

		tok = strings.TrimPrefix(tok, Prefix)
		if key, value, ok := strings.Cut(tok, "="); ok {
			p.Named[key] = Str(value)
		} else {
			p.Named[tok] = Null()
		}
	}

	return p
}

// Options flattens p into a single option map. Positional values are keyed
// by their index ("0", "1", ...) so the first positional is reachable as
// option "0". When a named option already occupies an index key the
// positional value moves to the next free index, so a named key is never
// shadowed by a positional one.
func (p Parsed) Options() Options {
	out := p.Named.Clone()

	next := 0
	for _, v := range p.Positional {
		for out.Has(strconv.Itoa(next)) {
			next++
		}
		out[strconv.Itoa(next)] = Str(v)
		next++
	}

	return out
}

// GetOne returns the value of a single option. ok is false when the option
// was not supplied at all; a supplied bare flag yields ok == true with a
// null Value.
func (p Parsed) GetOne(key string) (Value, bool) {
	v, ok := p.Options()[key]
	return v, ok
}

// GetMany returns the subset of options named by keys. With no keys it
// returns every option.
func (p Parsed) GetMany(keys ...string) Options {
	all := p.Options()
	if len(keys) == 0 {
		return all
	}

	out := Options{}
	for _, k := range keys {
		if v, ok := all[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Filtered is the result of Filter. When exactly one key was requested
// Single is set and Value/Found describe that key; otherwise Values holds
// the matching subset.
type Filtered struct {
	Single bool
	Value  Value
	Found  bool
	Values Options
}

// Filter keeps the historical calling convention where asking for exactly
// one key yields that key's value instead of a one-entry map. Prefer GetOne
// and GetMany in new code.
func (p Parsed) Filter(keys ...string) Filtered {
	if len(keys) == 1 {
		v, ok := p.GetOne(keys[0])
		return Filtered{Single: true, Value: v, Found: ok}
	}
	return Filtered{Values: p.GetMany(keys...)}
}
