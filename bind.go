package gorecord

import (
	"fmt"
	"math"
	"reflect"
	"strings"
)

// KeywordOf returns the keyword name for a top-level field of S selected by
// selector, using ResolveStructKey.
// Example: KeywordOf(func(p *Point) *int { return &p.X }) -> "x" for `json:"x"`.
func KeywordOf[S any, F any](selector func(*S) *F) string {
	if selector == nil {
		panic("gorecord.KeywordOf: selector must not be nil")
	}
	var zero S
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rv := reflect.ValueOf(&zero).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				panic("gorecord.KeywordOf: selected field is not exported or disabled")
			}
			return name
		}
	}
	panic("gorecord.KeywordOf: selector must return address of a top-level field")
}

// structFields maps keyword names to field indexes of struct type rt.
func structFields(rt reflect.Type) map[string]int {
	out := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := ResolveStructKey(sf)
		if name == "-" || name == "" {
			continue
		}
		out[name] = i
	}
	return out
}

// Bind projects the public keywords of r onto a new struct T. Keywords
// without a matching struct field are skipped; a value that is neither
// assignable nor convertible to its field is an error.
func Bind[T any](r *Record) (T, error) {
	var zero T
	rt := reflect.TypeOf(zero)
	if rt == nil || rt.Kind() != reflect.Struct {
		return zero, fmt.Errorf("gorecord.Bind: %v is not a struct type", rt)
	}
	rv := reflect.New(rt).Elem()
	for key, idx := range structFields(rt) {
		val, ok := r.DeconstructKeys([]string{key})[key]
		if !ok {
			continue
		}
		fv := rv.Field(idx)
		if val == nil {
			// leave zero value
			continue
		}
		vv := reflect.ValueOf(val)
		if vv.Type().AssignableTo(fv.Type()) {
			fv.Set(vv)
			continue
		}
		cv, ok := convertLossless(vv, fv.Type())
		if !ok {
			return zero, fmt.Errorf("gorecord.Bind: keyword %q of type %s is not assignable to %s", key, vv.Type(), fv.Type())
		}
		fv.Set(cv)
	}
	return rv.Interface().(T), nil
}

type kindFamily uint8

const (
	familyOther kindFamily = iota
	familySigned
	familyUnsigned
	familyFloat
	familyComplex
)

func familyOf(k reflect.Kind) kindFamily {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return familySigned
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return familyUnsigned
	case reflect.Float32, reflect.Float64:
		return familyFloat
	case reflect.Complex64, reflect.Complex128:
		return familyComplex
	}
	return familyOther
}

// convertLossless converts v to t when no information is lost: integers to
// integers that can hold the value, floats to floats, complex to complex, and
// named types to types of the same kind. Everything else (int to string,
// float to int, slice to array) is refused.
func convertLossless(v reflect.Value, t reflect.Type) (reflect.Value, bool) {
	if !v.Type().ConvertibleTo(t) {
		return reflect.Value{}, false
	}
	from, to := familyOf(v.Kind()), familyOf(t.Kind())
	out := reflect.New(t).Elem()
	switch {
	case from == familySigned && to == familySigned:
		if out.OverflowInt(v.Int()) {
			return reflect.Value{}, false
		}
	case from == familySigned && to == familyUnsigned:
		if v.Int() < 0 || out.OverflowUint(uint64(v.Int())) {
			return reflect.Value{}, false
		}
	case from == familyUnsigned && to == familyUnsigned:
		if out.OverflowUint(v.Uint()) {
			return reflect.Value{}, false
		}
	case from == familyUnsigned && to == familySigned:
		if v.Uint() > math.MaxInt64 || out.OverflowInt(int64(v.Uint())) {
			return reflect.Value{}, false
		}
	case from == familyFloat && to == familyFloat:
		if out.OverflowFloat(v.Float()) {
			return reflect.Value{}, false
		}
	case from == familyComplex && to == familyComplex:
		if out.OverflowComplex(v.Complex()) {
			return reflect.Value{}, false
		}
	case from == familyOther && to == familyOther && v.Kind() == t.Kind():
	default:
		return reflect.Value{}, false
	}
	return v.Convert(t), true
}

// ValuesOf turns the exported fields of struct v (or *struct) into Values
// keyed by ResolveStructKey. Zero-valued fields tagged gorecord:",omitzero"
// are left out so their keyword defaults apply.
func ValuesOf(v any) (Values, error) {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("gorecord.ValuesOf: nil pointer")
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("gorecord.ValuesOf: %s is not a struct", rv.Kind())
	}
	rt := rv.Type()
	out := make(Values, rt.NumField())
	for name, idx := range structFields(rt) {
		fv := rv.Field(idx)
		if fv.IsZero() && hasTagOption(rt.Field(idx), "omitzero") {
			continue
		}
		out[name] = fv.Interface()
	}
	return out, nil
}

func hasTagOption(sf reflect.StructField, opt string) bool {
	for _, p := range strings.Split(sf.Tag.Get("gorecord"), ",") {
		if strings.TrimSpace(p) == opt {
			return true
		}
	}
	return false
}
