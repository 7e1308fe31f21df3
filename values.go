package gorecord

import (
	"encoding/binary"
	"math"
	"reflect"

	"github.com/cespare/xxhash/v2"
)

// Freezer is implemented by values that can be made immutable. Record.Freeze
// freezes every attribute value implementing it.
type Freezer interface {
	Freeze()
	Frozen() bool
}

// Duplicator is implemented by values that know how to make a one-level copy
// of themselves. The copy is never frozen.
type Duplicator interface {
	DupValue() any
}

// Cloner is implemented by values that know how to make their deepest copy.
// The copy keeps the frozen state of the source.
type Cloner interface {
	CloneValue() any
}

// Equaler is implemented by values with their own notion of equality.
// Implementations should also implement Hasher so hashes stay consistent.
type Equaler interface {
	EqualValue(other any) bool
}

// Hasher is implemented by values that compute their own hash code.
type Hasher interface {
	HashValue() uint64
}

// DupValue returns a one-level structural copy of v: slices and maps get new
// backing storage with the same elements, pointers to structs get a new struct.
// Everything else (scalars, strings, funcs) is returned as is.
func DupValue(v any) any {
	if v == nil {
		return nil
	}
	if d, ok := v.(Duplicator); ok {
		return d.DupValue()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		reflect.Copy(out, rv)
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), iter.Value())
		}
		return out.Interface()
	case reflect.Pointer:
		if rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return v
		}
		out := reflect.New(rv.Elem().Type())
		out.Elem().Set(rv.Elem())
		return out.Interface()
	}
	return v
}

// CloneValue returns the deepest copy of v available: Cloner values clone
// themselves, containers are copied recursively by reflection.
func CloneValue(v any) any {
	if v == nil {
		return nil
	}
	if c, ok := v.(Cloner); ok {
		return c.CloneValue()
	}
	out := deepCopy(reflect.ValueOf(v), map[uintptr]reflect.Value{})
	return out.Interface()
}

func deepCopy(rv reflect.Value, seen map[uintptr]reflect.Value) reflect.Value {
	if rv.CanInterface() {
		if c, ok := rv.Interface().(Cloner); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
			cv := reflect.ValueOf(c.CloneValue())
			if cv.IsValid() && cv.Type().AssignableTo(rv.Type()) {
				return cv
			}
		}
	}
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			setCopied(out.Index(i), rv.Index(i), seen)
		}
		return out
	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			setCopied(out.Index(i), rv.Index(i), seen)
		}
		return out
	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		if prev, ok := seen[rv.Pointer()]; ok {
			return prev
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		seen[rv.Pointer()] = out
		iter := rv.MapRange()
		for iter.Next() {
			val := deepCopy(iter.Value(), seen)
			out.SetMapIndex(iter.Key(), val)
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return rv
		}
		if prev, ok := seen[rv.Pointer()]; ok {
			return prev
		}
		out := reflect.New(rv.Elem().Type())
		seen[rv.Pointer()] = out
		setCopied(out.Elem(), rv.Elem(), seen)
		return out
	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(deepCopy(rv.Elem(), seen))
		return out
	case reflect.Struct:
		out := reflect.New(rv.Type()).Elem()
		out.Set(rv)
		for i := 0; i < rv.NumField(); i++ {
			if out.Field(i).CanSet() {
				setCopied(out.Field(i), rv.Field(i), seen)
			}
		}
		return out
	}
	return rv
}

func setCopied(dst, src reflect.Value, seen map[uintptr]reflect.Value) {
	cv := deepCopy(src, seen)
	if cv.IsValid() && cv.Type().AssignableTo(dst.Type()) {
		dst.Set(cv)
		return
	}
	dst.Set(src)
}

// FreezeValue freezes v when it implements Freezer. Other values are left
// untouched: plain Go slices and maps have no frozen state.
func FreezeValue(v any) {
	if f, ok := v.(Freezer); ok {
		f.Freeze()
	}
}

// IsFrozen reports whether v implements Freezer and is frozen.
func IsFrozen(v any) bool {
	f, ok := v.(Freezer)
	return ok && f.Frozen()
}

// EqualValues compares two attribute values structurally. Equaler values
// decide for themselves at every level; funcs compare by code pointer.
func EqualValues(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.EqualValue(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return equalReflect(reflect.ValueOf(a), reflect.ValueOf(b), map[visit]bool{})
}

type visit struct {
	a, b uintptr
	typ  reflect.Type
}

func equalReflect(a, b reflect.Value, seen map[visit]bool) bool {
	if !a.IsValid() || !b.IsValid() {
		return a.IsValid() == b.IsValid()
	}
	if a.Type() != b.Type() {
		return false
	}
	if a.CanInterface() {
		if e, ok := a.Interface().(Equaler); ok && !(a.Kind() == reflect.Pointer && a.IsNil()) {
			return e.EqualValue(b.Interface())
		}
	}
	switch a.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		if a.IsNil() != b.IsNil() {
			return false
		}
		if a.IsNil() {
			return true
		}
		// slices cannot form cycles on their own and share backing arrays at
		// different lengths, so only maps and pointers are tracked
		if a.Kind() != reflect.Slice {
			if a.Pointer() == b.Pointer() {
				return true
			}
			v := visit{a: a.Pointer(), b: b.Pointer(), typ: a.Type()}
			if seen[v] {
				return true
			}
			seen[v] = true
		}
	}
	switch a.Kind() {
	case reflect.Bool:
		return a.Bool() == b.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() == b.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() == b.Uint()
	case reflect.Float32, reflect.Float64:
		return a.Float() == b.Float()
	case reflect.Complex64, reflect.Complex128:
		return a.Complex() == b.Complex()
	case reflect.String:
		return a.String() == b.String()
	case reflect.Slice, reflect.Array:
		if a.Len() != b.Len() {
			return false
		}
		for i := 0; i < a.Len(); i++ {
			if !equalReflect(a.Index(i), b.Index(i), seen) {
				return false
			}
		}
		return true
	case reflect.Map:
		if a.Len() != b.Len() {
			return false
		}
		iter := a.MapRange()
		for iter.Next() {
			bv := b.MapIndex(iter.Key())
			if !bv.IsValid() || !equalReflect(iter.Value(), bv, seen) {
				return false
			}
		}
		return true
	case reflect.Pointer:
		return equalReflect(a.Elem(), b.Elem(), seen)
	case reflect.Interface:
		if a.IsNil() || b.IsNil() {
			return a.IsNil() == b.IsNil()
		}
		return equalReflect(a.Elem(), b.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < a.NumField(); i++ {
			if !equalReflect(a.Field(i), b.Field(i), seen) {
				return false
			}
		}
		return true
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return a.Pointer() == b.Pointer()
	}
	return false
}

// HashValue hashes v consistently with EqualValues: values that compare equal
// hash identically.
func HashValue(v any) uint64 {
	d := xxhash.New()
	hashInto(d, v)
	return d.Sum64()
}

func hashInto(d *xxhash.Digest, v any) {
	if v == nil {
		writeUint(d, 0)
		return
	}
	hashReflect(d, reflect.ValueOf(v), map[uintptr]bool{}) // cycles only
}

func writeUint(d *xxhash.Digest, u uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], u)
	_, _ = d.Write(buf[:])
}

func hashReflect(d *xxhash.Digest, rv reflect.Value, seen map[uintptr]bool) {
	if !rv.IsValid() {
		writeUint(d, 0)
		return
	}
	if rv.CanInterface() {
		if h, ok := rv.Interface().(Hasher); ok && !(rv.Kind() == reflect.Pointer && rv.IsNil()) {
			writeUint(d, h.HashValue())
			return
		}
	}
	_, _ = d.WriteString(rv.Type().String())
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			writeUint(d, 1)
		} else {
			writeUint(d, 2)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		writeUint(d, uint64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		writeUint(d, rv.Uint())
	case reflect.Float32, reflect.Float64:
		writeUint(d, floatBits(rv.Float()))
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		writeUint(d, floatBits(real(c)))
		writeUint(d, floatBits(imag(c)))
	case reflect.String:
		_, _ = d.WriteString(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			writeUint(d, 0)
			return
		}
		writeUint(d, uint64(rv.Len()))
		for i := 0; i < rv.Len(); i++ {
			hashReflect(d, rv.Index(i), seen)
		}
	case reflect.Map:
		if rv.IsNil() {
			writeUint(d, 0)
			return
		}
		if seen[rv.Pointer()] {
			return
		}
		seen[rv.Pointer()] = true
		defer delete(seen, rv.Pointer())
		// entries are combined order-independently
		var sum uint64
		iter := rv.MapRange()
		for iter.Next() {
			ed := xxhash.New()
			hashReflect(ed, iter.Key(), seen)
			hashReflect(ed, iter.Value(), seen)
			sum += ed.Sum64()
		}
		writeUint(d, uint64(rv.Len()))
		writeUint(d, sum)
	case reflect.Pointer:
		if rv.IsNil() {
			writeUint(d, 0)
			return
		}
		if seen[rv.Pointer()] {
			return
		}
		seen[rv.Pointer()] = true
		defer delete(seen, rv.Pointer())
		hashReflect(d, rv.Elem(), seen)
	case reflect.Interface:
		if rv.IsNil() {
			writeUint(d, 0)
			return
		}
		hashReflect(d, rv.Elem(), seen)
	case reflect.Struct:
		for i := 0; i < rv.NumField(); i++ {
			hashReflect(d, rv.Field(i), seen)
		}
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		writeUint(d, uint64(rv.Pointer()))
	}
}

func floatBits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}
