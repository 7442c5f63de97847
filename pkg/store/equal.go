package store

import "reflect"

// Same reports whether a and b are the same state value.
//
// Pointers, maps, channels and funcs compare by identity; slices compare by
// backing array and length. Structs, arrays and interfaces are the same
// when every field, element or dynamic value is the same under these
// rules, so a reducer that returns an unchanged struct holding slices or
// maps is a no-op. Other values compare with ==.
func Same[S any](a, b S) bool {
	return same(reflect.ValueOf(any(a)), reflect.ValueOf(any(b)))
}

func same(va, vb reflect.Value) bool {
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	case reflect.Interface:
		if va.IsNil() || vb.IsNil() {
			return va.IsNil() == vb.IsNil()
		}
		return same(va.Elem(), vb.Elem())
	case reflect.Struct:
		for i := 0; i < va.NumField(); i++ {
			if !same(va.Field(i), vb.Field(i)) {
				return false
			}
		}
		return true
	case reflect.Array:
		for i := 0; i < va.Len(); i++ {
			if !same(va.Index(i), vb.Index(i)) {
				return false
			}
		}
		return true
	}
	return va.Equal(vb)
}
