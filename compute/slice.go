package compute

import (
	"reflect"
	"unsafe"
)

// Given an interface{} containing a slice return a pointer to its data and
// its length in bytes. Empty slices yield a nil pointer. Panics if data is not
// a slice.
func SliceData(data interface{}) (unsafe.Pointer, int) {
	reflVal := reflect.ValueOf(data)

	if reflVal.Kind() != reflect.Slice {
		panic("compute: SliceData only supports slices")
	}

	sliceElemCount := reflVal.Len()
	if sliceElemCount == 0 {
		return nil, 0
	}

	return reflVal.UnsafePointer(),
		sliceElemCount * int(reflVal.Type().Elem().Size())
}

// View a slice as raw bytes without copying.
func SliceBytes(data interface{}) []byte {
	ptr, n := SliceData(data)
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(ptr), n)
}

// Given a pointer to a struct return a pointer to it and the struct size.
// The second result is 0 when arg is not a struct pointer.
func StructData(arg interface{}) (unsafe.Pointer, int) {
	reflVal := reflect.ValueOf(arg)
	if reflVal.Kind() != reflect.Ptr || reflVal.IsNil() || reflVal.Elem().Kind() != reflect.Struct {
		return nil, 0
	}
	return reflVal.UnsafePointer(), int(reflVal.Elem().Type().Size())
}
