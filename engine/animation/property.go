package animation

import (
	"fmt"
	"reflect"

	"github.com/spaghettifunk/animotion/engine/core"
)

// PropertyTag is the struct tag that renames a field for property paths.
const PropertyTag = "anim"

// PropertyAccessor lets a type expose animatable properties without relying on
// its field layout.
type PropertyAccessor interface {
	GetProperty(name string) (interface{}, bool)
	SetProperty(name string, value interface{}) bool
}

// GetProperty reads a named property of target: an accessor property, an
// exported struct field (by name or anim tag) or a string keyed map entry.
// Struct valued fields are returned by pointer when possible so that later
// writes reach the original.
func GetProperty(target interface{}, name string) (interface{}, error) {
	if accessor, ok := target.(PropertyAccessor); ok {
		if v, ok := accessor.GetProperty(name); ok {
			return v, nil
		}
		return nil, fmt.Errorf("%w: %T has no property '%s'", core.ErrResolution, target, name)
	}

	v := indirect(reflect.ValueOf(target))
	switch v.Kind() {
	case reflect.Struct:
		f, ok := structField(v, name)
		if !ok {
			return nil, fmt.Errorf("%w: %T has no property '%s'", core.ErrResolution, target, name)
		}
		return exported(f), nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: %T is not keyed by name", core.ErrTypeMismatch, target)
		}
		e := v.MapIndex(reflect.ValueOf(name).Convert(v.Type().Key()))
		if !e.IsValid() {
			return nil, fmt.Errorf("%w: %T has no entry '%s'", core.ErrResolution, target, name)
		}
		return e.Interface(), nil
	default:
		return nil, fmt.Errorf("%w: cannot read property '%s' of %T", core.ErrTypeMismatch, name, target)
	}
}

// GetIndex reads an element of a slice or array.
func GetIndex(target interface{}, index int) (interface{}, error) {
	v := indirect(reflect.ValueOf(target))
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if index < 0 || index >= v.Len() {
			return nil, fmt.Errorf("%w: index %d out of range [0, %d)", core.ErrResolution, index, v.Len())
		}
		return exported(v.Index(index)), nil
	default:
		return nil, fmt.Errorf("%w: cannot index %T", core.ErrTypeMismatch, target)
	}
}

// SetProperty writes a named property of target. Numeric values are converted
// to the field type; anything else must be assignable.
func SetProperty(target interface{}, name string, value interface{}) error {
	if accessor, ok := target.(PropertyAccessor); ok {
		if !accessor.SetProperty(name, value) {
			return fmt.Errorf("%w: %T rejected property '%s'", core.ErrTypeMismatch, target, name)
		}
		return nil
	}

	v := indirect(reflect.ValueOf(target))
	switch v.Kind() {
	case reflect.Struct:
		f, ok := structField(v, name)
		if !ok {
			return fmt.Errorf("%w: %T has no property '%s'", core.ErrResolution, target, name)
		}
		if !f.CanSet() {
			return fmt.Errorf("%w: property '%s' of %T is not writable", core.ErrTypeMismatch, name, target)
		}
		return assign(f, value)
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String || v.IsNil() {
			return fmt.Errorf("%w: cannot write entry '%s' of %T", core.ErrTypeMismatch, name, target)
		}
		elem := reflect.New(v.Type().Elem()).Elem()
		if err := assign(elem, value); err != nil {
			return err
		}
		v.SetMapIndex(reflect.ValueOf(name).Convert(v.Type().Key()), elem)
		return nil
	default:
		return fmt.Errorf("%w: cannot write property '%s' of %T", core.ErrTypeMismatch, name, target)
	}
}

// SetIndex writes an element of a slice or of an array reached through a pointer.
func SetIndex(target interface{}, index int, value interface{}) error {
	v := indirect(reflect.ValueOf(target))
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if index < 0 || index >= v.Len() {
			return fmt.Errorf("%w: index %d out of range [0, %d)", core.ErrResolution, index, v.Len())
		}
		e := v.Index(index)
		if !e.CanSet() {
			return fmt.Errorf("%w: element %d of %T is not writable", core.ErrTypeMismatch, index, target)
		}
		return assign(e, value)
	default:
		return fmt.Errorf("%w: cannot index %T", core.ErrTypeMismatch, target)
	}
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func structField(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Tag.Get(PropertyTag) == name {
			return v.Field(i), true
		}
	}
	sf, ok := t.FieldByName(name)
	if !ok || !sf.IsExported() {
		return reflect.Value{}, false
	}
	f, err := v.FieldByIndexErr(sf.Index)
	if err != nil {
		return reflect.Value{}, false
	}
	return f, true
}

func exported(v reflect.Value) interface{} {
	if v.Kind() == reflect.Struct && v.CanAddr() {
		return v.Addr().Interface()
	}
	return v.Interface()
}

func assign(dst reflect.Value, value interface{}) error {
	if value == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}
	src := reflect.ValueOf(value)
	if src.Type().AssignableTo(dst.Type()) {
		dst.Set(src)
		return nil
	}
	if isNumeric(src.Kind()) && isNumeric(dst.Kind()) {
		dst.Set(src.Convert(dst.Type()))
		return nil
	}
	return fmt.Errorf("%w: cannot assign %T to %s", core.ErrTypeMismatch, value, dst.Type())
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
