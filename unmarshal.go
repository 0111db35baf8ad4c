package nskeyed

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"
)

// NotSupportedError reports a target type [Unmarshal] cannot populate.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

// Unmarshal decodes a parsed keyed archive and populates target from its
// named roots, similar to [encoding/json.Unmarshal]. Target must be a
// non-nil pointer to a struct; its fields map to root names, renamed via
// json struct tags, with "-" skipping a field. Roots without a matching
// field, and fields without a matching root, are ignored.
func Unmarshal(doc map[string]any, target any) error {
	decoded, err := Decode(doc)
	if err != nil {
		return err
	}

	value := reflect.ValueOf(target)
	if value.Kind() != reflect.Pointer || value.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}

	return assign(decoded, value.Elem())
}

// UnmarshalNew decodes a parsed keyed archive onto a new T.
func UnmarshalNew[T any](doc map[string]any) (T, error) {
	var target T
	err := Unmarshal(doc, &target)
	return target, err
}

var tyTextUnmarshaler = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// assign sets target to the given decoded value.
func assign(decoded any, target reflect.Value) error {
	if target.Kind() != reflect.Pointer && target.CanAddr() &&
		reflect.PointerTo(target.Type()).Implements(tyTextUnmarshaler) {
		text, ok := decoded.(string)
		if !ok {
			return assignError(decoded, target)
		}

		m := target.Addr().Interface().(encoding.TextUnmarshaler)
		return m.UnmarshalText([]byte(text))
	}

	switch target.Kind() {
	case reflect.Interface:
		if decoded == nil {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}

		value := reflect.ValueOf(decoded)
		if !value.Type().AssignableTo(target.Type()) {
			return assignError(decoded, target)
		}

		target.Set(value)
		return nil

	case reflect.Bool:
		boolValue, ok := decoded.(bool)
		if !ok {
			return assignError(decoded, target)
		}

		target.SetBool(boolValue)
		return nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := intValue(decoded)
		if !ok {
			return assignError(decoded, target)
		}

		if target.OverflowInt(n) {
			return fmt.Errorf("value %d overflows %s", n, target.Type())
		}

		target.SetInt(n)
		return nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, ok := intValue(decoded)
		if !ok || n < 0 {
			return assignError(decoded, target)
		}

		if target.OverflowUint(uint64(n)) {
			return fmt.Errorf("value %d overflows %s", n, target.Type())
		}

		target.SetUint(uint64(n))
		return nil

	case reflect.Float32, reflect.Float64:
		f, ok := floatValue(decoded)
		if !ok {
			return assignError(decoded, target)
		}

		target.SetFloat(f)
		return nil

	case reflect.String:
		stringValue, ok := decoded.(string)
		if !ok {
			return assignError(decoded, target)
		}

		target.SetString(stringValue)
		return nil

	case reflect.Pointer:
		if decoded == nil {
			target.Set(reflect.Zero(target.Type()))
			return nil
		}

		value := reflect.New(target.Type().Elem())
		if err := assign(decoded, value.Elem()); err != nil {
			return err
		}

		target.Set(value)
		return nil

	case reflect.Struct:
		return assignStruct(decoded, target)

	case reflect.Slice:
		return assignSlice(decoded, target)

	case reflect.Map:
		return assignMap(decoded, target)

	default:
		return NotSupportedError{Type: target.Type()}
	}
}

func assignStruct(decoded any, target reflect.Value) error {
	members, ok := decoded.(map[string]any)
	if !ok {
		return assignError(decoded, target)
	}

	for _, field := range fieldsOf(target.Type()) {
		member, ok := members[field.Name]
		if !ok {
			continue
		}

		if err := assign(member, target.FieldByIndex(field.Index)); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	}

	return nil
}

func assignSlice(decoded any, target reflect.Value) error {
	elements, ok := decoded.([]any)
	if !ok {
		return assignError(decoded, target)
	}

	slice := reflect.MakeSlice(target.Type(), len(elements), len(elements))

	for i, element := range elements {
		if err := assign(element, slice.Index(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}

	target.Set(slice)
	return nil
}

func assignMap(decoded any, target reflect.Value) error {
	keyType := target.Type().Key()
	if keyType.Kind() != reflect.String {
		return NotSupportedError{Type: target.Type()}
	}

	members, ok := decoded.(map[string]any)
	if !ok {
		return assignError(decoded, target)
	}

	valueType := target.Type().Elem()
	result := reflect.MakeMapWithSize(target.Type(), len(members))

	for key, member := range members {
		value := reflect.New(valueType).Elem()
		if err := assign(member, value); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}

		result.SetMapIndex(reflect.ValueOf(key).Convert(keyType), value)
	}

	target.Set(result)
	return nil
}

func assignError(decoded any, target reflect.Value) error {
	return fmt.Errorf("cannot assign %T to %s", decoded, target.Type())
}

func floatValue(decoded any) (float64, bool) {
	switch v := decoded.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}

	if n, ok := intValue(decoded); ok {
		return float64(n), true
	}

	return 0, false
}

type structField struct {
	Name  string
	Index []int
}

// fieldsOf lists the settable fields of a struct type, flattening anonymous
// embedded structs. On a name collision the first field found wins, with a
// struct's own fields visited before its embedded structs.
func fieldsOf(ty reflect.Type) []structField {
	var fields []structField
	walkFields(ty, nil, map[string]struct{}{}, &fields)
	return fields
}

func walkFields(ty reflect.Type, parent []int, seen map[string]struct{}, fields *[]structField) {
	var embedded []reflect.StructField

	for i := 0; i < ty.NumField(); i++ {
		fi := ty.Field(i)
		if !fi.IsExported() {
			continue
		}

		name, explicit := fieldName(fi)
		if name == "" {
			continue
		}

		if fi.Anonymous && !explicit && fi.Type.Kind() == reflect.Struct {
			embedded = append(embedded, fi)
			continue
		}

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		// ensure the parent index is not shared between siblings
		index := append(parent[:len(parent):len(parent)], i)

		*fields = append(*fields, structField{Name: name, Index: index})
	}

	for _, fi := range embedded {
		index := append(parent[:len(parent):len(parent)], fi.Index...)
		walkFields(fi.Type, index, seen, fields)
	}
}

// fieldName derives the root/member name of a struct field from its json
// tag. An empty name with explicit=true means the field is skipped.
func fieldName(fi reflect.StructField) (name string, explicit bool) {
	tag := fi.Tag.Get("json")
	if tag == "" {
		return fi.Name, false
	}

	if tag == "-" {
		return "", true
	}

	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}

	if tag == "" {
		return fi.Name, false
	}

	return tag, true
}
