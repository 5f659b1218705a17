// Package formfields assigns string input to struct fields by name. The
// console client uses it to fill form buffers from `key=value` arguments and
// the config loader uses the same setter for environment overrides.
package formfields

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// ParseAssignments splits `key=value` pairs. Later keys win.
func ParseAssignments(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		out[key] = value
	}
	return out, nil
}

// Apply sets the fields of the struct pointed to by dst whose JSON name
// matches a key in values. Unknown keys are reported together.
func Apply(dst interface{}, values map[string]string) error {
	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Ptr || val.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("formfields: destination must be a pointer to a struct, got %T", dst)
	}
	val = val.Elem()

	fields := fieldsByName(val.Type())

	var unknown []string
	for key, raw := range values {
		idx, ok := fields[strings.ToLower(key)]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		if err := SetValue(val.Field(idx), raw); err != nil {
			return fmt.Errorf("field %s: %w", key, err)
		}
	}

	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("unknown field(s): %s (known: %s)", strings.Join(unknown, ", "), strings.Join(Names(dst), ", "))
	}
	return nil
}

// Names lists the JSON field names accepted by Apply for dst
func Names(dst interface{}) []string {
	typ := reflect.TypeOf(dst)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var names []string
	for i := 0; i < typ.NumField(); i++ {
		if name := jsonName(typ.Field(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func fieldsByName(typ reflect.Type) map[string]int {
	out := make(map[string]int, typ.NumField())
	for i := 0; i < typ.NumField(); i++ {
		if name := jsonName(typ.Field(i)); name != "" {
			out[strings.ToLower(name)] = i
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		name = f.Name
	}
	return name
}

// SetValue sets a field value from its string representation. Pointer
// fields are allocated; an empty string resets a pointer field to nil.
func SetValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if field.Kind() == reflect.Ptr {
		if value == "" {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := SetValue(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("invalid duration format: %w", err)
			}
			field.SetInt(int64(duration))
			return nil
		}
		intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer format: %w", err)
		}
		field.SetInt(intValue)

	case reflect.Bool:
		boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid boolean format: %w", err)
		}
		field.SetBool(boolValue)

	case reflect.Float32, reflect.Float64:
		floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float format: %w", err)
		}
		field.SetFloat(floatValue)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
