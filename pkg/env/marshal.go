package env

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Collect walks env-tagged fields of c (a pointer to struct, nested structs included)
// and returns the non-zero ones keyed by variable name.
func Collect(c any) (map[string]string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("env: expected pointer to struct, got %T", c)
	}

	out := make(map[string]string)
	collect(v.Elem(), out)
	return out, nil
}

func collect(v reflect.Value, out map[string]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		val := v.Field(i)

		tag := field.Tag.Get("env")
		if tag == "" {
			if val.Kind() == reflect.Struct && val.Type() != reflect.TypeOf(time.Time{}) {
				collect(val, out)
			}
			continue
		}

		key := tag
		for j := 0; j < len(tag); j++ {
			if tag[j] == ',' {
				key = tag[:j]
				break
			}
		}
		if key == "" || isZeroValue(val) {
			continue
		}
		out[key] = formatValue(val)
	}
}

// MarshalEnv renders the env-tagged fields of c as .env content.
// Values are quoted by godotenv so entries such as "Tel Aviv" survive a reload.
func MarshalEnv(c any) (string, error) {
	vars, err := Collect(c)
	if err != nil {
		return "", err
	}
	if len(vars) == 0 {
		return "", nil
	}

	content, err := godotenv.Marshal(vars)
	if err != nil {
		return "", fmt.Errorf("env: marshal: %w", err)
	}
	return content + "\n", nil
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

func formatValue(v reflect.Value) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
