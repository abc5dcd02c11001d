package configparser

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"time"
)

// LoadAndParseYaml loads the YAML file into environment variables and then
// fills the given struct from `env`/`default` tags. The destination must be a
// pointer to a struct; nested structs are walked recursively.
func LoadAndParseYaml(filepath string, dst any) error {
	if filepath != "" {
		if err := LoadYamlFile(filepath); err != nil {
			return err
		}
	}
	return ParseEnv(dst)
}

// ParseEnv fills struct fields from environment variables using `env` and
// `default` struct tags.
func ParseEnv(dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("configparser: destination must be a pointer to struct, got %T", dst)
	}
	return parseStruct(v.Elem())
}

func parseStruct(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		value := v.Field(i)

		if !value.CanSet() {
			continue
		}

		// Recurse into nested config sections
		if value.Kind() == reflect.Struct && value.Type() != reflect.TypeOf(time.Duration(0)) {
			if field.Tag.Get("env") == "" {
				if err := parseStruct(value); err != nil {
					return err
				}
				continue
			}
		}

		envKey := field.Tag.Get("env")
		if envKey == "" {
			continue
		}

		raw := os.Getenv(envKey)
		if raw == "" {
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := setField(value, raw); err != nil {
			return fmt.Errorf("configparser: field %s (%s): %w", field.Name, envKey, err)
		}
	}

	return nil
}

func setField(value reflect.Value, raw string) error {
	// time.Duration fields are int64 underneath, handle them first
	if value.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		value.SetInt(int64(d))
		return nil
	}

	switch value.Kind() {
	case reflect.String:
		value.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		value.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return err
		}
		value.SetInt(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		value.SetFloat(f)
	default:
		return fmt.Errorf("unsupported field kind %s", value.Kind())
	}

	return nil
}
