package feeders

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/golobby/cast"
)

// AffixedEnvFeeder reads environment variables named PREFIX_TAG_SUFFIX into
// struct fields tagged `env:"TAG"`.
type AffixedEnvFeeder struct {
	Prefix string
	Suffix string
}

// NewAffixedEnvFeeder creates a new AffixedEnvFeeder with the specified prefix and suffix
func NewAffixedEnvFeeder(prefix, suffix string) AffixedEnvFeeder {
	return AffixedEnvFeeder{Prefix: prefix, Suffix: suffix}
}

// Feed reads environment variables and populates the provided structure
func (f AffixedEnvFeeder) Feed(structure interface{}) error {
	inputType := reflect.TypeOf(structure)
	if inputType != nil && inputType.Kind() == reflect.Ptr && inputType.Elem().Kind() == reflect.Struct {
		return fillStruct(reflect.ValueOf(structure).Elem(), f.Prefix, f.Suffix)
	}
	return ErrEnvInvalidStructure
}

func fillStruct(rv reflect.Value, prefix, suffix string) error {
	if prefix == "" && suffix == "" {
		return ErrEnvEmptyPrefixAndSuffix
	}
	return processStructFields(rv, strings.ToUpper(prefix), strings.ToUpper(suffix))
}

func processStructFields(rv reflect.Value, prefix, suffix string) error {
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rv.Type().Field(i)

		if err := processField(field, &fieldType, prefix, suffix); err != nil {
			return fmt.Errorf("error in field '%s': %w", fieldType.Name, err)
		}
	}
	return nil
}

func processField(field reflect.Value, fieldType *reflect.StructField, prefix, suffix string) error {
	switch field.Kind() {
	case reflect.Struct:
		return processStructFields(field, prefix, suffix)
	case reflect.Pointer:
		if !field.IsZero() && field.Elem().Kind() == reflect.Struct {
			return processStructFields(field.Elem(), prefix, suffix)
		}
	default:
		if envTag, exists := fieldType.Tag.Lookup("env"); exists {
			return setFieldFromEnv(field, envTag, prefix, suffix)
		}
	}
	return nil
}

func setFieldFromEnv(field reflect.Value, envTag, prefix, suffix string) error {
	envName := strings.ToUpper(envTag)
	if prefix != "" {
		envName = prefix + "_" + envName
	}
	if suffix != "" {
		envName = envName + "_" + suffix
	}

	if envValue := os.Getenv(envName); envValue != "" {
		return setFieldValue(field, envValue)
	}
	return nil
}

func setFieldValue(field reflect.Value, strValue string) error {
	if !field.CanSet() {
		return ErrEnvFieldCannotBeSet
	}

	convertedValue, err := cast.FromType(strValue, field.Type())
	if err != nil {
		return fmt.Errorf("cannot convert value to type %v: %w", field.Type(), err)
	}

	field.Set(reflect.ValueOf(convertedValue))
	return nil
}
