package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"unicode"

	gvalidator "github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/milan604/esb-oms/pkg/apierr"
)

// Validator wraps go-playground validator with JSON-tag field names and
// per-tag message builders.
type Validator struct {
	v                *gvalidator.Validate
	mu               sync.RWMutex
	tagErrorBuilders map[string]func(fe gvalidator.FieldError) string
}

// Engine is the subset used by the dispatcher.
type Engine interface {
	Validate(v any) *apierr.Error
	ParseError(err error) *apierr.Error
}

var _ Engine = (*Validator)(nil)

// New creates a Validator. Field names in errors follow json tags.
func New() *Validator {
	v := gvalidator.New(gvalidator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := getTagName(f, "json"); name != "" {
			return name
		}
		return f.Name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	vi := &Validator{
		v:                v,
		tagErrorBuilders: make(map[string]func(gvalidator.FieldError) string),
	}
	vi.registerDefaultMessages()
	return vi
}

var (
	defaultOnce sync.Once
	defaultVal  *Validator
)

// Default returns a shared Validator.
func Default() *Validator {
	defaultOnce.Do(func() { defaultVal = New() })
	return defaultVal
}

func getTagName(f reflect.StructField, tagName string) string {
	tagValue := f.Tag.Get(tagName)
	if tagValue == "-" {
		return ""
	}
	return strings.SplitN(tagValue, ",", 2)[0]
}

// RegisterValidation registers a custom validation tag.
func (vi *Validator) RegisterValidation(tag string, fn gvalidator.Func) error {
	return vi.v.RegisterValidation(tag, fn)
}

// RegisterTagError overrides the message produced for a tag.
func (vi *Validator) RegisterTagError(tag string, builder func(gvalidator.FieldError) string) {
	vi.mu.Lock()
	defer vi.mu.Unlock()
	vi.tagErrorBuilders[tag] = builder
}

func (vi *Validator) registerDefaultMessages() {
	vi.tagErrorBuilders["required"] = func(fe gvalidator.FieldError) string {
		return "is required"
	}
	vi.tagErrorBuilders["max"] = func(fe gvalidator.FieldError) string {
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	}
	vi.tagErrorBuilders["oneof"] = func(fe gvalidator.FieldError) string {
		return fmt.Sprintf("must be one of [%s]", fe.Param())
	}
	vi.tagErrorBuilders["datetime"] = func(fe gvalidator.FieldError) string {
		return fmt.Sprintf("must match layout %s", fe.Param())
	}
	vi.tagErrorBuilders["required_without"] = func(fe gvalidator.FieldError) string {
		return fmt.Sprintf("is required when %s is empty", fe.Param())
	}
}

// Validate checks v against its validate tags. Structs, pointers to structs,
// and slices or maps of structs are supported; other values pass unchecked.
func (vi *Validator) Validate(v any) *apierr.Error {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}

	var err error
	switch rv.Kind() {
	case reflect.Struct:
		if rv.Type() == reflect.TypeOf(decimal.Decimal{}) {
			return nil
		}
		err = vi.v.Struct(rv.Interface())
	case reflect.Slice, reflect.Array, reflect.Map:
		if !holdsStructs(rv.Type().Elem()) {
			return nil
		}
		err = vi.v.Var(rv.Interface(), "dive")
	default:
		return nil
	}
	if err == nil {
		return nil
	}
	return vi.ParseError(err)
}

func holdsStructs(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// ParseError converts validator and JSON decoding errors into a Validation error.
func (vi *Validator) ParseError(err error) *apierr.Error {
	if err == nil {
		return nil
	}

	var ve gvalidator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &ve):
		fields := make(map[string][]string, len(ve))
		for _, fe := range ve {
			name := namespace(fe)
			fields[name] = append(fields[name], vi.buildMessageForField(fe))
		}
		details := &apierr.ValidationErrors{Fields: fields}
		return apierr.New(apierr.KindValidation, "validation failed: "+details.String(),
			apierr.WithValidationErrors(details))

	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return apierr.New(apierr.KindValidation, "invalid JSON value", apierr.WithCause(err))
		}
		msg := fmt.Sprintf("invalid type: expected %s", typeErr.Type.String())
		details := &apierr.ValidationErrors{Fields: map[string][]string{typeErr.Field: {msg}}}
		return apierr.New(apierr.KindValidation, fmt.Sprintf("invalid type for field %s", typeErr.Field),
			apierr.WithValidationErrors(details), apierr.WithCause(err))

	case errors.As(err, &syntaxErr):
		return apierr.New(apierr.KindValidation, "invalid JSON payload", apierr.WithCause(err))

	default:
		return apierr.New(apierr.KindValidation, fmt.Sprintf("invalid input: %v", err), apierr.WithCause(err))
	}
}

// namespace drops the root type name and embedded struct names so keys read
// like JSON paths (salesHead.menu[0].menuCode).
func namespace(fe gvalidator.FieldError) string {
	ns := fe.Namespace()
	if strings.HasPrefix(ns, "[") {
		return ns
	}
	i := strings.IndexByte(ns, '.')
	if i < 0 {
		return fe.Field()
	}
	parts := strings.Split(ns[i+1:], ".")
	kept := parts[:0]
	for j, p := range parts {
		if j < len(parts)-1 && embedded(p) {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, ".")
}

// embedded reports a segment named after a Go type rather than a json tag.
func embedded(segment string) bool {
	return segment != "" && unicode.IsUpper(rune(segment[0])) && !strings.ContainsRune(segment, '[')
}

func (vi *Validator) buildMessageForField(fe gvalidator.FieldError) string {
	vi.mu.RLock()
	b, ok := vi.tagErrorBuilders[fe.Tag()]
	vi.mu.RUnlock()
	if ok && b != nil {
		return b(fe)
	}
	if fe.Param() != "" {
		return fmt.Sprintf("failed on '%s' validation (param=%s)", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("failed on '%s' validation", fe.Tag())
}
