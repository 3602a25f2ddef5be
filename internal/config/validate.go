package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-adminview/pkg/decorate"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("yaml"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return strings.ToLower(field.Name)
			}
			return name
		})
		_ = v.RegisterValidation("decorate_mode", func(fl validator.FieldLevel) bool {
			_, err := decorate.ParseMode(fl.Field().String())
			return err == nil
		})
		validateInst = v
	})
	return validateInst
}

// Validate checks cfg and returns a *ValidationError for the first problem.
func Validate(cfg *Config) error {
	if cfg == nil {
		return &ValidationError{Field: "config", Message: "configuration is nil"}
	}
	if err := validatorInstance().Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	for module, items := range cfg.Menus {
		if strings.TrimSpace(module) == "" {
			return &ValidationError{Field: "menus", Message: "module name is required"}
		}
		seen := make(map[string]struct{}, len(items))
		for i, item := range items {
			if _, dup := seen[item.Name]; dup {
				return &ValidationError{
					Field:   fmt.Sprintf("menus.%s[%d].name", module, i),
					Message: fmt.Sprintf("duplicate menu item %q", item.Name),
				}
			}
			seen[item.Name] = struct{}{}
		}
	}

	for name, plugin := range cfg.Plugins {
		if plugin.Mode != "" {
			if mode, _ := decorate.ParseMode(plugin.Mode); mode == decorate.ModeExcludeRewrite {
				if len(plugin.Stylesheets) > 0 {
					return &ValidationError{
						Field:   fmt.Sprintf("plugins.%s.stylesheets", name),
						Message: fmt.Sprintf("mode %q does not inject stylesheets", mode),
					}
				}
				if plugin.Theme != nil {
					return &ValidationError{
						Field:   fmt.Sprintf("plugins.%s.theme", name),
						Message: fmt.Sprintf("mode %q does not inject stylesheets", mode),
					}
				}
			}
		}
		if plugin.Theme != nil && len(plugin.Stylesheets) > 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("plugins.%s.theme", name),
				Message: "theme and stylesheets are mutually exclusive",
			}
		}
		if plugin.Theme != nil && plugin.Theme.Variant != "" {
			if _, ok := plugin.Theme.Variants[plugin.Theme.Variant]; !ok {
				return &ValidationError{
					Field:   fmt.Sprintf("plugins.%s.theme.variant", name),
					Message: fmt.Sprintf("unknown variant %q", plugin.Theme.Variant),
				}
			}
		}
	}
	return nil
}

func convertValidationError(err error) error {
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		field := yamlishFieldName(fe)
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("failed validation for tag '%s'", fe.Tag()),
			Err:     err,
		}
	}
	return &ValidationError{Field: "config", Message: err.Error(), Err: err}
}

// yamlishFieldName drops the root struct name from the namespace.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
