package pipelineconfig

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wonny/revenue-risk/internal/consistency"
	"github.com/wonny/revenue-risk/internal/contracts"
	"github.com/wonny/revenue-risk/internal/risk"
)

var validate = newValidator()

// newValidator 오류 필드명을 yaml 키로 보고하는 validator
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationError 검증 실패 필드
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap errors.Is(err, contracts.ErrInvalidConfig) 지원
func (e ValidationError) Unwrap() error {
	return contracts.ErrInvalidConfig
}

// Validate 필드 범위(validate 태그) + 필드 간 제약 검사
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return ValidationError{Field: fieldPath(fe), Message: describe(fe)}
		}
		return fmt.Errorf("%w: %v", contracts.ErrInvalidConfig, err)
	}

	if c.Horizon > c.Forecast.MaxHorizon {
		return ValidationError{"horizon", fmt.Sprintf("must be <= forecast.max_horizon (%d)", c.Forecast.MaxHorizon)}
	}
	if err := risk.ValidateConfig(c.Risk); err != nil {
		return err
	}
	if err := consistency.ValidateConfig(c.Consistency); err != nil {
		return err
	}
	return nil
}

// fieldPath Config.risk.weights.trend → risk.weights.trend
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gt":
		return "must be > " + fe.Param()
	case "gte":
		return "must be >= " + fe.Param()
	case "lt":
		return "must be < " + fe.Param()
	case "lte":
		return "must be <= " + fe.Param()
	default:
		return "failed validation: " + fe.Tag()
	}
}
