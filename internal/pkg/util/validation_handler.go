package util

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var ErrValidation = errors.New("参数校验失败")

func init() {
	validate = validator.New()
}

// ValidateDTO 返回第一条校验失败的字段与规则
func ValidateDTO(dto any) error {
	if err := validate.Struct(dto); err != nil {
		var vErrs validator.ValidationErrors
		if errors.As(err, &vErrs) {
			firstError := vErrs[0]
			return fmt.Errorf("%w: 字段 [%s] 规则 [%s]", ErrValidation, firstError.Field(), firstError.Tag())
		}
		return err
	}
	return nil
}
