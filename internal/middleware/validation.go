package middleware

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/trainhub/internal/pkg/validation"
)

// bindingValidator lets gin's binding run the shared `validate` rules, so
// a bound body fails with validation.Errors
type bindingValidator struct{}

// UseValidation installs the shared rules as gin's binding validator
func UseValidation() {
	binding.Validator = bindingValidator{}
}

func (bindingValidator) ValidateStruct(obj interface{}) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return validation.Struct(v.Interface())
}

func (bindingValidator) Engine() interface{} {
	return validation.Engine()
}
