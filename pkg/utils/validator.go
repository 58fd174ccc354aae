package utils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"rental-crm/domain/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationError - หนึ่ง field ที่ไม่ผ่าน
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())

		// ใช้ชื่อ json ใน error แทนชื่อ field ของ Go
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})

		mustRegister(v, "leadstatus", func(s string) bool { return models.LeadStatus(s).IsValid() })
		mustRegister(v, "tasktype", func(s string) bool { return models.TaskType(s).IsValid() })
		mustRegister(v, "taskpriority", func(s string) bool { return models.TaskPriority(s).IsValid() })
		mustRegister(v, "taskstatus", func(s string) bool { return models.TaskStatus(s).IsValid() })
		mustRegister(v, "nonblank", func(s string) bool { return strings.TrimSpace(s) != "" })

		validate = v
	})
	return validate
}

func mustRegister(v *validator.Validate, tag string, ok func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return ok(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register validation %s: %v", tag, err))
	}
}

// ValidateStruct ตรวจ struct ตาม validate tag
func ValidateStruct(s interface{}) error {
	return validatorInstance().Struct(s)
}

// GetValidationErrors แปลง error จาก ValidateStruct เป็น list สำหรับ response details
func GetValidationErrors(err error) []ValidationError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []ValidationError{{Field: "", Tag: "invalid", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: validationMessage(fe),
		})
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return fe.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "email":
		return fe.Field() + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	case "leadstatus":
		return fe.Field() + " is not a valid lead status"
	case "tasktype":
		return fe.Field() + " is not a valid task type"
	case "taskpriority":
		return fe.Field() + " is not a valid task priority"
	case "taskstatus":
		return fe.Field() + " is not a valid task status"
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}
