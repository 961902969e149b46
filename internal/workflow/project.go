package workflow

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DataType classifies the submitted data.
type DataType string

const (
	DataTypeFinancial   DataType = "financial"
	DataTypeSales       DataType = "sales"
	DataTypeCustomer    DataType = "customer"
	DataTypeOperational DataType = "operational"
)

// DataTypes lists the accepted data types in display order.
func DataTypes() []DataType {
	return []DataType{DataTypeFinancial, DataTypeSales, DataTypeCustomer, DataTypeOperational}
}

// Valid reports whether t is one of DataTypes.
func (t DataType) Valid() bool {
	for _, dt := range DataTypes() {
		if t == dt {
			return true
		}
	}
	return false
}

// DataTypeList joins the accepted data types for help and error text.
func DataTypeList() string {
	names := make([]string, 0, len(DataTypes()))
	for _, dt := range DataTypes() {
		names = append(names, string(dt))
	}
	return strings.Join(names, ", ")
}

// ProjectMeta describes a submitted project. ID is assigned by the engine.
type ProjectMeta struct {
	ID       string   `json:"id"`
	Name     string   `json:"name" validate:"required"`
	DataType DataType `json:"dataType" validate:"required,datatype"`
	Source   string   `json:"source,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterValidation("datatype", func(fl validator.FieldLevel) bool {
		return DataType(fl.Field().String()).Valid()
	})
	return v
}

// validateSubmission checks meta and the raw data text.
func validateSubmission(meta ProjectMeta, csvText string) ValidationErrors {
	var errs ValidationErrors

	if err := validate.Struct(meta); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return ValidationErrors{{Field: "project", Message: err.Error()}}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, ValidationError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
	}

	if strings.TrimSpace(csvText) == "" {
		errs = append(errs, ValidationError{Field: "data", Message: "data is required"})
	}

	return errs
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "datatype":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), DataTypeList())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}
