package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/order"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/product"
	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type userRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   *int   `json:"age" validate:"required,min=0"`
}

type userPatchRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Email *string `json:"email" validate:"omitempty,email"`
	Age   *int    `json:"age" validate:"omitempty,min=0"`
}

func (p userPatchRequest) patch() user.Patch {
	return user.Patch{Name: p.Name, Email: p.Email, Age: p.Age}
}

type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	InStock     *bool    `json:"inStock" validate:"required"`
}

func (p productRequest) product() product.Product {
	return product.Product{
		Name:        p.Name,
		Price:       decimal.NewFromFloat(*p.Price),
		Description: p.Description,
		Category:    p.Category,
		InStock:     *p.InStock,
	}
}

type productPatchRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" validate:"omitempty,min=1"`
	InStock     *bool    `json:"inStock"`
}

func (p productPatchRequest) patch() product.Patch {
	out := product.Patch{
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		InStock:     p.InStock,
	}
	if p.Price != nil {
		price := decimal.NewFromFloat(*p.Price)
		out.Price = &price
	}
	return out
}

type orderItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

// orderRequest is the body of both POST /orders and PUT /orders/{id}.
type orderRequest struct {
	UserID   string             `json:"userId" validate:"required"`
	Products []orderItemRequest `json:"products" validate:"required,dive"`
}

func (o orderRequest) items() []order.ItemRequest {
	items := make([]order.ItemRequest, len(o.Products))
	for i, p := range o.Products {
		items[i] = order.ItemRequest{ProductID: p.ProductID, Quantity: p.Quantity}
	}
	return items
}

type orderPatchRequest struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending processing shipped delivered cancelled"`
}

func (o orderPatchRequest) patch() order.Patch {
	if o.Status == nil {
		return order.Patch{}
	}
	status := order.Status(*o.Status)
	return order.Patch{Status: &status}
}

// validateRequest runs the struct validator and flattens its errors into a
// single readable message.
func validateRequest(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
