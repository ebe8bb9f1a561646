package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories lists the product categories accepted by the catalog schema.
var Categories = []string{"Electronics", "Clothing", "Footwear", "Apparel", "Accessories", "Home"}

// Variant is a color/size/stock sub-record owned by exactly one product.
// Stock is a pointer so that an explicit 0 is distinguishable from an
// absent field: only a nil stock fails the required check.
type Variant struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Color string             `json:"color" bson:"color" validate:"required"`
	Size  string             `json:"size" bson:"size" validate:"required"`
	Stock *int               `json:"stock" bson:"stock" validate:"required,gte=0"`
}

// Product represents a catalog product with its nested variants.
type Product struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name" validate:"required,min=2"`
	Price     float64            `json:"price" bson:"price" validate:"required,gte=1"`
	Category  string             `json:"category" bson:"category" validate:"required,oneof=Electronics Clothing Footwear Apparel Accessories Home"`
	Variants  []Variant          `json:"variants" bson:"variants" validate:"dive"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ProductUpdate carries the updatable fields of a product. Nil fields are
// left unchanged by the merge.
type ProductUpdate struct {
	Name     *string    `json:"name"`
	Price    *float64   `json:"price"`
	Category *string    `json:"category"`
	Variants *[]Variant `json:"variants"`
}

// ValidationError reports a document that violates the catalog schema.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = validator.New()

// Validate checks the product and its variants against the schema constraints.
// It returns a *ValidationError describing the first violation found.
func (p *Product) Validate() error {
	return toValidationError(validate.Struct(p))
}

// Validate checks a single variant against the schema constraints.
func (v *Variant) Validate() error {
	return toValidationError(validate.Struct(v))
}

func toValidationError(err error) error {
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		return &ValidationError{Message: validationMessage(validationErrors[0])}
	}
	return &ValidationError{Message: err.Error()}
}

// validationMessage maps a field error to the message surfaced to clients.
func validationMessage(e validator.FieldError) string {
	switch {
	case e.Field() == "Name":
		return "Name is required and must be at least 2 characters"
	case e.Field() == "Price":
		return "Price must be at least 1"
	case e.Field() == "Category" && e.Tag() == "required":
		return "Category is required"
	case e.Field() == "Category":
		return "Category must be one of: " + strings.Join(Categories, ", ")
	case e.Field() == "Color" || e.Field() == "Size":
		return "Color, size, and stock are required"
	case e.Field() == "Stock" && e.Tag() == "required":
		return "Color, size, and stock are required"
	case e.Field() == "Stock":
		return "Stock cannot be negative"
	}
	return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
}
