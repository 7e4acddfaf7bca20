package recipe

import "errors"

// Domain errors for recipe calculation

var (
	ErrNoIngredients        = errors.New("recipe must have at least one ingredient")
	ErrZeroTotalMass        = errors.New("total ingredient mass is zero")
	ErrUnresolvedWeight     = errors.New("ingredient weight has not been resolved")
	ErrInvalidYieldWeight   = errors.New("yield weight must be greater than 0")
	ErrIngredientNotFound   = errors.New("ingredient not found in recipe")
	ErrConversionSuperseded = errors.New("conversion superseded by a newer request")
)
