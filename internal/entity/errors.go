package entity

import "fmt"

// Error is a typed failure with a machine-readable code. The code is
// surfaced to API clients through the GraphQL error extensions.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *Error) Error() string { return e.Message }

// Extensions satisfies gqlerrors.ExtendedError so the code travels with
// the formatted GraphQL error.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.Code}
}

var (
	ErrNotAuthenticated   = &Error{Code: "UNAUTHENTICATED", Message: "Not authenticated"}
	ErrForbidden          = &Error{Code: "FORBIDDEN", Message: "Not authorized"}
	ErrInvalidCredentials = &Error{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password"}

	ErrEmailInUse          = &Error{Code: "EMAIL_IN_USE", Message: "Email already in use"}
	ErrCategoryNameExists  = &Error{Code: "CATEGORY_NAME_EXISTS", Message: "Category name already exists"}
	ErrInvalidParent       = &Error{Code: "INVALID_PARENT", Message: "Category cannot be its own parent"}
	ErrCategoryHasProducts = &Error{Code: "CATEGORY_HAS_PRODUCTS", Message: "Category has products and cannot be deleted"}
	ErrCategoryHasChildren = &Error{Code: "CATEGORY_HAS_CHILDREN", Message: "Category has child categories and cannot be deleted"}
	ErrEmptyCart           = &Error{Code: "EMPTY_CART", Message: "Cart is empty"}
	ErrInvalidQuantity     = &Error{Code: "INVALID_QUANTITY", Message: "Quantity must be at least 1"}
	ErrInvalidStatus       = &Error{Code: "INVALID_STATUS", Message: "Unknown order status"}
	ErrInvalidTransition   = &Error{Code: "INVALID_STATUS_TRANSITION", Message: "Order status transition not allowed"}
)

// NotFound builds the *_NOT_FOUND error for the named entity,
// e.g. NotFound("product") -> PRODUCT_NOT_FOUND.
func NotFound(name string) *Error {
	code := ""
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		if r == ' ' {
			r = '_'
		}
		code += string(r)
	}
	return &Error{
		Code:    code + "_NOT_FOUND",
		Message: fmt.Sprintf("%s not found", upperFirst(name)),
	}
}

// IsNotFound reports whether err carries a *_NOT_FOUND code.
func IsNotFound(err error) bool {
	e, ok := err.(*Error)
	return ok && len(e.Code) > 10 && e.Code[len(e.Code)-10:] == "_NOT_FOUND"
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	c := s[0]
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return string(c) + s[1:]
}
