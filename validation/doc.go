// Package validation checks identifiers and request bodies before they are
// sent to the validator.
//
// Struct tags cover JSON bodies. Besides the go-playground built-ins two tags
// are registered:
//
//	resource_id     128 lowercase hex characters (block, batch, transaction ids)
//	state_address   70 lowercase hex characters
//
//	type StatusBody struct {
//	    BatchIDs []string `json:"batch_ids" validate:"required,min=1,dive,resource_id"`
//	}
//	if fe, ok := validation.Struct(body); !ok { ... }
//
// Query parameters are checked one by one with a Validator, which keeps the
// first failure and reports it as a gateway error:
//
//	v := validation.New()
//	v.ResourceID("head", head).Count("limit", limit)
//	if err := v.Err(); err != nil { ... }
package validation
