package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/wayfarer/backend/internal/domain"
)

// pathID binds the positive integer path parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive id", domain.ErrValidation, name)
	}
	return id, nil
}

// pathText binds a required string path parameter.
func pathText(r *http.Request, name string) (string, error) {
	var v string
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &v,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return v, nil
}

// requiredID binds a required integer form or query parameter.
func requiredID(values url.Values, name string) (int64, error) {
	var id int64
	if err := runtime.BindQueryParameter("form", true, true, name, values, &id); err != nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive id", domain.ErrValidation, name)
	}
	return id, nil
}

// optionalID binds an optional integer form or query parameter; nil when absent.
func optionalID(values url.Values, name string) (*int64, error) {
	var id *int64
	if err := runtime.BindQueryParameter("form", true, false, name, values, &id); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	if id != nil && *id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive id", domain.ErrValidation, name)
	}
	return id, nil
}
