package hcl_adapter

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeOptions evaluates a unit's options expression into string pairs.
// The expression must be an object or map of primitives; numbers and bools
// are rendered the way the compiler expects to read them back.
func decodeOptions(expr hcl.Expression) (map[string]string, error) {
	out := make(map[string]string)
	if expr == nil {
		return out, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate options: %w", diags)
	}
	if val.IsNull() {
		return out, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("options at %s must be known at load time", expr.Range())
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("options at %s must be an object, got %s", expr.Range(), val.Type().FriendlyName())
	}

	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		key := k.AsString()
		if v.IsNull() {
			return nil, fmt.Errorf("option %q must not be null", key)
		}
		if !v.Type().IsPrimitiveType() {
			return nil, fmt.Errorf("option %q must be a string, number or bool, got %s", key, v.Type().FriendlyName())
		}
		str, err := convert.Convert(v, cty.String)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		var s string
		if err := gocty.FromCtyValue(str, &s); err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		out[key] = s
	}
	return out, nil
}
