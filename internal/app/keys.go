package app

import "encoding/json"

// cacheKey derives a deterministic key from the operation name and its
// parameters. Struct params encode with their fields in declaration
// order, so identical call sites always produce identical keys.
func cacheKey(op string, params any) string {
	if params == nil {
		return op
	}
	b, err := json.Marshal(params)
	if err != nil {
		return op
	}
	return op + ":" + string(b)
}
