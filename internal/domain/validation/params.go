package validation

import "strings"

// RequiredCustomerParams are the form keys that must all be present before a
// customer create is even attempted. Order matters: the structural error
// lists missing keys in this order.
var RequiredCustomerParams = []string{"name", "surname", "photo", "identifier"}

// MissingCustomerParams reports which required keys the raw payload lacks.
// This is a structural pre-check on the payload shape, distinct from the
// field-level rules: it fires before persistence and yields a bad-request,
// not an unprocessable-entity.
func MissingCustomerParams(has func(key string) bool) []string {
	var missing []string
	for _, p := range RequiredCustomerParams {
		if !has(p) {
			missing = append(missing, p)
		}
	}
	return missing
}

// MissingParamsMessage renders the structural error as a single string,
// e.g. `["surname"] param(s) is/are not present`.
func MissingParamsMessage(missing []string) string {
	quoted := make([]string, len(missing))
	for i, m := range missing {
		quoted[i] = `"` + m + `"`
	}
	return "[" + strings.Join(quoted, ", ") + "] param(s) is/are not present"
}
