/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt

// Panic-on-error helpers for package-level template variables, where the
// template text is known to be valid.

// Must wraps a call returning (*Template, error) and panics on error:
//
//	var t = prompt.Must(prompt.New(`Hello {{name}}`))
func Must(t *Template, err error) *Template {
	if err != nil {
		panic(err)
	}
	return t
}

// MustNew is syntactic sugar for Must(New(...)).
func MustNew(text stringLiteral) *Template {
	return Must(New(text))
}

// MustBind is syntactic sugar for Must(t.Bind(...)).
func (t *Template) MustBind(name, value string) *Template {
	return Must(t.Bind(name, value))
}

// MustBindJSON is syntactic sugar for Must(t.BindJSON(...)).
func (t *Template) MustBindJSON(name string, data any) *Template {
	return Must(t.BindJSON(name, data))
}

// MustBindYAML is syntactic sugar for Must(t.BindYAML(...)).
func (t *Template) MustBindYAML(name string, data any) *Template {
	return Must(t.BindYAML(name, data))
}
