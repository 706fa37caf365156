/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package prompt

import (
	"fmt"
	"maps"
)

// stringLiteral only accepts literal strings, keeping template text under
// developer control.
type stringLiteral string

// Template is a prompt template with bindable placeholders.
type Template struct {
	text     string
	bindings map[string]binding
}

// New parses a template literal and records its placeholders.
func New(text stringLiteral) (*Template, error) {
	bindings := make(map[string]binding)

	// Walking with an identity resolver validates the placeholder syntax
	// and collects the binding names.
	parsed, err := walk(string(text), func(name string) (string, error) {
		if _, exists := bindings[name]; !exists {
			bindings[name] = &unboundBinding{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}

	return &Template{
		text:     parsed,
		bindings: bindings,
	}, nil
}

// Bindings returns the set of placeholder names in the template.
func (t *Template) Bindings() map[string]struct{} {
	names := make(map[string]struct{}, len(t.bindings))
	for name := range t.bindings {
		names[name] = struct{}{}
	}
	return names
}

// Bind binds a string value to a placeholder. The value is substituted
// verbatim and never re-scanned for placeholders, so remote content such
// as issue bodies is safe to bind. Returns a new Template.
func (t *Template) Bind(name, value string) (*Template, error) {
	return t.rebind(name, &stringBinding{val: value})
}

// BindJSON binds structured data to a placeholder as indented JSON.
// Returns a new Template.
func (t *Template) BindJSON(name string, data any) (*Template, error) {
	return t.rebind(name, &jsonBinding{data: data})
}

// BindYAML binds structured data to a placeholder as YAML.
// Returns a new Template.
func (t *Template) BindYAML(name string, data any) (*Template, error) {
	return t.rebind(name, &yamlBinding{data: data})
}

func (t *Template) rebind(name string, b binding) (*Template, error) {
	if err := existsAndUnbound(t.bindings, name); err != nil {
		return nil, err
	}
	bound := &Template{
		text:     t.text,
		bindings: maps.Clone(t.bindings),
	}
	bound.bindings[name] = b
	return bound, nil
}

// Build renders the template, returning an error if any placeholder is
// still unbound.
func (t *Template) Build() (string, error) {
	values := make(map[string]string, len(t.bindings))
	for name, b := range t.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}

	return walk(t.text, func(name string) (string, error) {
		if val, exists := values[name]; exists {
			return val, nil
		}
		// Unreachable: New and Build tokenize identically.
		return "", fmt.Errorf("internal error: binding %q not found", name)
	})
}
