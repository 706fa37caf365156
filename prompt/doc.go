/*
Copyright 2025 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package prompt builds LLM prompts from developer-authored templates with
{{name}} placeholders.

Templates must be literal strings, so the shape of every prompt is fixed
at compile time; only placeholder values vary at runtime. Substitution is
a single pass over the template: bound values are inserted verbatim and
never re-scanned, so placeholder-like text inside an issue title or PR
diff stays inert instead of expanding into the prompt.

	var greet = prompt.MustNew(`Hello {{name}}, welcome to {{repo}}.`)

	text, err := greet.
		MustBind("name", user).
		MustBind("repo", repo).
		Build()

Templates are immutable; every Bind returns a new Template, so
package-level templates are safe to share. Build returns an error if any
placeholder is still unbound. BindJSON and BindYAML marshal structured
data before substitution.
*/
package prompt
