/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package welcome

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stewardhq/steward/prompt"
)

// defaultIssueExample is shown to the model for issues and
// discussions unless overridden.
var defaultIssueExample = prompt.MustNew(`👋 Hello @{{user}}, thank you for submitting a ` + "`{{repository}}`" + ` 🚀 {{kind_title}}. To help us address your concern efficiently, please ensure you've provided the following information:

1. For bug reports:
   - A clear and concise description of the bug
   - A minimum reproducible example that demonstrates the issue
   - Your environment details (OS, Go version, module versions)
   - Expected behavior vs. actual behavior
   - Any error messages or logs related to the issue

2. For feature requests:
   - A clear and concise description of the proposed feature
   - The problem this feature would solve
   - Any alternative solutions you've considered

3. For questions:
   - Provide as much context as possible about your question
   - Include any research you've already done on the topic
   - Specify which parts of the documentation, if any, you've already consulted

Please make sure you've searched existing {{kind}}s to avoid duplicates. If you need to add any additional information, please comment on this {{kind}}.

Thank you for your contribution to improving our project!
`)

// defaultPRExample is shown to the model for pull requests unless
// overridden.
var defaultPRExample = prompt.MustNew(`👋 Hello @{{user}}, thank you for submitting a ` + "`{{repository}}`" + ` 🚀 PR! To ensure a seamless integration of your work, please review the following checklist:

- ✅ **Define a Purpose**: Clearly explain the purpose of your fix or feature in your PR description, and link to any relevant issues at https://github.com/{{repository}}/issues. Ensure your commit messages are clear, concise, and follow the project's conventions.
- ✅ **Synchronize with Source**: Confirm your PR is synchronized with the ` + "`{{repository}}` `main`" + ` branch. If it's behind, update it by clicking the 'Update branch' button or by running ` + "`git pull` and `git merge main`" + ` locally.
- ✅ **Ensure CI Checks Pass**: Verify all continuous integration checks are passing. If any checks fail, please address the issues.
- ✅ **Update Documentation**: Update the relevant documentation for any new or modified features.
- ✅ **Add Tests**: If applicable, include or update tests to cover your changes, and confirm that all tests are passing.
- ✅ **Minimize Changes**: Limit your changes to the minimum necessary for your bug fix or feature addition.

For more guidance, please refer to our contributing guide. Don't hesitate to leave a comment if you have any questions. Thank you for contributing!
`)

// templateFile is the on-disk override format.
type templateFile struct {
	FirstIssueResponse string `yaml:"first_issue_response"`
	FirstPRResponse    string `yaml:"first_pr_response"`
}

// resolveOverrides merges the configured example overrides: explicit
// environment values win over template-file entries.
func resolveOverrides(cfg Config) (issue, pr string, err error) {
	issue, pr = cfg.FirstIssueResponse, cfg.FirstPRResponse
	if cfg.TemplateFile == "" || (issue != "" && pr != "") {
		return issue, pr, nil
	}

	raw, err := os.ReadFile(cfg.TemplateFile)
	if err != nil {
		return "", "", fmt.Errorf("read welcome template file: %w", err)
	}
	var tf templateFile
	if err := yaml.Unmarshal(raw, &tf); err != nil {
		return "", "", fmt.Errorf("parse welcome template file %s: %w", cfg.TemplateFile, err)
	}
	if issue == "" {
		issue = tf.FirstIssueResponse
	}
	if pr == "" {
		pr = tf.FirstPRResponse
	}
	return issue, pr, nil
}
