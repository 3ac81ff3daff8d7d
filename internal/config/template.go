package config

import (
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// expandTemplate renders template expressions in a config value.
// Available variables:
//   - {{.COMPADRE_DIR}}: directory containing the config file
//   - {{.USER_WORKING_DIR}}: current working directory
//
// All sprig functions are available, e.g. {{.COMPADRE_DIR | base}}.
// A value that fails to parse or render is returned unchanged.
func (c *Config) expandTemplate(value string) string {
	if !strings.Contains(value, "{{") {
		return value
	}

	tmpl, err := template.New("config").Funcs(sprig.TxtFuncMap()).Parse(value)
	if err != nil {
		return value
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}

	data := map[string]string{
		"COMPADRE_DIR":     c.ConfigDir,
		"USER_WORKING_DIR": cwd,
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return value
	}

	return sb.String()
}

// expandSourceVars renders templates in source locations and records
// the declaring directory so relative paths resolve against it.
func (c *Config) expandSourceVars() {
	for i := range c.Sources {
		src := &c.Sources[i]
		src.Path = c.expandTemplate(src.Path)
		src.Glob = c.expandTemplate(src.Glob)
		src.URL = c.expandTemplate(src.URL)
		src.Dir = c.ConfigDir
	}
}
