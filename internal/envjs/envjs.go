// SPDX-License-Identifier: MPL-2.0

// Package envjs generates the Hephaestus env.js artifact from the merged
// launcher environment. The file hands the browser front-end the same
// port layout the backend components were started with.
package envjs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tekton-cli/internal/env"
)

const (
	// PortBaseKey and its default anchor the component port range.
	PortBaseKey     = "TEKTON_PORT_BASE"
	DefaultPortBase = 8000
	// AIPortBaseKey and its default anchor the parallel AI port range;
	// an AI port is aiBase + (componentPort - base).
	AIPortBaseKey     = "TEKTON_AI_PORT_BASE"
	DefaultAIPortBase = 45000
)

// RelPath is the artifact location below the installation root.
var RelPath = filepath.Join("Hephaestus", "ui", "scripts", "env.js")

// Service is one named platform component with an assigned port.
type Service struct {
	// EnvKey is the environment variable carrying the port.
	EnvKey string
	// Default applies when the variable is absent from the environment.
	Default int
	// URL marks services whose base URL is also emitted for convenience.
	URL bool
}

// Services is the fixed component table, in artifact order. Ports follow
// the single-port architecture: one sequential port per component plus
// the UI on the standard web port.
var Services = []Service{
	{EnvKey: "HEPHAESTUS_PORT", Default: 8080, URL: true},
	{EnvKey: "ENGRAM_PORT", Default: 8000, URL: true},
	{EnvKey: "HERMES_PORT", Default: 8001, URL: true},
	{EnvKey: "ERGON_PORT", Default: 8002},
	{EnvKey: "RHETOR_PORT", Default: 8003, URL: true},
	{EnvKey: "TERMA_PORT", Default: 8004},
	{EnvKey: "ATHENA_PORT", Default: 8005},
	{EnvKey: "PROMETHEUS_PORT", Default: 8006},
	{EnvKey: "HARMONIA_PORT", Default: 8007},
	{EnvKey: "TELOS_PORT", Default: 8008},
	{EnvKey: "SYNTHESIS_PORT", Default: 8009},
	{EnvKey: "TEKTON_CORE_PORT", Default: 8010},
	{EnvKey: "METIS_PORT", Default: 8011},
	{EnvKey: "APOLLO_PORT", Default: 8012},
	{EnvKey: "BUDGET_PORT", Default: 8013},
	{EnvKey: "SOPHIA_PORT", Default: 8014},
}

// Port returns the effective port for s given the merged environment.
// Unparsable values fall back to the default rather than failing; the
// artifact is a best-effort side product.
func (s Service) Port(m *env.Map) int {
	raw, ok := m.Get(s.EnvKey)
	if !ok {
		return s.Default
	}
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return s.Default
	}
	return port
}

// AIPort applies the derived-port transform.
func AIPort(componentPort, base, aiBase int) int {
	return aiBase + (componentPort - base)
}

// Write renders the artifact for the merged environment to w. The now
// parameter feeds the generation timestamps so output is reproducible in
// tests.
func Write(w io.Writer, m *env.Map, now time.Time) error {
	base := intFromEnv(m, PortBaseKey, DefaultPortBase)
	aiBase := intFromEnv(m, AIPortBaseKey, DefaultAIPortBase)
	stamp := now.Format(time.RFC3339)

	var b strings.Builder
	b.WriteString("// Tekton environment for the Hephaestus UI.\n")
	b.WriteString("// Generated by the tekton launcher. DO NOT EDIT.\n")
	fmt.Fprintf(&b, "// Generated: %s\n\n", stamp)

	b.WriteString("// Component port assignments\n")
	for _, svc := range Services {
		fmt.Fprintf(&b, "window.%s = %d;\n", svc.EnvKey, svc.Port(m))
	}

	b.WriteString("\n// Port bases and the AI port transform\n")
	fmt.Fprintf(&b, "window.%s = %d;\n", PortBaseKey, base)
	fmt.Fprintf(&b, "window.%s = %d;\n", AIPortBaseKey, aiBase)
	fmt.Fprintf(&b, "window.getAIPort = function (componentPort) {\n")
	fmt.Fprintf(&b, "    return window.%s + (componentPort - window.%s);\n", AIPortBaseKey, PortBaseKey)
	b.WriteString("};\n")

	b.WriteString("\n// Convenience base URLs\n")
	for _, svc := range Services {
		if !svc.URL {
			continue
		}
		name := strings.TrimSuffix(svc.EnvKey, "_PORT")
		fmt.Fprintf(&b, "window.%s_URL = 'http://localhost:%d';\n", name, svc.Port(m))
	}

	b.WriteString("\n// Debug settings\n")
	fmt.Fprintf(&b, "window.%s = '%s';\n", env.DebugKey, m.GetDefault(env.DebugKey, "false"))
	fmt.Fprintf(&b, "window.%s = '%s';\n", env.LogLevelKey, m.GetDefault(env.LogLevelKey, "INFO"))

	fmt.Fprintf(&b, "\n// Generation complete: %s\n", stamp)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteFile writes the artifact under root, creating the scripts
// directory when absent. Callers treat a returned error as a warning;
// dispatch proceeds without the artifact.
func WriteFile(root string, m *env.Map, now time.Time) error {
	path := filepath.Join(root, RelPath)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, m, now); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func intFromEnv(m *env.Map, key string, def int) int {
	raw, ok := m.Get(key)
	if !ok {
		return def
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return def
	}
	return v
}
