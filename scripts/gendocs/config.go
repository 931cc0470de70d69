package main

import (
	"encoding"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/leapstack-labs/datavis/internal/cli/config"
	"github.com/leapstack-labs/datavis/pkg/layout"
)

// configOption is one documented configuration key.
type configOption struct {
	Key     string
	Type    string
	Default string
}

var (
	textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()
	durationType      = reflect.TypeFor[time.Duration]()
)

// optionDescriptions documents keys whose meaning is not obvious from the name.
var optionDescriptions = map[string]string{
	"source.type":                 "Source kind: delimited, duckdb, postgres or sqlite. Guessed from the path when empty.",
	"source.path":                 "Table file or database path, relative to the project root.",
	"source.query":                "SQL query to read the table with.",
	"source.table":                "Table to read when no query is given.",
	"source.password":             "Database password. Prefer " + config.EnvPrefix + "SOURCE__PASSWORD.",
	"source.delimiter":            "Field delimiter of delimited files.",
	"source.comment":              "Lines starting with this character are skipped.",
	"kind":                        "Dataset kind: auto, numerical or categorical.",
	"labels.x":                    "Label of the X axis. Overrides the header row.",
	"output":                      "Output format: auto, text, markdown, json or yaml.",
	"log_level":                   "Log level: debug, info, warn or error.",
	"log_format":                  "Log format: text or json.",
	"server.addr":                 "Address the HTTP server listens on.",
	"server.watch":                "Reload the dataset when the source file changes.",
	"server.archive":              "SQLite file finished layouts are archived in. Empty disables the archive.",
	"server.archive_keep":         "Number of archived layouts to keep. 0 keeps all.",
	"chart.axis.create":           "Emit axis geometry.",
	"chart.axis.auto_steps":       "Derive tick steps from the data range.",
	"chart.axis.number_format":    "Tick label format.",
	"chart.color.use_shader":      "Color primitives from the color options.",
	"chart.color.type":            "Color scheme: gradient, constant or random.",
	"chart.animation.animate":     "Emit an animation schedule alongside the layout.",
	"chart.animation.key_spacing": "Frames between consecutive keyframes.",
	"chart.bar.bar_size":          "Bar footprint as a fraction of the grid cell.",
	"chart.pie.vertex_count":      fmt.Sprintf("Vertices around the full circle, shared between slices. At most %d.", layout.MaxVertexCount),
	"chart.line.bevel":            "Line profile: none, rounded or sharp.",
	"chart.surface.density":       fmt.Sprintf("Grid points per side of the fitted surface. At most %d.", layout.MaxDensity),
	"chart.surface.kernel":        "Radial basis function kernel.",
}

// generateConfigDocs writes the configuration file reference.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "Reference for "+config.ConfigFileNames[0])
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(InlineCode(config.ConfigFileNames[0]) + " is searched for in the working directory and its parents. " +
		"Every key can also be set with a " + InlineCode(config.EnvPrefix) + " environment variable, " +
		"using a double underscore between nested keys.")

	w.Header(2, "General")
	writeOptionsTable(w, collectOptions("", reflect.ValueOf(config.DefaultConfig()).Elem(), true))

	common := layout.DefaultCommon()
	w.Header(2, "Chart Defaults")
	w.Paragraph("Shared by every chart kind. A chart section may override any of them.")
	writeOptionsTable(w, collectOptions("chart", reflect.ValueOf(&common).Elem(), true))

	for _, kind := range layout.Kinds() {
		req, err := layout.NewRequest(kind)
		if err != nil {
			return err
		}
		w.Header(2, string(kind)+" chart")
		writeOptionsTable(w, collectOptions("chart."+string(kind), reflect.ValueOf(req).Elem(), false))
	}

	w.Header(2, "Example")
	w.CodeBlock("yaml", `source:
  path: data/sales.csv
labels:
  z: revenue
chart:
  color:
    type: constant
    base_color: "#3070c0"
  pie:
    vertex_count: 64
server:
  archive: layouts.db`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// collectOptions walks v by koanf tag. Squashed embedded structs are
// flattened when withSquashed is set and skipped otherwise.
func collectOptions(prefix string, v reflect.Value, withSquashed bool) []configOption {
	var opts []configOption
	t := v.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, rest, _ := strings.Cut(field.Tag.Get("koanf"), ",")
		if name == "-" {
			continue
		}
		fv := v.Field(i)

		if rest == "squash" {
			if withSquashed {
				opts = append(opts, collectOptions(prefix, fv, true)...)
			}
			continue
		}
		if name == "" {
			continue
		}
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}

		switch {
		case isLeaf(field.Type):
			opts = append(opts, configOption{Key: key, Type: typeName(field.Type), Default: formatDefault(fv)})
		case field.Type.Kind() == reflect.Map:
			// chart is documented in its own sections.
			if key == "chart" {
				continue
			}
			opts = append(opts, configOption{Key: key, Type: "map", Default: "-"})
		default:
			opts = append(opts, collectOptions(key, fv, true)...)
		}
	}
	return opts
}

func isLeaf(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer || t == durationType || t.Implements(textMarshalerType) {
		return true
	}
	return t.Kind() != reflect.Struct && t.Kind() != reflect.Map
}

func typeName(t reflect.Type) string {
	switch {
	case t == durationType:
		return "duration"
	case t.Implements(textMarshalerType):
		return "string"
	case t.Kind() == reflect.Pointer:
		return typeName(t.Elem())
	case t.Kind() == reflect.Struct:
		return "mapping"
	case t.Kind() == reflect.Array || t.Kind() == reflect.Slice:
		return "list of " + typeName(t.Elem())
	default:
		return t.Kind().String()
	}
}

func formatDefault(v reflect.Value) string {
	if v.Kind() == reflect.Pointer {
		return "-"
	}
	if m, ok := v.Interface().(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil || len(text) == 0 {
			return "-"
		}
		return InlineCode(string(text))
	}
	if v.Kind() == reflect.String && v.String() == "" {
		return "-"
	}
	return InlineCode(fmt.Sprint(v.Interface()))
}

func writeOptionsTable(w *MarkdownWriter, opts []configOption) {
	headers := []string{"Key", "Type", "Default", "Description"}
	rows := make([][]string, 0, len(opts))
	for _, o := range opts {
		rows = append(rows, []string{InlineCode(o.Key), o.Type, o.Default, optionDescriptions[o.Key]})
	}
	w.Table(headers, rows)
}
