// Command schema-generator writes the covview.yml JSON Schemas: the
// composed document and one file per section.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/grovetools/covview/cmd"
	"github.com/grovetools/covview/config"
	"github.com/grovetools/covview/logging"
	"github.com/grovetools/covview/tui"
)

func main() {
	outputDir := pflag.StringP("out", "o", "schema/definitions", "Directory to write the schemas to")
	composedOnly := pflag.Bool("composed-only", false, "Only write covview.schema.json")
	pflag.Parse()

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		log.Fatalf("creating %s: %v", *outputDir, err)
	}

	outputs := []struct {
		name     string
		generate func() ([]byte, error)
	}{
		{"covview.schema.json", cmd.ConfigSchema},
		{"base.schema.json", config.GenerateSchema},
		{"logging.schema.json", logging.GenerateSchema},
		{"tui.schema.json", tui.GenerateSchema},
	}
	if *composedOnly {
		outputs = outputs[:1]
	}

	for _, o := range outputs {
		data, err := o.generate()
		if err != nil {
			log.Fatalf("generating %s: %v", o.name, err)
		}
		path := filepath.Join(*outputDir, o.name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			log.Fatalf("writing %s: %v", path, err)
		}
		log.Printf("Wrote %s", path)
	}
}
