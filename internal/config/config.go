// Package config loads the optional HCL study file. Everything in it has a
// default, so running without a config file is the common case; the file
// exists for studies whose layout or template source differs from the
// standard arrangement.
//
// Example:
//
//	study {
//	  base_dir     = env.SCRATCH
//	  tissue_types = "https://templates.example.org/desc-FreeSurferAll_dseg_with_tissue_type.tsv"
//	}
//
//	launcher {
//	  entrypoint = ["noddi-wholebrain"]
//	}
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// defaultEntrypoint is the sibling processing binary dispatched by the
// launcher when no other entry point is configured.
var defaultEntrypoint = []string{"noddi-wholebrain"}

// Study configures path resolution and the tissue-type template source.
type Study struct {
	// BaseDir roots the fixed study layout. Empty means the process working
	// directory.
	BaseDir string `hcl:"base_dir,optional"`

	// TissueTypes is a local path or http(s) URL of the FreeSurfer
	// tissue-type template. Empty means the template shipped under the base
	// directory.
	TissueTypes string `hcl:"tissue_types,optional"`
}

// Launcher configures the subprocess dispatched by noddi-launch.
type Launcher struct {
	// Entrypoint is the argv prefix of the processing entry point.
	Entrypoint []string `hcl:"entrypoint,optional"`
}

// File is the decoded study file.
type File struct {
	Study    *Study    `hcl:"study,block"`
	Launcher *Launcher `hcl:"launcher,block"`
}

// Default returns the configuration used when no study file is given.
func Default() *File {
	return &File{
		Study:    &Study{},
		Launcher: &Launcher{Entrypoint: defaultEntrypoint},
	}
}

// Load parses and decodes the study file at path. Blocks absent from the
// file keep their defaults.
func Load(path string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse study file %s: %w", path, diags)
	}

	var decoded File
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &decoded)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode study file %s: %w", path, diags)
	}

	cfg := Default()
	if decoded.Study != nil {
		cfg.Study = decoded.Study
	}
	if decoded.Launcher != nil && len(decoded.Launcher.Entrypoint) > 0 {
		cfg.Launcher = decoded.Launcher
	}

	return cfg, nil
}

// evalContext exposes the process environment to expressions in the study
// file as an `env` object, so paths can be written against cluster
// variables like env.SCRATCH.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			continue
		}
		vars[key] = cty.StringVal(value)
	}

	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": env},
	}
}
