// Package hcl_adapter loads interface classification rules from HCL files.
package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/mpipgo/internal/ctxlog"
	"github.com/specialistvlad/mpipgo/internal/mpip"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Loader reads `interface` blocks into classifier rules.
type Loader struct {
	defaults []mpip.InterfaceRule
}

// NewLoader creates a loader whose evaluation context exposes the built-in
// rules as `defaults`.
func NewLoader() *Loader {
	return &Loader{defaults: mpip.DefaultInterfaceRules()}
}

// fileRoot decodes the top-level blocks of a rules file.
type fileRoot struct {
	Interfaces []*interfaceBlock `hcl:"interface,block"`
	Remain     hcl.Body          `hcl:",remain"`
}

type interfaceBlock struct {
	Name  string         `hcl:"name,label"`
	Match hcl.Expression `hcl:"match"`
}

// LoadRules parses every .hcl file under paths and returns the rules in file
// order. A directory contributes its .hcl files in lexical order.
func (l *Loader) LoadRules(ctx context.Context, paths ...string) ([]mpip.InterfaceRule, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered rule files.", "count", len(files))

	parser := hclparse.NewParser()
	evalCtx := l.evalContext()

	var rules []mpip.InterfaceRule
	seen := make(map[string]string)

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}

		for _, blk := range root.Interfaces {
			if prev, ok := seen[blk.Name]; ok {
				return nil, fmt.Errorf("interface %q in %s is already defined in %s", blk.Name, file, prev)
			}
			seen[blk.Name] = file

			match, err := evalMatch(blk.Match, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("interface %q in %s: %w", blk.Name, file, err)
			}
			rules = append(rules, mpip.InterfaceRule{Interface: blk.Name, Match: match})
		}
	}

	if len(rules) == 0 {
		return nil, fmt.Errorf("no interface rules found in %v", paths)
	}
	logger.Debug("Rule loading complete.", "rules", len(rules))
	return rules, nil
}

// evalContext exposes `defaults.<interface>` and a few list helpers.
func (l *Loader) evalContext() *hcl.EvalContext {
	defaults := make(map[string]cty.Value, len(l.defaults))
	for _, rule := range l.defaults {
		defaults[rule.Interface] = stringList(rule.Match)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(defaults),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"lower":  stdlib.LowerFunc,
		},
	}
}

func evalMatch(expr hcl.Expression, evalCtx *hcl.EvalContext) ([]string, error) {
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return nil, fmt.Errorf("match must be a known list of strings")
	}

	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("match must be a list of strings: %w", err)
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, fmt.Errorf("match must be a list of strings: %w", err)
	}
	return out, nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

// findAllHCLFiles expands paths into a flat, de-duplicated list of .hcl
// files. Unlike report discovery, a missing path is an error.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing rules path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}
	return allFiles, nil
}
