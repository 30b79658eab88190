package clack

import (
	"fmt"
	stdio "io"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dzonerzy/go-clack/internal/trace"
)

// DefaultMap is the path-keyed override table consulted between
// environment variables and static defaults. Keys at one level are
// parameter destination names; a nested map under a subcommand's name
// scopes defaults to that subtree.
//
//	debug: true
//	serve:
//	  port: 9000
type DefaultMap map[string]any

// Lookup walks the map along the command path (root excluded) and
// returns the entry for the destination name at that level.
func (m DefaultMap) Lookup(path []string, name string) (any, bool) {
	cur := map[string]any(m)
	for _, segment := range path {
		switch next := cur[segment].(type) {
		case map[string]any:
			cur = next
		case DefaultMap:
			// Programmatically merged subtrees keep the named type.
			cur = map[string]any(next)
		default:
			return nil, false
		}
	}
	v, ok := cur[name]
	switch v.(type) {
	case map[string]any, DefaultMap:
		// A subtree is a scope, never a value.
		return nil, false
	}
	return v, ok
}

// Merge overlays src onto the map, descending into nested scopes so a
// later file can override single keys without clobbering whole
// subtrees.
func (m DefaultMap) Merge(src DefaultMap) {
	mergeNested(m, src)
}

func mergeNested(dst, src map[string]any) {
	for key, srcVal := range src {
		srcMap, srcIsMap := srcVal.(map[string]any)
		if !srcIsMap {
			dst[key] = srcVal
			continue
		}
		dstMap, dstIsMap := dst[key].(map[string]any)
		if !dstIsMap {
			copied := make(map[string]any, len(srcMap))
			mergeNested(copied, srcMap)
			dst[key] = copied
			continue
		}
		mergeNested(dstMap, srcMap)
	}
}

// DecodeDefaultMap reads a YAML document into a DefaultMap.
func DecodeDefaultMap(r stdio.Reader) (DefaultMap, error) {
	var m map[string]any
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding default map: %w", err)
	}
	return DefaultMap(m), nil
}

// LoadDefaultMap reads a YAML file into a DefaultMap.
func LoadDefaultMap(path string) (DefaultMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loading default map: %w", err)
	}
	defer f.Close()
	return DecodeDefaultMap(f)
}

// envChain resolves environment lookups through explicit overrides,
// then loaded dotenv files, then the process environment. Nothing
// mutates the process environment; dotenv files are read, not applied.
type envChain struct {
	overrides map[string]string
	dotenv    map[string]string
}

func (e *envChain) loadDotenv(files ...string) {
	if e.dotenv == nil {
		e.dotenv = make(map[string]string)
	}
	for _, file := range files {
		values, err := godotenv.Read(file)
		if err != nil {
			trace.Warn("dotenv file skipped", "file", file, "err", err)
			continue
		}
		for k, v := range values {
			if _, exists := e.dotenv[k]; !exists {
				e.dotenv[k] = v
			}
		}
	}
}

func (e *envChain) lookup(name string) (string, bool) {
	if v, ok := e.overrides[name]; ok {
		return v, true
	}
	if v, ok := e.dotenv[name]; ok {
		return v, true
	}
	return os.LookupEnv(name)
}
