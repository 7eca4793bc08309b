package main

import (
	"testing"

	flag "github.com/spf13/pflag"
)

func TestAddConvertFlags_MatchFlagKeys(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	addConvertFlags(fs)

	for name := range flagKeys {
		if fs.Lookup(name) == nil {
			t.Errorf("flag --%s has a setting key but is not registered", name)
		}
	}
	if fs.ShorthandLookup("o") == nil || fs.ShorthandLookup("f") == nil || fs.ShorthandLookup("w") == nil {
		t.Error("missing shorthand for output, format or workers")
	}
}

func TestAddConvertFlags_Defaults(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	addConvertFlags(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	if v, _ := fs.GetBool("docx-title-page"); !v {
		t.Error("docx-title-page should default to true")
	}
	if v, _ := fs.GetBool("strict"); v {
		t.Error("strict should default to false")
	}
	if v, _ := fs.GetStringArray("footer"); len(v) != 0 {
		t.Errorf("footer = %v, want empty", v)
	}
}
