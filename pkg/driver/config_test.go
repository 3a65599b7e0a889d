package driver

import (
	"os"
	"testing"
)

func envFrom(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestResolveConfigPrecedence(t *testing.T) {
	manifest := &Manifest{Path: "/work/minipy.yml", Name: "demo", Entry: "main.py", Trace: true, TraceFormat: "json"}
	on := true
	off := false

	cases := []struct {
		name       string
		manifest   *Manifest
		env        map[string]string
		overrides  Overrides
		wantTrace  bool
		wantFormat string
	}{
		{"defaults", nil, nil, Overrides{}, false, "console"},
		{"manifest", manifest, nil, Overrides{}, true, "json"},
		{"env beats manifest", manifest, map[string]string{EnvTrace: "0", EnvTraceFormat: "console"}, Overrides{}, false, "console"},
		{"flags beat env", manifest, map[string]string{EnvTrace: "0"}, Overrides{Trace: &on, TraceFormat: "console"}, true, "console"},
		{"flag can disable", manifest, map[string]string{EnvTrace: "yes"}, Overrides{Trace: &off}, false, "json"},
		{"blank env format ignored", nil, map[string]string{EnvTraceFormat: "  "}, Overrides{}, false, "console"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := ResolveConfig(tc.manifest, envFrom(tc.env), tc.overrides)
			if err != nil {
				t.Fatalf("ResolveConfig returned error: %v", err)
			}
			if cfg.Trace != tc.wantTrace || cfg.TraceFormat != tc.wantFormat {
				t.Fatalf("got trace=%v format=%q, want trace=%v format=%q", cfg.Trace, cfg.TraceFormat, tc.wantTrace, tc.wantFormat)
			}
		})
	}
}

func TestResolveConfigEntryFromManifest(t *testing.T) {
	manifest := &Manifest{Path: "/work/minipy.yml", Name: "demo", Entry: "src/main.py"}
	cfg, err := ResolveConfig(manifest, envFrom(nil), Overrides{})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if cfg.Entry != manifest.EntryPath() {
		t.Fatalf("Entry = %q, want %q", cfg.Entry, manifest.EntryPath())
	}
}

func TestResolveConfigRejectsBadValues(t *testing.T) {
	if _, err := ResolveConfig(nil, envFrom(map[string]string{EnvTrace: "maybe"}), Overrides{}); err == nil {
		t.Fatalf("expected invalid switch to fail")
	}
	if _, err := ResolveConfig(nil, envFrom(nil), Overrides{TraceFormat: "xml"}); err == nil {
		t.Fatalf("expected invalid trace format to fail")
	}
}

func TestResolveConfigReadsProcessEnvironment(t *testing.T) {
	t.Setenv(EnvTrace, "on")
	t.Setenv(EnvTraceFormat, "json")
	cfg, err := ResolveConfig(nil, nil, Overrides{})
	if err != nil {
		t.Fatalf("ResolveConfig returned error: %v", err)
	}
	if !cfg.Trace || cfg.TraceFormat != "json" {
		t.Fatalf("expected environment to enable json tracing, got %#v", cfg)
	}
	if _, ok := os.LookupEnv(EnvTrace); !ok {
		t.Fatalf("expected %s to be set", EnvTrace)
	}
}

func TestParseSwitch(t *testing.T) {
	for raw, want := range map[string]bool{"1": true, "TRUE": true, " on ": true, "": false, "off": false, "No": false} {
		got, err := ParseSwitch(raw)
		if err != nil || got != want {
			t.Fatalf("ParseSwitch(%q) = %v, %v; want %v", raw, got, err, want)
		}
	}
}
