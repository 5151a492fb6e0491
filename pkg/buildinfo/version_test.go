package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestMerge(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	got := merge(Info{Version: "dev", Commit: "none", Date: "unknown"}, bi)
	want := Info{Version: "v0.4.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}
	if got != want {
		t.Errorf("merge(defaults) = %+v, want %+v", got, want)
	}

	stamped := Info{Version: "v1.0.0", Commit: "fff", Date: "today"}
	if got := merge(stamped, bi); got != stamped {
		t.Errorf("merge overrode ldflags values: %+v", got)
	}

	bi.Main.Version = "(devel)"
	if got := merge(Info{Version: "dev"}, bi); got.Version != "dev" {
		t.Errorf("devel build version = %q, want dev", got.Version)
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1", Commit: "c", Date: "d"}.String()
	if s != "version: v1\ncommit: c\nbuilt: d" {
		t.Errorf("String() = %q", s)
	}
	if !strings.Contains(Template(), "{{.Name}} version ") {
		t.Error("Template() lost the cobra name placeholder")
	}
}
