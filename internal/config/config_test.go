package config

import "testing"

func TestRefSourceRequiresExactlyOne(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
		want    RefSourceKind
	}{
		{"none", Config{}, true, RefSourceNone},
		{"prefix list only", Config{PrefixListPath: "p.txt"}, false, RefSourcePrefixList},
		{"path prefixes only", Config{PathPrefixes: []string{"a", "b"}}, false, RefSourcePathPrefixes},
		{"positional tags only", Config{RefTags: []string{"R1"}}, false, RefSourcePositionalTags},
		{"two sources", Config{PrefixListPath: "p.txt", RefTags: []string{"R1"}}, true, RefSourceNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.cfg.RefSource()
			if tc.wantErr && err == nil {
				t.Fatalf("expected an error for %s", tc.name)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %s: %v", tc.name, err)
			}
			if got != tc.want {
				t.Fatalf("expected kind %v, got %v", tc.want, got)
			}
		})
	}
}

func TestValidateOutputRequiresExactlyOne(t *testing.T) {
	if (Config{}).ValidateOutput() == nil {
		t.Fatalf("expected error when neither --output-dir nor --stdout is set")
	}
	if (Config{OutputDir: "out", Stdout: true}).ValidateOutput() == nil {
		t.Fatalf("expected error when both --output-dir and --stdout are set")
	}
	if err := (Config{OutputDir: "out"}).ValidateOutput(); err != nil {
		t.Fatalf("unexpected error for output-dir only: %v", err)
	}
	if err := (Config{Stdout: true}).ValidateOutput(); err != nil {
		t.Fatalf("unexpected error for stdout only: %v", err)
	}
}
