package utils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestIsLowerASCII(t *testing.T) {
	cases := map[string]bool{
		"":      true,
		"hello": true,
		"Hello": false,
		"it's":  false,
		"abc1":  false,
		"café":  false,
		"zz":    true,
	}
	for in, want := range cases {
		if got := IsLowerASCII(in); got != want {
			t.Errorf("IsLowerASCII(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNormalizeWord(t *testing.T) {
	if got := NormalizeWord("  HeLLo\t"); got != "hello" {
		t.Errorf("NormalizeWord = %q, want %q", got, "hello")
	}
}

func TestSplitCommand(t *testing.T) {
	cmd, args := SplitCommand("  INSERT  Cat 10 ")
	if cmd != "insert" {
		t.Errorf("command = %q, want insert", cmd)
	}
	if len(args) != 2 || args[0] != "Cat" || args[1] != "10" {
		t.Errorf("args = %v", args)
	}
	if cmd, args := SplitCommand("   "); cmd != "" || args != nil {
		t.Errorf("blank line split into %q %v", cmd, args)
	}
}

func TestScoreRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 1, 10, 5.25, 3.1415926535, 1e-9, 7.12e21} {
		got, err := ParseScore(" " + FormatScore(s) + " ")
		if err != nil {
			t.Fatalf("ParseScore(%v): %v", s, err)
		}
		if got != s {
			t.Errorf("round trip of %v gave %v", s, got)
		}
	}
}

func TestFormatWithCommas(t *testing.T) {
	cases := map[int]string{0: "0", 999: "999", 1000: "1,000", 50000: "50,000", 1234567: "1,234,567", -4200: "-4,200"}
	for in, want := range cases {
		if got := FormatWithCommas(in); got != want {
			t.Errorf("FormatWithCommas(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestWriteFileWith(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := WriteFileWith(path, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello\n")
		return err
	}); err != nil {
		t.Fatalf("WriteFileWith: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello\n" {
		t.Errorf("content = %q", data)
	}

	boom := errors.New("boom")
	if err := WriteFileWith(path, func(io.Writer) error { return boom }); !errors.Is(err, boom) {
		t.Errorf("expected fill error, got %v", err)
	}
}

func TestCheckDirStatus(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cfg")
	res := CheckDirStatus(dir)
	if !res.Exists || !res.Writable || res.Error != nil {
		t.Errorf("unexpected status %+v", res)
	}
	if !FileExists(dir) {
		t.Errorf("directory %s was not created", dir)
	}
}

func TestTOMLTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[trie]\ncache_cap = \"big\"\n\n[dict]\nmax_words = 10\nskip_foreign = true\n\n[log]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := ReadTOMLTable(path)
	if err != nil {
		t.Fatal(err)
	}
	trie, ok := table.Section("trie")
	if !ok {
		t.Fatal("missing [trie]")
	}
	if _, ok := trie.Int("cache_cap"); ok {
		t.Errorf("string value must not read as int")
	}
	dict, _ := table.Section("dict")
	if n, ok := dict.Int("max_words"); !ok || n != 10 {
		t.Errorf("max_words = %d, %v", n, ok)
	}
	if b, ok := dict.Bool("skip_foreign"); !ok || !b {
		t.Errorf("skip_foreign = %v, %v", b, ok)
	}
	logSection, _ := table.Section("log")
	if s, ok := logSection.String("level"); !ok || s != "debug" {
		t.Errorf("level = %q, %v", s, ok)
	}
	if _, ok := table.Section("server"); ok {
		t.Errorf("absent section reported present")
	}
}

func TestDecodeTOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("name = \"x\"\nextra = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	var v struct {
		Name string `toml:"name"`
	}
	if err := DecodeTOMLFile(path, &v); err != nil {
		t.Fatal(err)
	}
	if v.Name != "x" {
		t.Errorf("name = %q", v.Name)
	}

	if err := os.WriteFile(path, []byte("name = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := DecodeTOMLFile(path, &v); err == nil {
		t.Errorf("expected a type error")
	}
}
