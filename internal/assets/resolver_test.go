package assets

import (
	"errors"
	"testing"
)

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	t.Run("empty path uses embedded only", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver("")
		if err != nil {
			t.Fatalf("NewAssetResolver(\"\") error = %v", err)
		}
		if resolver.HasCustomLoader() {
			t.Error("expected no custom loader for empty path")
		}
	})

	t.Run("valid custom path", func(t *testing.T) {
		t.Parallel()

		resolver, err := NewAssetResolver(t.TempDir())
		if err != nil {
			t.Fatalf("NewAssetResolver() error = %v", err)
		}
		if !resolver.HasCustomLoader() {
			t.Error("expected custom loader for valid path")
		}
	})

	t.Run("invalid custom path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewAssetResolver("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewAssetResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "scripts", DefaultName+".js", "custom();")
	writeAsset(t, dir, "templates", "extra.html", "<p>extra</p>")

	resolver, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	embedded := NewEmbeddedLoader()

	t.Run("custom asset wins", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadScript(DefaultName)
		if err != nil || got != "custom();" {
			t.Errorf("LoadScript() = %q, %v, want custom", got, err)
		}
	})

	t.Run("custom-only asset", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadTemplate("extra")
		if err != nil || got != "<p>extra</p>" {
			t.Errorf("LoadTemplate(extra) = %q, %v", got, err)
		}
	})

	t.Run("missing custom falls back to embedded", func(t *testing.T) {
		t.Parallel()

		got, err := resolver.LoadStyle(DefaultName)
		if err != nil {
			t.Fatalf("LoadStyle() error = %v", err)
		}
		want, _ := embedded.LoadStyle(DefaultName)
		if got != want {
			t.Error("LoadStyle() did not return the embedded style")
		}
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadTemplate("nonexistent")
		if !errors.Is(err, ErrTemplateNotFound) {
			t.Errorf("error = %v, want ErrTemplateNotFound", err)
		}
	})

	t.Run("validation error is not masked", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.LoadStyle("a.b")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestIsNotFoundError(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		err  error
		want bool
	}{
		{err: ErrStyleNotFound, want: true},
		{err: ErrScriptNotFound, want: true},
		{err: ErrTemplateNotFound, want: true},
		{err: ErrAssetRead, want: false},
		{err: ErrPathTraversal, want: false},
	} {
		if got := isNotFoundError(tt.err); got != tt.want {
			t.Errorf("isNotFoundError(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
