package layout

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"nexus/models"
)

func TestLayoutRendersProvidedContent(t *testing.T) {
	content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := w.Write([]byte("<main>content</main>"))
		return err
	})

	var buf bytes.Buffer
	if err := Layout("Nexus", models.DefaultDarkTheme, content).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "<title>Nexus</title>") {
		t.Fatalf("expected document title to be rendered: %s", out)
	}
	if !strings.Contains(out, "<main>content</main>") {
		t.Fatalf("expected content in output: %s", out)
	}
	if !strings.Contains(out, "--background:"+models.DefaultDarkTheme.Background) {
		t.Fatalf("expected theme variables on root element: %s", out)
	}
}

func TestLayoutEscapesTitle(t *testing.T) {
	var buf bytes.Buffer
	if err := Layout("<script>x</script>", models.DefaultLightTheme, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render layout: %v", err)
	}
	if strings.Contains(buf.String(), "<title><script>") {
		t.Fatalf("expected title to be escaped: %s", buf.String())
	}
}

func TestContainerClassReflectsLayout(t *testing.T) {
	if ContainerClass(models.LayoutGrid) == ContainerClass(models.LayoutList) {
		t.Fatal("expected different container class depending on layout")
	}
	if !strings.Contains(ContainerClass(""), "grid") {
		t.Fatal("expected grid as the fallback layout")
	}
}
