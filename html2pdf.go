package marrow

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/marrow/internal/fileutil"
	"github.com/alnah/marrow/internal/process"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, opts *PDFOptions) ([]byte, error)
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// PDFOptions configures PDF export.
type PDFOptions struct {
	PageSize      string // "letter" (default), "a4" or "legal"
	Theme         string // page theme, "light" when empty
	ExpandOutputs bool   // print truncated notebook outputs in full
}

// Paper sizes in inches.
var paperSizes = map[string][2]float64{
	"letter": {8.5, 11},
	"a4":     {8.27, 11.69},
	"legal":  {8.5, 14},
}

const marginInches = 0.5

// paperSize returns width and height for name, letter when empty.
func paperSize(name string) (float64, float64, error) {
	if name == "" {
		name = "letter"
	}
	size, ok := paperSizes[strings.ToLower(name)]
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q (must be letter, a4, or legal)", ErrInvalidPageSize, name)
	}
	return size[0], size[1], nil
}

// ExportPDF renders path and prints the page with headless Chrome. Unlike
// Open, load failures are returned.
func (v *Viewer) ExportPDF(ctx context.Context, path string, opts PDFOptions) ([]byte, error) {
	if _, _, err := paperSize(opts.PageSize); err != nil {
		return nil, err
	}

	nb := v.nb
	if opts.ExpandOutputs {
		nb = v.expanded
	}
	view := v.open(path, nb)
	if view.Err != nil {
		return nil, view.Err
	}

	s := v.settings.For(view.Ext)
	s.Theme = "light"
	if opts.Theme != "" {
		s.Theme = opts.Theme
	}
	s.ViewMode = "github"
	s.TOCVisible = false

	page, err := v.BuildPage(view, s, "")
	if err != nil {
		return nil, err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(string(page), "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return v.pdf.RenderFromFile(ctx, tmpPath, &opts)
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	r.launcher = l
	r.browser = browser
	return nil
}

// Close releases browser resources.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		pid := r.launcher.PID()
		r.launcher.Kill()
		process.KillProcessGroup(pid)
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, opts *PDFOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfOpts, err := buildPDFOptions(opts)
	if err != nil {
		return nil, err
	}

	reader, err := page.PDF(pdfOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}
	return pdfBuf, nil
}

// buildPDFOptions constructs proto.PagePrintToPDF for the requested paper.
func buildPDFOptions(opts *PDFOptions) (*proto.PagePrintToPDF, error) {
	size := ""
	if opts != nil {
		size = opts.PageSize
	}
	width, height, err := paperSize(size)
	if err != nil {
		return nil, err
	}

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(width),
		PaperHeight:     floatPtr(height),
		MarginTop:       floatPtr(marginInches),
		MarginBottom:    floatPtr(marginInches),
		MarginLeft:      floatPtr(marginInches),
		MarginRight:     floatPtr(marginInches),
		PrintBackground: true,
	}, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
