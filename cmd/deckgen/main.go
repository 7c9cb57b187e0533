package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/roscolil/scopeiq"
	"github.com/roscolil/scopeiq/pkg/chart"
	"github.com/roscolil/scopeiq/pkg/pptx"
	"github.com/roscolil/scopeiq/pkg/render"
)

func main() {
	app := kingpin.New("deckgen", "ScopeIQ deck generator")
	app.HelpFlag.Short('h')

	build := app.Command("build", "Build the ScopeIQ go-to-market deck").Default()
	var (
		out      = build.Flag("output", "Output file (.pptx or .pdf)").Short('o').Default("ScopeIQ_GTM_Architecture.pptx").String()
		chartDir = build.Flag("charts", "Directory for rendered chart images").Default("charts").String()
		parallel = build.Flag("parallel", "Render chart images concurrently").Short('p').Bool()
		logLevel = build.Flag("log-level", "Log level (debug|info|warning|error|none)").Default("warning").String()
	)

	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	var err error
	switch command {
	case "build":
		scopeiq.SetLogLevel(*logLevel)
		err = doBuild(*out, *chartDir, *parallel)
	default:
		err = fmt.Errorf("unknown command: %q", command)
	}

	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func doBuild(out, chartDir string, parallel bool) error {
	b := scopeiq.NewBuilder(scopeiq.DefaultStyle(), chart.NewRenderer())
	b.SetChartDir(chartDir)
	b.SetParallel(parallel)

	plan, err := deckPlan()
	if err != nil {
		return err
	}

	p, err := b.Build(plan)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(out)) {
	case ".pptx":
		err = pptx.NewWriter(b.Style()).Save(p, out)
	case ".pdf":
		err = render.NewContext(b.Style()).SavePDF(p, out)
	default:
		return fmt.Errorf("unsupported output format %q, want .pptx or .pdf", filepath.Ext(out))
	}
	if err != nil {
		return err
	}

	fmt.Printf("Saved %v\n", out)
	return nil
}
