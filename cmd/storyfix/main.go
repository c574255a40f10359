package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"storydesk/internal/logger"
	"storydesk/internal/storytext"
)

type options struct {
	alsoRead    string
	priceAction string
	readNext    string
	existing    string
	sourceURL   string
	outlet      string
}

func main() {
	slog.SetDefault(logger.New("storyfix"))

	var opts options
	flag.StringVar(&opts.alsoRead, "also-read", "", "Also Read line to place after What To Know")
	flag.StringVar(&opts.priceAction, "price-action", "", "price action line for the story tail")
	flag.StringVar(&opts.readNext, "read-next", "", "Read Next line that closes the story")
	flag.StringVar(&opts.existing, "existing", "", "file with the previous version; kept when stdin lost hyperlinks")
	flag.StringVar(&opts.sourceURL, "source-url", "", "source article to link on the reported keyword")
	flag.StringVar(&opts.outlet, "outlet", "", "outlet name for the source link, resolved from -source-url when empty")
	flag.Parse()

	if err := run(os.Stdin, os.Stdout, opts); err != nil {
		slog.Error("storyfix failed", "error", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer, opts options) error {
	raw, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read story: %w", err)
	}
	story := string(raw)

	if opts.existing != "" {
		previous, err := os.ReadFile(opts.existing)
		if err != nil {
			return fmt.Errorf("read existing story: %w", err)
		}
		story = storytext.PreserveHyperlinks(string(previous), story)
	}

	if opts.sourceURL != "" {
		outlet := opts.outlet
		if outlet == "" {
			outlet = storytext.OutletNameFromURL(opts.sourceURL)
		}
		story = storytext.InsertLinkOnReported(story, outlet, opts.sourceURL)
	}

	story = storytext.FixAlsoReadPlacement(story, opts.alsoRead)
	story = storytext.EnsureProperPriceActionPlacement(story, opts.priceAction, opts.readNext)

	slog.Debug("story fixed", "links", storytext.CountLinks(story))

	_, err = fmt.Fprintln(out, story)
	return err
}
