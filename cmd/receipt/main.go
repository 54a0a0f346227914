// Command receipt prints the receipt summary for entries read as rows of
// date,type,amount[,quantity] from a CSV file, an .xlsx workbook or stdin.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"receipts/internal/cli"
	"receipts/internal/config"
	"receipts/internal/core"
	applog "receipts/internal/log"
	"receipts/internal/report"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()

	var (
		from     = flag.String("from", "", "sender name for the closing line")
		to       = flag.String("to", "", "recipient name for the greeting")
		locale   = flag.String("locale", cfg.NumberLocale, "BCP 47 locale for number grouping; empty disables grouping")
		currency = flag.String("currency", cfg.CurrencySymbol, "currency symbol")
		layout   = flag.String("date-layout", cfg.DateLayout, "Go time layout for date labels")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: receipt [flags] [file.csv|file.xlsx]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := cli.SetupLogger(os.Stderr, cfg.LogLevel, applog.ComponentCLI)
	if err := run(os.Stdout, flag.Args(), *locale, *currency, *layout, report.Recipients{From: *from, To: *to}); err != nil {
		logger.Error("Failed to build receipt", applog.FieldError, err)
		os.Exit(1)
	}
}

func run(out io.Writer, args []string, locale, currency, layout string, rc report.Recipients) error {
	var in io.Reader = os.Stdin
	read := cli.ReadEntries
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
		if strings.EqualFold(filepath.Ext(args[0]), ".xlsx") {
			read = cli.ReadXLSX
		}
	}

	formatter, err := report.NewFormatter(locale, currency, layout)
	if err != nil {
		return err
	}
	entries, err := read(in, core.UUIDGenerator{})
	if err != nil {
		return err
	}
	r, ok := report.NewBuilder(formatter).Build(entries)
	if !ok {
		return fmt.Errorf("no entries")
	}
	_, err = io.WriteString(out, r.Text(rc))
	return err
}
