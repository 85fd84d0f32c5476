// letter_cli 在本機編碼、解碼信件 URL, 不需要啟動 web service.
//
//	letter_cli encode --message "ありがとう" --to 母 --from 太郎
//	letter_cli decode "https://otodokelife.com/letter#..."
//	letter_cli classify "メッセージ"
//	letter_cli sitemap --out public/sitemap.xml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"otodoke_life/internal/letter/app"
	"otodoke_life/internal/letter/codec"
	"otodoke_life/internal/letter/domain"
	"otodoke_life/internal/site"
	"otodoke_life/pkg"

	"github.com/spf13/pflag"
)

const defaultBaseURL = "https://otodokelife.com"

type command func(args []string, stdout io.Writer) error

var commands = map[string]command{
	"encode":   runEncode,
	"decode":   runDecode,
	"classify": runClassify,
	"sitemap":  runSitemap,
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintf(stdout, "Usage: letter_cli <%s> [flags]\n", strings.Join(pkg.SortedKeys(commands), "|"))
		return nil
	}
	if !pkg.Contains(pkg.SortedKeys(commands), args[0]) {
		return fmt.Errorf("unknown command %q", args[0])
	}
	return commands[args[0]](args[1:], stdout)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("letter_cli "+name, pflag.ContinueOnError)
	fs.SortFlags = false
	return fs
}

func runEncode(args []string, stdout io.Writer) error {
	var in domain.ComposerInput
	var schemeName, baseURL string
	var offset int
	var asJSON bool

	fs := newFlagSet("encode")
	fs.StringVarP(&in.Message, "message", "m", "", "message body (required)")
	fs.StringVar(&in.RecipientName, "to", "", "recipient name (default 匿名)")
	fs.StringVar(&in.WriterName, "from", "", "writer name")
	fs.StringVar(&schemeName, "scheme", string(domain.SchemeCompact), "legacy or compact")
	fs.StringVar(&baseURL, "base-url", defaultBaseURL, "site origin used for the letter URL")
	fs.IntVar(&offset, "utc-offset", 9, "hours east of UTC used for the date")
	fs.BoolVar(&asJSON, "json", false, "print the full result as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	scheme, err := domain.ParseScheme(schemeName)
	if err != nil {
		return err
	}

	letters := app.NewLetterUseCase(codec.NewWithOffset(offset), nil, baseURL, scheme)
	res, err := letters.Compose(context.Background(), in, scheme)
	if err != nil {
		return err
	}

	if asJSON {
		return writeJSON(stdout, res)
	}
	fmt.Fprintln(stdout, res.LetterURL)
	return nil
}

func runDecode(args []string, stdout io.Writer) error {
	var offset int

	fs := newFlagSet("decode")
	fs.IntVar(&offset, "utc-offset", 9, "hours east of UTC used for the date")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("decode takes exactly one letter URL or fragment")
	}

	record, err := codec.NewWithOffset(offset).DecodeFragment(codec.FragmentFromURL(fs.Arg(0)))
	if err != nil {
		return err
	}
	return writeJSON(stdout, record)
}

func runClassify(args []string, stdout io.Writer) error {
	fs := newFlagSet("classify")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := domain.ClassifyLength(strings.Join(fs.Args(), " "))
	fmt.Fprintf(stdout, "%s\t%d/%d\t%s\n", c.Status, c.Length, c.Max, c.Label)
	return nil
}

func runSitemap(args []string, stdout io.Writer) error {
	var baseURL, out string

	fs := newFlagSet("sitemap")
	fs.StringVar(&baseURL, "base-url", defaultBaseURL, "site origin")
	fs.StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	body, err := site.Sitemap(baseURL, time.Now())
	if err != nil {
		return err
	}
	if out == "" {
		_, err = stdout.Write(body)
		return err
	}
	return os.WriteFile(out, body, 0o644)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
