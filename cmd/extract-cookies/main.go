// Package main prints the browser session cookies that the platform
// clients can use, as environment variable assignments.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/codeGROOVE-dev/bloggerdesk/pkg/auth"
	"github.com/codeGROOVE-dev/bloggerdesk/pkg/logging"
)

func main() {
	listPlatforms := flag.Bool("list", false, "List supported platforms and their cookies")
	platformFilter := flag.String("platform", "", "Only read cookies of this platform")
	verbose := flag.Bool("v", false, "Log cookie store errors")
	flag.Parse()

	if *listPlatforms {
		printPlatformList(os.Stdout)
		return
	}

	if *platformFilter != "" {
		if _, ok := auth.SpecFor(*platformFilter); !ok {
			fmt.Fprintf(os.Stderr, "unknown platform %q; see -list\n", *platformFilter)
			os.Exit(2)
		}
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(os.Stderr, level, true)

	results := extractCookies(context.Background(), auth.NewBrowserSource(logger), logger, *platformFilter)
	if len(results) == 0 {
		fmt.Fprintln(os.Stderr, "No cookies found. Log in to Instagram or TikTok in a local browser first.")
		os.Exit(1)
	}
	printResults(os.Stdout, results)
}

func printPlatformList(w io.Writer) {
	fmt.Fprintln(w, "Supported platforms and cookies:")
	for _, s := range auth.Specs {
		fmt.Fprintf(w, "\n  %s:\n", s.Name)
		fmt.Fprintf(w, "    Domain:  %s\n", s.Domain)
		fmt.Fprintf(w, "    Cookies: %s\n", strings.Join(s.Cookies, ", "))
		fmt.Fprintf(w, "    Env:     %s_<COOKIE>\n", s.EnvPrefix)
	}
}

type cookieResult struct {
	cookies map[string]string
	spec    auth.Spec
}

func extractCookies(ctx context.Context, source auth.Source, logger *slog.Logger, platformFilter string) []cookieResult {
	var results []cookieResult
	for _, s := range auth.Specs {
		if platformFilter != "" && s.Name != platformFilter {
			continue
		}
		cookies, err := source.Cookies(ctx, s.Name)
		if err != nil {
			logger.DebugContext(ctx, "failed to read cookies", "platform", s.Name, "error", err)
			continue
		}
		if len(cookies) > 0 {
			results = append(results, cookieResult{spec: s, cookies: cookies})
		}
	}
	return results
}

// printResults writes one block per platform, cookies ordered as in auth.Specs.
func printResults(w io.Writer, results []cookieResult) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "# %s\n", strings.ToUpper(r.spec.Name))
		for _, name := range r.spec.Cookies {
			if v, ok := r.cookies[name]; ok {
				fmt.Fprintf(w, "%s=%s\n", r.spec.EnvName(name), v)
			}
		}
	}
}
