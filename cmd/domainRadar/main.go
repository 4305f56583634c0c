// Package main provides the entry point for the domainRadar application.
//
// domainRadar downloads public lists of domains that are about to be
// released, drops comment lines, measures every name (length, hyphens,
// digits, vowel/consonant ratio), filters the list and prints it ranked by a
// readability score.
//
// Commands:
//
// 1. available - Print the ranked list, optionally exporting it to CSV.
//
// 2. check - Ask the Loopia API whether the best ranked domains can be registered.
//
// 3. serve - Expose the ranked list as JSON and CSV over HTTP.
package main

import "github.com/uberswe/domainRadar/internal/cli"

func main() {
	cli.Execute()
}
