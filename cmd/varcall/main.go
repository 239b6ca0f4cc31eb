// Command varcall aligns sample sequences against a reference and calls their variants with freebayes and bcftools.
package main

import "github.com/askiada/go-varcall/internal/cli"

func main() {
	cli.Execute()
}
