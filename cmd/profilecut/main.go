// profilecut turns cut optimisation and assembly list exports of aluminium
// window projects into a per-position profile report.
//
// Build:
//
//	go build -o profilecut ./cmd/profilecut
//
// Usage:
//
//	profilecut report --cut cut.xlsx --assembly assembly.xlsx --pdf report.pdf
//	profilecut layout --cut cut.xlsx --compare
//	profilecut config init
package main

import (
	"fmt"
	"os"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}
