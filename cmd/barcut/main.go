// BarCut - 1D cutting stock optimizer
//
// Plans how to cut requested lengths out of stock bars, comparing
// First-Fit-Decreasing, Best-Fit-Decreasing and a genetic search.
//
// Build:
//   go build -o barcut ./cmd/barcut
//
// Example:
//   barcut optimize --stock 6000x4 --cut 1200x6 --cut 2400x2 --pdf plan.pdf

package main

import "github.com/piwi3910/BarCut/cmd/barcut/commands"

func main() {
	commands.Execute()
}
