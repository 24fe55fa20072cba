package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/aurum/pkg/aur"
)

// stdin is shared so buffered input survives across consecutive prompts.
var stdin = bufio.NewReader(os.Stdin)

// askYesNo prints prompt and reads one line from the terminal. Empty input
// and anything starting with y/Y count as yes; EOF counts as no.
func askYesNo(prompt string) bool {
	fmt.Printf("%s %s ", StyleHighlight.Render(prompt), StyleDim.Render("[Y/n]"))
	line, err := stdin.ReadString('\n')
	if err != nil {
		printNewline()
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "" || strings.HasPrefix(answer, "y")
}

// chooseNumbered presents pkgs as a numbered list and reads a selection.
// Invalid input reprompts; empty input skips and returns nil.
func chooseNumbered(pkgs []aur.Package) *aur.Package {
	for i, pkg := range pkgs {
		fmt.Printf("%s %s %s\n",
			StyleNumber.Render(fmt.Sprintf("%3d)", i+1)),
			StyleValue.Render(pkg.Name),
			StyleDim.Render(pkg.Version))
		if pkg.Description != "" {
			printDetail("     %s", pkg.Description)
		}
	}
	for {
		fmt.Printf("%s %s ",
			StyleHighlight.Render("Select a package"),
			StyleDim.Render(fmt.Sprintf("(1-%d, empty to skip)", len(pkgs))))
		line, err := stdin.ReadString('\n')
		if err != nil {
			printNewline()
			return nil
		}
		answer := strings.TrimSpace(line)
		if answer == "" {
			return nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > len(pkgs) {
			printWarning("Enter a number between 1 and %d", len(pkgs))
			continue
		}
		return &pkgs[n-1]
	}
}
