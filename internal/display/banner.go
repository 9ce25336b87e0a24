package display

import (
	"fmt"
	"io"

	"github.com/backmassage/ebookmeta/internal/term"
)

// PrintBanner prints the ASCII art banner; bold cyan if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Paint(term.Cyan, ` _                 _                    _
| |__   ___   ___ | | ___ __ ___   ___| |_ __ _
| '_ \ / _ \ / _ \| |/ / '_ `+"`"+` _ \ / _ \ __/ _`+"`"+` |
| |_) | (_) | (_) |   <| | | | | |  __/ || (_| |
|_.__/ \___/ \___/|_|\_\_| |_| |_|\___|\__\__,_|
`))
	fmt.Fprintln(w)
}
