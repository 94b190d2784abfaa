package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed pairs.txt
var FS embed.FS

// PairLines returns the embedded dictionary as raw "source<TAB>target" lines,
// with blanks and # comments stripped.
func PairLines() ([]string, error) {
	f, err := FS.Open("pairs.txt")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
