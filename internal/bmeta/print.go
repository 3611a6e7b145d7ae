// Package bmeta выводит сведения о сборке, заданные через -ldflags.
package bmeta

import (
	"fmt"
	"io"
)

const defaultBuildMeta = "N/A"

// Info версия, дата и коммит сборки.
type Info struct {
	Version string
	Date    string
	Commit  string
}

func (i Info) withDefaults() Info {
	for _, f := range []*string{&i.Version, &i.Date, &i.Commit} {
		if *f == "" {
			*f = defaultBuildMeta
		}
	}
	return i
}

// Fprint пишет сведения о сборке в w. Пустые значения заменяются на N/A.
func Fprint(w io.Writer, info Info) error {
	info = info.withDefaults()
	_, err := fmt.Fprintf(w, "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
		info.Version, info.Date, info.Commit)
	if err != nil {
		return fmt.Errorf("print build meta: %w", err)
	}
	return nil
}
