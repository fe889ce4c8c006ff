package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/freecbt/journal/internal/export"
	"github.com/freecbt/journal/internal/filex"
)

// exportDir is created next to wherever the CLI runs.
const exportDir = "export"

// Export renders the journal in the requested format and writes it into the
// export directory. The archive format additionally prints the string so it
// can be copied straight into another device's import prompt.
func (a *App) Export(ctx context.Context, format string) error {

	var name, body string

	switch format {
	case "md", "markdown":
		ts, err := a.store.ValidExercises(ctx)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		name, body = "FreeCBT.md", export.Markdown(ts, a.tr)

	case "csv":
		ts, err := a.store.ValidExercises(ctx)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		name, body = "FreeCBT.csv", export.CSV(ts)

	case "json":
		ar, err := a.store.ReadArchive(ctx)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		body, err = export.ArchiveJSON(ar)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		name = "FreeCBT.json"

	case "archive", "backup":
		enc, err := a.store.ReadArchiveString(ctx)
		if err != nil {
			log.Println(err.Error())
			return err
		}
		name, body = "FreeCBT-backup.txt", enc
		fmt.Fprintln(a.out, enc)

	default:
		printlnFn("Usage: export md|csv|json|archive")
		return nil
	}

	dir, err := filex.EnsureSubDir(exportDir)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	path, err := filex.WriteExport(dir, name, body)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}
