package cli

import (
	"context"
	"fmt"
	"log"
	"os"
)

// Import replaces the whole journal from an archive string. The input may be
// the string itself or a path to a file holding it. The replace is
// destructive, so it is confirmed first, and a string that fails to decode
// leaves the journal untouched.
func (a *App) Import(ctx context.Context) error {

	src, err := GetSimpleText(a.reader, "Paste an archive string, or enter the path of a backup file", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if data, rerr := os.ReadFile(src); rerr == nil {
		src = string(data)
	}

	ok, err := GetConfirm(a.reader, "Importing replaces every existing thought. Continue?", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.store.WriteArchiveString(ctx, src); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.store.SetExistingUser(ctx)

	n, err := a.store.Count(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Imported %d thoughts\n", n)
	return nil
}
