package cli

import (
	"context"
	"fmt"
	"log"
)

// Show prints one thought in full. An empty id triggers an interactive
// prompt.
func (a *App) Show(ctx context.Context, id string) error {

	if id == "" {
		var err error
		id, err = GetSimpleText(a.reader, "Enter thought id to show", a.out)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	t, err := a.store.Read(ctx, storageKey(id))
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	fmt.Fprintf(a.out, "id: %s\n", displayID(t.UUID))
	fmt.Fprintf(a.out, "created: %s\n", t.CreatedAt.Local())
	fmt.Fprintf(a.out, "updated: %s\n", t.UpdatedAt.Local())
	fmt.Fprintf(a.out, "Automatic thought: %s\n", t.AutomaticThought)
	for _, d := range t.Distortions.Values() {
		fmt.Fprintf(a.out, "  %s %s: %s\n", d.Emoji(), d.Label(a.tr), d.Description(a.tr))
	}
	fmt.Fprintf(a.out, "Challenge: %s\n", t.Challenge)
	fmt.Fprintf(a.out, "Alternative thought: %s\n", t.AlternativeThought)

	return nil
}

// Delete removes one thought after confirmation. An empty id triggers an
// interactive prompt.
func (a *App) Delete(ctx context.Context, id string) error {

	if id == "" {
		var err error
		id, err = GetSimpleText(a.reader, "Enter thought id to delete", a.out)
		if err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	ok, err := GetConfirm(a.reader, "Delete this thought?", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if !ok {
		printlnFn("Cancelled")
		return nil
	}

	a.store.Remove(ctx, storageKey(id))
	fmt.Fprintf(a.out, "Deleted %s\n", displayID(storageKey(id)))
	return nil
}
