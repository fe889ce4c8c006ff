package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/freecbt/journal/internal/distortion"
	"github.com/freecbt/journal/internal/thought"
)

// New runs the guided exercise: automatic thought, distortion selection,
// challenge, alternative thought, then saves the result.
func (a *App) New(ctx context.Context) error {

	auto, err := GetMultiline(a.reader, "What are you thinking?", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	slugs, err := a.pickDistortions()
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	chal, err := GetMultiline(a.reader, "How could you challenge this thought?", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	alt, err := GetMultiline(a.reader, "What is a more balanced way to see it?", a.out)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	t, err := thought.Create(thought.CreateArgs{
		AutomaticThought:   auto,
		Challenge:          chal,
		AlternativeThought: alt,
		Distortions:        slugs,
	})
	if err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}

	if err := a.store.Write(ctx, t); err != nil {
		log.Printf("Error: %s", err.Error())
		return err
	}
	a.store.SetExistingUser(ctx)

	fmt.Fprintf(a.out, "Saved %s\n", displayID(t.UUID))
	return nil
}

// pickDistortions shows the catalog in the user's locale and reads a
// space-separated selection of numbers or slugs. An empty line selects none.
func (a *App) pickDistortions() ([]string, error) {
	ds := distortion.SortedList(a.tr)
	for i, d := range ds {
		fmt.Fprintf(a.out, "%2d. %s %s\n", i+1, d.Emoji(), d.Label(a.tr))
	}

	line, err := GetSimpleText(a.reader, "Which distortions apply? (numbers or slugs, space-separated)", a.out)
	if err != nil {
		return nil, err
	}

	var slugs []string
	for _, tok := range strings.Fields(line) {
		if n, err := strconv.Atoi(tok); err == nil {
			if n < 1 || n > len(ds) {
				return nil, fmt.Errorf("no distortion number %d", n)
			}
			slugs = append(slugs, ds[n-1].Slug())
			continue
		}
		slugs = append(slugs, tok)
	}
	return slugs, nil
}
