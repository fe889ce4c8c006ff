package cli

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/freecbt/journal/internal/store"
	"github.com/freecbt/journal/internal/thought"
)

// List prints the journal grouped by calendar day, newest first. Rows that
// fail to decode are listed afterwards by key so they can still be deleted.
func (a *App) List(ctx context.Context) error {
	results, err := a.store.Exercises(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	var thoughts []*thought.Thought
	var failed []*store.ParseError
	for _, r := range results {
		if r.OK() {
			thoughts = append(thoughts, r.Thought)
		} else {
			failed = append(failed, r.Err)
		}
	}

	for _, g := range thought.GroupByDay(thoughts) {
		fmt.Fprintln(a.out, g.Date)
		for _, t := range g.Thoughts {
			fmt.Fprintf(a.out, "  %s  %s  %s\n",
				displayID(t.UUID), a.emojiLine(t), oneLine(t.AutomaticThought))
		}
	}

	for _, pe := range failed {
		fmt.Fprintf(a.out, "failed to parse %s\n", displayID(pe.ID))
	}

	return nil
}

// Count reports the number of stored rows, decodable or not.
func (a *App) Count(ctx context.Context) error {
	n, err := a.store.Count(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}
	fmt.Fprintf(a.out, "%d thoughts\n", n)
	return nil
}

func (a *App) emojiLine(t *thought.Thought) string {
	var glyphs []string
	for _, d := range t.Distortions.Values() {
		glyphs = append(glyphs, d.Emoji())
	}
	return strings.Join(glyphs, "")
}

// oneLine flattens a multiline entry for list output.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
