package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/text/language"

	"github.com/freecbt/journal/internal/cli/config"
	"github.com/freecbt/journal/internal/i18n"
	"github.com/freecbt/journal/internal/kv/sqlitekv"
	"github.com/freecbt/journal/internal/logging"
	"github.com/freecbt/journal/internal/store"
	"github.com/freecbt/journal/internal/thought"
)

type App struct {
	config *config.Config
	engine *sqlitekv.Engine
	store  *store.Store
	tr     *i18n.Translator
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	engine, err := sqlitekv.Open(ctx, c.DBPath)
	if err != nil {
		log.Printf("error opening journal database: %s", err.Error())
		return nil, err
	}

	tag, err := language.Parse(c.Locale)
	if err != nil {
		log.Printf("unknown locale %q, falling back to English", c.Locale)
		tag = language.English
	}

	logger := logging.NewSlogLogger(slog.Default())

	return &App{
		config: c,
		engine: engine,
		store:  store.New(engine, logger),
		tr:     i18n.New(tag),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close()
	a.Root(ctx)
}

// Close releases the underlying database.
func (a *App) Close() {
	if a.engine != nil {
		_ = a.engine.Close()
	}
}

func (a *App) Root(ctx context.Context) {

	if Interactive() {
		printlnFn("FreeCBT journal (type 'help' for commands)")
	}
	scanner := bufio.NewScanner(os.Stdin)

	runREPL(ctx, a, func() string { return a.getStatus(ctx) }, scanner)
}

// getStatus renders the prompt decoration: the stored thought count, when it
// can be read.
func (a *App) getStatus(ctx context.Context) string {
	n, err := a.store.Count(ctx)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("(%d)", n)
}

// storageKey normalizes a user-entered id: bare uuids get the thought prefix,
// full keys pass through.
func storageKey(id string) string {
	if strings.HasPrefix(id, thought.KeyPrefix) {
		return id
	}
	return thought.Key(id)
}

// displayID strips the storage prefix for user-facing output.
func displayID(key string) string {
	return strings.TrimPrefix(key, thought.KeyPrefix)
}
