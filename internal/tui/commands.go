package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/julmat/internal/catalog"
	"github.com/theirongolddev/julmat/internal/cli"
	"github.com/theirongolddev/julmat/internal/model"
	"github.com/theirongolddev/julmat/internal/store"
)

type loadedMsg struct {
	cat *catalog.Catalog
}

type loadFailedMsg struct {
	err error
}

type toggledMsg struct {
	id    string
	entry model.Entry
	err   error
}

type importedMsg struct {
	text string
	err  error
}

type exportedMsg struct {
	text string
	err  error
}

type resetMsg struct {
	err error
}

type clearMessageMsg struct {
	id int
}

// loadCmd fetches the catalog and restores persisted status. The status
// load never fails; only the catalog can.
func loadCmd(src string, opts catalog.Options, st *store.Store) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		cat, err := catalog.Load(ctx, src, opts)
		if err != nil {
			return loadFailedMsg{err: err}
		}
		st.Load(ctx)
		return loadedMsg{cat: cat}
	}
}

func toggleCmd(st *store.Store, id string, field model.Field) tea.Cmd {
	return func() tea.Msg {
		e, err := st.Flip(context.Background(), id, field)
		return toggledMsg{id: id, entry: e, err: err}
	}
}

func resetCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		return resetMsg{err: st.Reset(context.Background())}
	}
}

func copyCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		data, err := st.Export().MarshalCompact()
		if err == nil {
			err = clipboard.WriteAll(string(data))
		}
		return exportedMsg{text: "Kopierat!", err: err}
	}
}

func exportFileCmd(st *store.Store, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := st.Export().Marshal()
		if err == nil {
			err = os.WriteFile(path, data, 0o600)
		}
		return exportedMsg{text: "Exporterade status till " + path, err: err}
	}
}

func pasteCmd(st *store.Store) tea.Cmd {
	return func() tea.Msg {
		txt, err := clipboard.ReadAll()
		if err != nil {
			return importedMsg{err: err}
		}
		p, err := st.Import(context.Background(), []byte(txt))
		if err != nil {
			return importedMsg{err: err}
		}
		return importedMsg{text: importSummary("Importerad (från klippbord)", p)}
	}
}

func importFileCmd(st *store.Store, path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path) //nolint:gosec // user-chosen export file
		if err != nil {
			return importedMsg{err: err}
		}
		p, err := st.Import(context.Background(), data)
		if err != nil {
			return importedMsg{err: err}
		}
		return importedMsg{text: importSummary("Importerad status", p)}
	}
}

func importSummary(prefix string, p *store.Payload) string {
	if p.CreatedAt.IsZero() {
		return fmt.Sprintf("%s: %d poster", prefix, len(p.Status))
	}
	return fmt.Sprintf("%s: %d poster, exporterad %s", prefix, len(p.Status), cli.FormatAge(p.CreatedAt))
}

func clearMessageCmd(id int) tea.Cmd {
	return tea.Tick(messageTTL, func(time.Time) tea.Msg {
		return clearMessageMsg{id: id}
	})
}
