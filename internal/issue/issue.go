// SPDX-License-Identifier: EPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a registered issue class.
type Id int

const (
	ArchiveNotFoundId Id = iota + 1
	ArchiveExtractFailedId
	ConfigLoadFailedId
	SessionLogWriteFailedId
	ServerStartFailedId
)

type (
	// MarkdownMsg is markdown help text rendered for the user.
	MarkdownMsg string

	// HttpLink points at documentation for an issue.
	HttpLink string

	// Issue bundles the renderable help for one known failure class.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

// Id returns the issue's registry identifier.
func (i *Issue) Id() Id { return i.id }

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg { return i.mdMsg }

// DocLinks returns a clone of the documentation links.
func (i *Issue) DocLinks() []HttpLink { return slices.Clone(i.docLinks) }

// Render renders the issue's markdown (plus doc links, if any) for
// terminal display.
func (i *Issue) Render() (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 {
		extraMd += "\n\n## See also\n"
		for _, link := range i.docLinks {
			extraMd += "- " + string(link) + "\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, "auto")
}

var (
	render = glamour.Render

	archiveNotFoundIssue = &Issue{
		id: ArchiveNotFoundId,
		mdMsg: `
# Archive not found
The tar archive that should become the virtual filesystem could not be opened.

## Things you can try
- Check the path passed via ` + "`--archive`" + `
- Verify the file is readable by the current user
`,
		docLinks: []HttpLink{"https://github.com/tarsh-cli/tarsh#usage"},
	}

	archiveExtractFailedIssue = &Issue{
		id: ArchiveExtractFailedId,
		mdMsg: `
# Archive extraction failed
The archive was found but could not be extracted into the scratch directory.

## Things you can try
- Verify the file is a tar archive (plain or gzip-compressed)
- Check free space and permissions on the scratch directory
- Archives with entries that escape their root are rejected on purpose
`,
		docLinks: []HttpLink{"https://github.com/tarsh-cli/tarsh#virtual-filesystem"},
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded
The CUE config file exists but failed to parse or validate.

## Things you can try
- Run ` + "`tarsh config path`" + ` to see which file is being read
- Run ` + "`tarsh config init`" + ` to regenerate a commented default file
`,
		docLinks: []HttpLink{"https://github.com/tarsh-cli/tarsh#configuration"},
	}

	sessionLogWriteFailedIssue = &Issue{
		id: SessionLogWriteFailedId,
		mdMsg: `
# Session log could not be written
The JSON session log could not be flushed to disk. The session itself
completed; only the log artifact is affected.

## Things you can try
- Check the path passed via ` + "`--log-file`" + ` and its directory permissions
`,
		docLinks: []HttpLink{"https://github.com/tarsh-cli/tarsh#session-log"},
	}

	serverStartFailedIssue = &Issue{
		id: ServerStartFailedId,
		mdMsg: `
# SSH server failed to start
` + "`tarsh serve`" + ` could not bind or initialize its listener.

## Things you can try
- Check that the host/port pair is free (` + "`--port 0`" + ` auto-selects)
- Pass ` + "`--host-key`" + ` if the default key path is not writable
`,
		docLinks: []HttpLink{"https://github.com/tarsh-cli/tarsh#serving-over-ssh"},
	}

	registry = map[Id]*Issue{
		ArchiveNotFoundId:       archiveNotFoundIssue,
		ArchiveExtractFailedId:  archiveExtractFailedIssue,
		ConfigLoadFailedId:      configLoadFailedIssue,
		SessionLogWriteFailedId: sessionLogWriteFailedIssue,
		ServerStartFailedId:     serverStartFailedIssue,
	}
)

// Get returns the registered issue for id, or nil if unknown.
func Get(id Id) *Issue {
	return registry[id]
}

// Ids returns the identifiers of all registered issues in ascending order.
func Ids() []Id {
	ids := maps.Keys(registry)
	slices.Sort(ids)
	return ids
}
