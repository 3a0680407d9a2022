// FOI triage MCP server: scans unread Gmail for FOI requests, drafts
// acknowledgements and asks the agent to allocate each case to a team.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/api/gmail/v1"

	"github.com/foi-tools/foi-mcp/internal/app"
	"github.com/foi-tools/foi-mcp/internal/auth"
	"github.com/foi-tools/foi-mcp/internal/foi"
	"github.com/foi-tools/foi-mcp/internal/gservice"
	"github.com/foi-tools/foi-mcp/internal/knowledge"
	"github.com/foi-tools/foi-mcp/internal/tool"
)

func main() {
	httpAddr := flag.String("http-addr", "localhost:0", "HTTP server listen addr")
	oauthTokenFile := flag.String("oauth-token-file", "./data/foi-mcp-token.json", "Path to cache google oauth token, empty to avoid storing")
	oauthURL := flag.String("oauth-url", "", "OAuth URL")
	envFile := flag.String("env-file", "", "Path to env file")
	enableStdio := flag.Bool("stdio", false, "Enable stdio transport for MCP (disables stdout logging)")
	logFile := flag.String("log-file", "", "Path to log file (only used with stdio transport, otherwise logs to stdout)")
	libraryCSV := flag.String("library-csv", "./data/foi_responses.csv", "Path to the historical FOI responses CSV")
	teamsCSV := flag.String("teams-csv", "./data/foi_team_contacts.csv", "Path to the team contacts CSV")
	maxUnread := flag.Int64("max-unread", 3, "Maximum unread messages per triage pass")

	flag.Parse()

	persistLogs := app.SetupLogger(*enableStdio, *logFile)
	defer persistLogs()

	ln := app.MustListen(*httpAddr)
	cfg := app.MustOAuthConfig(ln.Addr().String(), *envFile, *oauthURL, []string{
		gmail.GmailReadonlyScope,
		gmail.GmailComposeScope,
	})

	store, err := auth.NewStore(cfg, *oauthTokenFile)
	if err != nil {
		panic(fmt.Errorf("auth.NewStore failed: %w", err))
	}

	defer func() {
		log.Println("Persisting token if exists")
		if err := store.Persist(); err != nil {
			log.Println(fmt.Errorf("store.Persist failed: %w", err))
		}
	}()

	refreshOrConsent(store, cfg.RedirectURL)

	loader := &knowledge.Loader{
		LibraryPath: *libraryCSV,
		TeamsPath:   *teamsCSV,
	}

	gmailSvc := gservice.NewGmail(cfg, store)
	triage := tool.NewTriageServer(gmailSvc, loader, foi.NewKeywordClassifier("foi"), foi.RandomRef{}, *maxUnread)

	mux := http.NewServeMux()
	mux.Handle("/oauth", auth.NewHTTPHandler(store))
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return triage }, nil))

	app.Serve(&http.Server{Handler: mux}, ln, triage, *enableStdio)
}

// refreshOrConsent brings the stored token up to date: refresh when expired,
// interactive consent when there is no token at all.
func refreshOrConsent(store *auth.Store, redirectURL string) {
	tok, err := store.OAuthToken()
	if errors.Is(err, auth.ErrTokenNotSet) {
		app.OpenBrowser(redirectURL)
		return
	}

	if !tok.Valid() && tok.RefreshToken != "" {
		if err := store.Refresh(context.Background()); err != nil {
			log.Println(fmt.Errorf("store.Refresh failed: %w", err))
		}
	}
}
