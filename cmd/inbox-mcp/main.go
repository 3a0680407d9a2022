// Inbox helper MCP server: lists unread Gmail and drafts threaded replies.
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
	"github.com/foi-tools/foi-mcp/internal/gservice"
	"github.com/foi-tools/foi-mcp/internal/tool"
)

func main() {
	httpAddr := flag.String("http-addr", "localhost:0", "HTTP server listen addr")
	oauthTokenFile := flag.String("oauth-token-file", "./data/inbox-mcp-token.json", "Path to cache google oauth token, empty to avoid storing")
	oauthURL := flag.String("oauth-url", "", "OAuth URL")
	envFile := flag.String("env-file", "", "Path to env file")
	enableStdio := flag.Bool("stdio", false, "Enable stdio transport for MCP (disables stdout logging)")
	logFile := flag.String("log-file", "", "Path to log file (only used with stdio transport, otherwise logs to stdout)")

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

	if tok, err := store.OAuthToken(); errors.Is(err, auth.ErrTokenNotSet) {
		app.OpenBrowser(cfg.RedirectURL)
	} else if !tok.Valid() && tok.RefreshToken != "" {
		if err := store.Refresh(context.Background()); err != nil {
			log.Println(fmt.Errorf("store.Refresh failed: %w", err))
		}
	}

	gmailSvc := gservice.NewGmail(cfg, store)
	inbox := tool.NewInboxServer(gmailSvc)

	mux := http.NewServeMux()
	mux.Handle("/oauth", auth.NewHTTPHandler(store))
	mux.Handle("/mcp", mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server { return inbox }, nil))

	app.Serve(&http.Server{Handler: mux}, ln, inbox, *enableStdio)
}
