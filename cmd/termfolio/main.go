package main

import (
	"flag"
	"log"

	"termfolio/authoring"
	"termfolio/content"
	"termfolio/site"
	"termfolio/state"
	"termfolio/term"
	"termfolio/tui"
)

func main() {
	contentURL := flag.String("content-url", "", "base URL of a content host; empty serves the built-in site")
	cacheTTL := flag.Duration("cache-ttl", content.DefaultTTL, "content cache TTL (0 to disable caching)")
	stateFile := flag.String("state-file", "", "session state file (default ~/.termfolio/session.json)")
	startDir := flag.String("start-dir", "", "initial directory, overriding any saved session")
	watchDir := flag.String("watch", "", "content directory to watch; changes trigger a full site refresh")
	user := flag.String("user", "", "name reported by whoami")
	noState := flag.Bool("no-state", false, "disable session persistence")
	flag.Parse()

	entries, err := site.Default()
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}
	tree, local, err := site.Build(entries)
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}

	// Remote content replaces the built-in bodies but keeps the tree as
	// the navigational source of truth.
	var store content.Store = local
	if *contentURL != "" {
		store = content.NewHTTPStore(*contentURL)
	}
	var caching *content.CachingStore
	if *cacheTTL > 0 {
		caching = content.NewCachingStore(store, *cacheTTL)
		store = caching
	}

	var sessionStore *state.Store
	if !*noState {
		sessionStore, err = state.NewStore(*stateFile)
		if err != nil {
			log.Fatalf("Failed to initialize session state: %v", err)
		}
	}

	session, err := term.NewSession(term.Config{
		Tree:     tree,
		Store:    store,
		State:    sessionStore,
		StartDir: *startDir,
		User:     *user,
	})
	if err != nil {
		log.Fatalf("Failed to start session: %v", err)
	}

	if *watchDir != "" {
		// Remote content keeps its own bodies; only the built-in store is
		// replaced on refresh.
		refreshLocal := local
		if *contentURL != "" {
			refreshLocal = nil
		}
		watcher, werr := authoring.Watch(*watchDir, func() {
			if err := site.Refresh(site.Default, session, refreshLocal, caching); err != nil {
				log.Printf("Site refresh failed: %v", err)
			}
		}, nil)
		if werr != nil {
			log.Fatalf("Failed to watch %s: %v", *watchDir, werr)
		}
		defer watcher.Close()
	}

	if err := tui.Run(session); err != nil {
		log.Fatalf("Terminal failed: %v", err)
	}
}
