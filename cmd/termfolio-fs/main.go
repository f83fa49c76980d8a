package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"termfolio/content"
	"termfolio/site"
	"termfolio/termfs"
)

func main() {
	contentURL := flag.String("content-url", "", "base URL of a content host; empty serves the built-in site")
	cacheTTL := flag.Duration("cache-ttl", content.DefaultTTL, "content cache TTL (0 to disable caching)")
	kernelTTL := flag.Duration("kernel-ttl", time.Minute, "kernel entry/attr cache timeout")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Printf("Usage: %s [options] MOUNTPOINT\n", os.Args[0])
		fmt.Printf("Options:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	mountpoint := flag.Arg(0)

	entries, err := site.Default()
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}
	tree, local, err := site.Build(entries)
	if err != nil {
		log.Fatalf("Failed to build site: %v", err)
	}

	var store content.Store = local
	if *contentURL != "" {
		store = content.NewHTTPStore(*contentURL)
	}
	if *cacheTTL > 0 {
		store = content.NewCachingStore(store, *cacheTTL)
	}

	server, err := termfs.Mount(mountpoint, tree, store, &termfs.Config{
		CacheTimeout: *kernelTTL,
	})
	if err != nil {
		log.Fatalf("Mount failed: %v", err)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		server.Unmount()
		os.Exit(0)
	}()

	server.Wait()
}
