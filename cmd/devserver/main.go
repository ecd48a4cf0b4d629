package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/dmitrijs2005/storyfeed/internal/devserver"
	"github.com/dmitrijs2005/storyfeed/internal/logging"
)

func main() {
	addr := flag.String("a", ":8080", "address and port to listen on")
	secret := flag.String("s", "dev-secret", "JWT signing secret")
	tokenTTL := flag.Int("ttl", 24*3600, "token validity (in seconds)")
	flag.Parse()

	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	ctx := context.Background()

	srv := devserver.NewServer(devserver.NewStore(), []byte(*secret), time.Duration(*tokenTTL)*time.Second)

	log.Info(ctx, "starting dev server", "addr", *addr)
	if err := srv.Router().Run(*addr); err != nil {
		log.Error(ctx, "server stopped", "err", err)
		os.Exit(1)
	}
}
