package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/GoSim-25-26J-441/project-board/config"
	"github.com/GoSim-25-26J-441/project-board/internal/board/domain"
	"github.com/GoSim-25-26J-441/project-board/internal/board/repository"
	"github.com/GoSim-25-26J-441/project-board/internal/bootstrap"
)

// RunWatch prints every board snapshot published to Redis, starting with the
// latest one stored.
func RunWatch(_ []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	pub := repository.NewSnapshotPublisher(client, cfg.Redis.Channel)
	latest, err := pub.Latest(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if latest != nil {
		printSnapshot(os.Stdout, *latest)
	}

	log.Printf("watching %s", pub.Channel())
	if err := pub.Watch(ctx, func(e repository.SnapshotEvent) { printSnapshot(os.Stdout, e) }); err != nil {
		log.Fatal(err)
	}
}

func printSnapshot(w io.Writer, e repository.SnapshotEvent) {
	active := domain.FilterByStatus(e.Projects, domain.StatusActive)
	finished := domain.FilterByStatus(e.Projects, domain.StatusFinished)
	fmt.Fprintf(w, "#%d %s active=%d finished=%d\n", e.Sequence, e.PublishedAt.Format("15:04:05"), len(active), len(finished))
	for _, p := range e.Projects {
		fmt.Fprintf(w, "  %-8s %s %s\n", p.Status, p.ID, p.Title)
	}
}
