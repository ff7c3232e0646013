package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ariebrainware/dentara-clinic/config"
	"gorm.io/gorm"
)

// FromConfig builds the Store selected by STORE_BACKEND and CHANGE_FEED.
// Background change-feed consumers run until ctx is done; the returned close
// function releases driver resources.
func FromConfig(ctx context.Context, cfg *config.Config, db *gorm.DB) (*Store, func(), error) {
	if cfg.StoreBackend == "firestore" {
		client, err := config.ConnectFirestore(ctx)
		if err != nil {
			return nil, nil, err
		}
		return NewFirestore(client), func() { _ = client.Close() }, nil
	}
	if db == nil {
		return nil, nil, fmt.Errorf("sql store requires a database connection")
	}

	switch cfg.ChangeFeed {
	case "redis":
		rdb := config.GetRedisClient()
		if rdb == nil {
			return nil, nil, fmt.Errorf("CHANGE_FEED=redis but Redis is not connected")
		}
		n := NewRedisNotifier(rdb)
		go runFeed(ctx, "redis", n.Run)
		return NewSQL(db, n), func() {}, nil
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			return nil, nil, fmt.Errorf("CHANGE_FEED=kafka requires KAFKA_BROKERS")
		}
		n := NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaTopic)
		go runFeed(ctx, "kafka", n.Run)
		return NewSQL(db, n), func() { _ = n.Close() }, nil
	case "local", "":
		return NewSQL(db, NewLocalNotifier()), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unsupported CHANGE_FEED %q", cfg.ChangeFeed)
}

func runFeed(ctx context.Context, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("store: %s change feed stopped: %v", name, err)
	}
}
