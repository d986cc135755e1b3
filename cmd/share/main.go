// share pushes one URL into the shared_urls collection so the consumer
// can be exercised without the phone-side producer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linkdrop/internal/config"
	"linkdrop/internal/domain/share"
	"linkdrop/internal/firebase"
)

func main() {
	rawURL := flag.String("url", "", "url to share")
	flag.Parse()
	if *rawURL == "" {
		log.Fatal("url is required: -url=https://example.com")
	}

	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}

	fs, err := firebase.NewFirestore(ctx, app)
	if err != nil {
		log.Fatalf("firebase.NewFirestore: %v", err)
	}
	defer fs.Close()

	repo := share.NewRepo(fs.Client, cfg.Collection, zap.NewNop())
	rec, err := repo.Create(ctx, *rawURL, cfg.TTL)
	if err != nil {
		log.Fatalf("create share record: %v", err)
	}

	fmt.Println("ok: shared", rec.ID, rec.URL)
}
