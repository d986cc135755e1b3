package firebase

import (
	"context"
	"fmt"
	"os"

	"linkdrop/internal/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewApp initializes the Firebase app for the configured project.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS (service account
// json file path) or FIREBASE_SERVICE_ACCOUNT_JSON (raw json content);
// on GCP, Application Default Credentials are used automatically.
func NewApp(ctx context.Context, cfg config.Config) (*firebase.App, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("missing PROJECT_ID, FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT")
	}

	opts := []option.ClientOption{}

	if json := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); json != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(json)))
	} else if cred := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}

	appCfg := &firebase.Config{ProjectID: cfg.ProjectID}

	if len(opts) > 0 {
		return firebase.NewApp(ctx, appCfg, opts...)
	}
	return firebase.NewApp(ctx, appCfg)
}

// Firestore holds the one client the consumer ever needs from the app.
type Firestore struct {
	Client *firestore.Client
}

func NewFirestore(ctx context.Context, app *firebase.App) (*Firestore, error) {
	c, err := app.Firestore(ctx)
	if err != nil {
		return nil, err
	}
	return &Firestore{Client: c}, nil
}

// Close is safe on a nil or half-constructed wrapper so main can defer
// it unconditionally.
func (f *Firestore) Close() {
	if f == nil || f.Client == nil {
		return
	}
	_ = f.Client.Close()
}
